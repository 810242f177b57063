package trivia

import (
	"fmt"
	"strings"
)

const systemPromptTemplate = `You are an expert in creating educational trivia.

Rules:
- Write a single multiple-choice trivia question in %s about the given topic.
- The question and all options must be written in %s.
- Provide exactly four options. Exactly one option is correct; the other three must be plausible but clearly wrong.
- Options must be distinct from one another.
- Keep the question suitable for a general audience, including school-age children, and useful for learning.
- Report the zero-based index of the correct option in correctAnswerIndex.`

func systemPrompt(language string) string {
	return fmt.Sprintf(systemPromptTemplate, language, language)
}

func buildUserMessage(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	b.WriteString("Generate one question about this topic.")
	return b.String()
}
