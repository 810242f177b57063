package trivia

import "strings"

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is a generated multiple-choice trivia question.
type Question struct {
	// Topic is the topic label the question was generated for.
	Topic string `json:"topic"`

	// Text is the question prompt shown to the player.
	Text string `json:"question"`

	// Options holds exactly OptionCount answer choices.
	Options []string `json:"options"`

	// CorrectIndex is the index into Options of the correct answer.
	CorrectIndex int `json:"correctAnswerIndex"`
}

// CorrectText returns the text of the correct option, or "" when the
// question is malformed.
func (q Question) CorrectText() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// IsCorrect reports whether choice is the correct option index.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

func normalizeOption(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
