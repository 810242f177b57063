package trivia

import "github.com/abhisek/edusticker/internal/llm"

// QuestionSchema defines the JSON schema for LLM question responses.
var QuestionSchema = &llm.Schema{
	Name:        "trivia-question",
	Description: "A single multiple-choice trivia question with four options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The trivia question shown to the player",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    OptionCount,
				"maxItems":    OptionCount,
				"description": "Exactly four possible answers, one of which is correct",
			},
			"correctAnswerIndex": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     OptionCount - 1,
				"description": "Zero-based index of the correct answer in options",
			},
		},
		"required":             []any{"question", "options", "correctAnswerIndex"},
		"additionalProperties": false,
	},
}
