package trivia

import (
	"os"
	"strconv"
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Language is the language questions and options are written in.
	Language string

	// Validators run in order on every generated question; the first
	// failure rejects it.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Language:    "Indonesian",
		Validators:  []Validator{&StructuralValidator{}, &OptionsValidator{}},
		MaxTokens:   512,
		Temperature: 0.8,
	}
}

// ConfigFromEnv applies EDUSTICKER_TRIVIA_LANGUAGE, EDUSTICKER_LLM_MAX_TOKENS
// and EDUSTICKER_LLM_TEMPERATURE on top of DefaultConfig. Unparseable values
// are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("EDUSTICKER_TRIVIA_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("EDUSTICKER_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("EDUSTICKER_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.Temperature = f
		}
	}
	return cfg
}
