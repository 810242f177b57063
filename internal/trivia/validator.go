package trivia

import "fmt"

// Validator checks a generated question for correctness. Implementations
// must be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil when the question passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const maxQuestionLength = 500

// StructuralValidator checks the question text and the option count.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	switch {
	case normalizeOption(q.Text) == "":
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	case len(q.Text) > maxQuestionLength:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question exceeds %d characters", maxQuestionLength)}
	case len(q.Options) != OptionCount:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("expected %d options, got %d", OptionCount, len(q.Options))}
	case q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("correct index %d out of range", q.CorrectIndex)}
	}
	return nil
}

// OptionsValidator checks that every option is non-empty and that no two
// options are the same after trimming and case folding.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Question) *ValidationError {
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		norm := normalizeOption(opt)
		if norm == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %d is empty", i)}
		}
		if seen[norm] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %q is duplicated", opt)}
		}
		seen[norm] = true
	}
	return nil
}
