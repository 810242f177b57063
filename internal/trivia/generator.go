package trivia

import (
	"context"
	"fmt"
)

// Generator produces trivia questions.
type Generator interface {
	// Generate produces a single validated question about topic.
	Generate(ctx context.Context, topic string) (*Question, error)
}

// FetchAll requests one question per topic, one after another. The batch
// is all or nothing: the first failure (or a cancelled ctx) discards every
// question fetched so far.
func FetchAll(ctx context.Context, gen Generator, topics []string) ([]Question, error) {
	questions := make([]Question, 0, len(topics))
	for i, topic := range topics {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := gen.Generate(ctx, topic)
		if err != nil {
			return nil, fmt.Errorf("question %d of %d (%s): %w", i+1, len(topics), topic, err)
		}
		questions = append(questions, *q)
	}
	return questions, nil
}
