package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/edusticker/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.Language == "" {
		cfg.Language = DefaultConfig().Language
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// Generate produces a single question about topic.
func (g *LLMGenerator) Generate(ctx context.Context, topic string) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTrivia)

	req := llm.Request{
		System: systemPrompt(g.config.Language),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(topic)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q := &Question{
		Topic:        topic,
		Text:         strings.TrimSpace(raw.Question),
		Options:      make([]string, len(raw.Options)),
		CorrectIndex: raw.CorrectAnswerIndex,
	}
	for i, opt := range raw.Options {
		q.Options[i] = strings.TrimSpace(opt)
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return nil, verr
		}
	}
	return q, nil
}
