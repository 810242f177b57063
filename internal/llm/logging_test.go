package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/abhisek/edusticker/internal/store"
)

var dbSeq atomic.Int64

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:llm_%d?mode=memory&cache=shared", dbSeq.Add(1))
	st, err := store.Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 12, OutputTokens: 7}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	p := WithLogging(mock, "mock", repo)
	ctx := WithPurpose(context.Background(), PurposeTrivia)

	req := Request{
		System:   "You write trivia questions.",
		Messages: []Message{{Role: RoleUser, Content: "Topic: Animals"}},
		Schema:   questionSchema(),
	}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected second call to fail")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{Purpose: PurposeTrivia})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	// Newest first.
	failed, ok := events[0], events[1]
	if failed.Success || failed.ErrorMessage == "" {
		t.Fatalf("expected failure to be recorded, got %+v", failed.LLMRequestEventData)
	}
	if !ok.Success || ok.InputTokens != 12 || ok.OutputTokens != 7 {
		t.Fatalf("unexpected success event: %+v", ok.LLMRequestEventData)
	}
	if ok.Provider != "mock" || ok.Model != "mock" || ok.ResponseBody != `{"ok":true}` {
		t.Fatalf("unexpected success metadata: %+v", ok.LLMRequestEventData)
	}
}

func TestSerializeRequest(t *testing.T) {
	got := serializeRequest(Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   &Schema{Name: "tiny", Definition: map[string]any{"type": "object"}},
	})
	want := "[system]\nsys\n\n[user]\nhello\n\n[schema: tiny]\n{\"type\":\"object\"}\n"
	if got != want {
		t.Fatalf("serializeRequest() = %q, want %q", got, want)
	}
}
