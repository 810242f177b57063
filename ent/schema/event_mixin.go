package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin orders append-only log rows. The sequence comes from the
// store's global_sequence counter, so listings stay stable when two LLM
// calls land in the same millisecond.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Immutable(),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("Stored as unix millis"),
	}
}

// Indexes mirrors idx_llm_request_events_sequence; listings are always
// newest-sequence first.
func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
	}
}
