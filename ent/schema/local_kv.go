package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// LocalKV is device-local state that never leaves the machine, such as
// trivia lockout deadlines.
type LocalKV struct {
	ent.Schema
}

func (LocalKV) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("key"),
		field.Text("value"),
		field.Int64("updated_at"),
	}
}
