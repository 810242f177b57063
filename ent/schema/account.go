package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Account holds local login credentials.
type Account struct {
	ent.Schema
}

func (Account) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable(),
		field.String("email").
			Unique().
			Comment("Stored lowercased"),
		field.String("password_hash").
			Sensitive(),
		field.String("display_name").
			Default(""),
		field.Int64("created_at").
			Immutable(),
	}
}
