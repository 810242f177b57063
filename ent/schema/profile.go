package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Profile is a player's durable progress document.
type Profile struct {
	ent.Schema
}

func (Profile) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("Account id issued at registration"),
		field.String("display_name").
			Default(""),
		field.String("email").
			Default(""),
		field.String("photo_ref").
			Default(""),
		field.Int("coins").
			Default(0).
			NonNegative(),
		field.Strings("collected_sticker_ids").
			Comment("Sticker ids in acquisition order, no duplicates"),
		field.Strings("achieved_milestone_ids"),
		field.Int64("updated_at").
			Default(0).
			Comment("Unix millis of the last merge write"),
	}
}
