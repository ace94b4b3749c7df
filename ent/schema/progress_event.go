package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ProgressEvent is one scored drill with the item's level before and after.
type ProgressEvent struct {
	ent.Schema
}

func (ProgressEvent) Mixin() []ent.Mixin { return []ent.Mixin{EventMixin{}} }

func (ProgressEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("item_id").NotEmpty(),
		field.String("category"),
		field.String("activity").Default(""),
		field.String("session_id").Optional(),
		field.Bool("correct"),
		field.Int("from_level"),
		field.Int("to_level"),
		field.Int("experience"),
	}
}

func (ProgressEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("item_id"),
		index.Fields("session_id"),
	}
}
