package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent marks where a session started and ended. The counters are
// written on the end row only.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin { return []ent.Mixin{EventMixin{}} }

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("action").NotEmpty().Comment("start or end"),
		field.String("category"),
		field.Bool("review").Default(false),
		field.Int("items_planned").Default(0),
		field.Int("items_completed").Default(0),
		field.Int("flawless").Default(0),
		field.Int("best_streak").Default(0),
		field.Int("duration_secs").Default(0),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{index.Fields("session_id", "action")}
}
