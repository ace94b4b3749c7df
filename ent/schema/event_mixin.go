package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin is the envelope of every log table: a ULID, the position in
// the store-wide sequence and the wall-clock time in epoch millis.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.String("event_id").Unique().Immutable(),
		field.Int64("sequence").Unique().Immutable(),
		field.Int64("timestamp").Immutable(),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{index.Fields("timestamp")}
}
