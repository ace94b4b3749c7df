package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Item is a letter or digit of the catalog together with the learner's
// progress on it. Review times are epoch millis; 0 means never attempted
// and max int64 means mastered.
type Item struct {
	ent.Schema
}

func (Item) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").NotEmpty().Immutable(),
		field.String("character"),
		field.String("word"),
		field.String("phonetic_ref").Default(""),
		field.String("image_ref").Default(""),
		field.String("category"),
		field.Int("position").Default(0).Comment("place on the island map"),
		field.Int("level").Default(1),
		field.Int("experience").Default(0),
		field.Int64("last_review_time").Default(0),
		field.Int64("next_review_time").Default(0),
	}
}

func (Item) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("category", "position"),
		index.Fields("category", "next_review_time"),
	}
}
