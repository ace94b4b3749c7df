package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Snapshot is a JSON copy of all item progress, taken before a reset so
// it can be restored.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence"),
		field.Int64("timestamp"),
		field.Text("data"),
	}
}

func (Snapshot) Indexes() []ent.Index {
	return []ent.Index{index.Fields("timestamp")}
}
