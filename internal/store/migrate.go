package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/alefba/ent/schema"
)

// Table names.
const (
	itemsTable          = "items"
	progressEventsTable = "progress_events"
	sessionEventsTable  = "session_events"
	llmEventsTable      = "llm_request_events"
	snapshotsTable      = "snapshots"
)

// entities maps every table to the ent schema that describes it.
var entities = []struct {
	table  string
	schema ent.Interface
}{
	{itemsTable, entschema.Item{}},
	{progressEventsTable, entschema.ProgressEvent{}},
	{sessionEventsTable, entschema.SessionEvent{}},
	{llmEventsTable, entschema.LLMRequestEvent{}},
	{snapshotsTable, entschema.Snapshot{}},
}

// migrate creates or updates every table from the ent schema definitions.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables, err := Tables()
	if err != nil {
		return err
	}
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}

// Tables builds the migration tables from the ent schemas.
func Tables() ([]*schema.Table, error) {
	tables := make([]*schema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableFor(e.table, e.schema)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// tableFor converts one ent schema (mixins first) into a table. Schemas
// without an explicit "id" field get an auto-increment integer key.
func tableFor(name string, s ent.Interface) (*schema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := &schema.Table{Name: name}
	columns := make(map[string]*schema.Column)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique && d.Name != "id",
			Nullable: d.Optional,
		}
		if d.Size > 0 {
			c.Size = int64(d.Size)
		}
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			c.Default = d.Default
		}
		columns[d.Name] = c
		t.Columns = append(t.Columns, c)
	}

	id, ok := columns["id"]
	if !ok {
		id = &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
		t.Columns = append([]*schema.Column{id}, t.Columns...)
	}
	t.PrimaryKey = []*schema.Column{id}

	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, fname := range d.Fields {
			c, ok := columns[fname]
			if !ok {
				return nil, fmt.Errorf("%s: index on unknown field %q", name, fname)
			}
			cols = append(cols, c)
		}
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    name + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return t, nil
}
