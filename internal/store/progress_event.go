package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ProgressEventData is one scored drill.
type ProgressEventData struct {
	ItemID    string
	Category  string
	Activity  string
	SessionID string // empty outside a session
	Correct   bool

	FromLevel, ToLevel int
	Experience         int // after scoring
}

type ProgressEventRecord struct {
	Stored
	EventID string // ULID
	ProgressEventData
}

func (r *eventRepo) AppendProgress(ctx context.Context, data ProgressEventData) error {
	return r.insert(ctx, progressEventsTable,
		[]string{"item_id", "category", "activity", "session_id", "correct", "from_level", "to_level", "experience"},
		[]any{data.ItemID, data.Category, data.Activity, data.SessionID, data.Correct, data.FromLevel, data.ToLevel, data.Experience},
	)
}

func (r *eventRepo) ProgressHistory(ctx context.Context, itemID string, opts QueryOpts) ([]ProgressEventRecord, error) {
	b := builder()
	sel := b.Select("id", "event_id", "sequence", "timestamp", "item_id", "category", "activity",
		"session_id", "correct", "from_level", "to_level", "experience").
		From(b.Table(progressEventsTable))
	if itemID != "" {
		sel.Where(entsql.EQ("item_id", itemID))
	}
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var out []ProgressEventRecord
	for rows.Next() {
		var (
			rec       ProgressEventRecord
			ts        int64
			sessionID *string
		)
		err := rows.Scan(&rec.ID, &rec.EventID, &rec.Sequence, &ts, &rec.ItemID, &rec.Category, &rec.Activity,
			&sessionID, &rec.Correct, &rec.FromLevel, &rec.ToLevel, &rec.Experience)
		if err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		if sessionID != nil {
			rec.SessionID = *sessionID
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress events: %w", err)
	}
	return out, nil
}
