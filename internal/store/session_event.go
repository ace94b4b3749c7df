package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// SessionEventData marks the start or end of a session. The counters are
// only filled on end events.
type SessionEventData struct {
	SessionID string
	Action    string
	Category  string
	Review    bool

	ItemsPlanned   int
	ItemsCompleted int
	Flawless       int
	BestStreak     int
	DurationSecs   int
}

type SessionRecord struct {
	Stored
	SessionEventData
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.insert(ctx, sessionEventsTable,
		[]string{"session_id", "action", "category", "review", "items_planned",
			"items_completed", "flawless", "best_streak", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Category, data.Review, data.ItemsPlanned,
			data.ItemsCompleted, data.Flawless, data.BestStreak, data.DurationSecs},
	)
}

func (r *eventRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "session_id", "action", "category", "review",
		"items_planned", "items_completed", "flawless", "best_streak", "duration_secs").
		From(b.Table(sessionEventsTable)).
		Where(entsql.EQ("action", SessionEnd))
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec SessionRecord
			ts  int64
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.Action, &rec.Category, &rec.Review,
			&rec.ItemsPlanned, &rec.ItemsCompleted, &rec.Flawless, &rec.BestStreak, &rec.DurationSecs)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}
