package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/alefba/internal/content"
)

// Snapshot is a saved copy of all item progress.
type Snapshot struct {
	Stored
	Data SnapshotData
}

type SnapshotData struct {
	Version int             `json:"version"`
	Items   []ItemProgress  `json:"items,omitempty"`
	Stats   *SnapshotTotals `json:"stats,omitempty"`
}

// ItemProgress is the mutable part of a content.Item.
type ItemProgress struct {
	ID             string `json:"id"`
	Level          int    `json:"level"`
	Experience     int    `json:"experience"`
	LastReviewTime int64  `json:"last_review_time"`
	NextReviewTime int64  `json:"next_review_time"`
}

type SnapshotTotals struct {
	Mastered  int `json:"mastered"`
	Attempted int `json:"attempted"`
}

// SnapshotFromItems captures the progress of items.
func SnapshotFromItems(items []content.Item) SnapshotData {
	totals := &SnapshotTotals{}
	progress := make([]ItemProgress, 0, len(items))
	for _, it := range items {
		progress = append(progress, ItemProgress{it.ID, it.Level, it.Experience, it.LastReviewTime, it.NextReviewTime})
		if it.IsMastered() {
			totals.Mastered++
		}
		if it.Attempted() {
			totals.Attempted++
		}
	}
	return SnapshotData{Version: 1, Items: progress, Stats: totals}
}

// Apply returns copies of the items the snapshot knows, carrying the saved
// progress. Items missing from the snapshot are left out.
func (d SnapshotData) Apply(items []content.Item) []content.Item {
	saved := make(map[string]ItemProgress, len(d.Items))
	for _, p := range d.Items {
		saved[p.ID] = p
	}
	var out []content.Item
	for _, it := range items {
		if p, ok := saved[it.ID]; ok {
			it.Level, it.Experience = p.Level, p.Experience
			it.LastReviewTime, it.NextReviewTime = p.LastReviewTime, p.NextReviewTime
			out = append(out, it)
		}
	}
	return out
}

// snapshotRepo implements SnapshotRepo with ent's SQL builders.
type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	query, args := builder().Insert(snapshotsTable).
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, ts.UnixMilli(), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	b := builder()
	query, args := b.Select("id", "sequence", "timestamp", "data").
		From(b.Table(snapshotsTable)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		snap Snapshot
		ts   int64
		raw  string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.ID, &snap.Sequence, &ts, &raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	snap.Timestamp = time.UnixMilli(ts)
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest snapshot that falls outside the keep window.
	b := builder()
	query, args := b.Select("id").
		From(b.Table(snapshotsTable)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil // fewer than keep snapshots exist
		}
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(snapshotsTable).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
