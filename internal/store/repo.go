package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/alefba/internal/content"
)

var ErrItemNotFound = errors.New("store: item not found")

// QueryOpts narrows an event query. Zero fields are ignored. Results are
// always newest first.
type QueryOpts struct {
	Limit  int
	After  int64 // sequence bounds, exclusive
	Before int64
	From   time.Time // timestamp bounds, inclusive
	To     time.Time
}

// Stored is the header the store assigns to every appended row.
type Stored struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// ItemRepo holds the learning items and their progress.
type ItemRepo interface {
	// ListAll returns every item in category then map order.
	ListAll(ctx context.Context) ([]content.Item, error)
	ListByCategory(ctx context.Context, c content.Category) ([]content.Item, error)

	// ListDueForReview returns attempted items of c whose review time has
	// passed, most overdue first.
	ListDueForReview(ctx context.Context, c content.Category, now time.Time) ([]content.Item, error)
	ListMastered(ctx context.Context, c content.Category) ([]content.Item, error)

	Get(ctx context.Context, id string) (content.Item, error)
	Upsert(ctx context.Context, it content.Item) error

	// UpdateProgress writes level, experience and review times. Unknown ids
	// give ErrItemNotFound.
	UpdateProgress(ctx context.Context, it content.Item) error
	// RestoreProgress applies UpdateProgress to every item in one
	// transaction; on error nothing is written.
	RestoreProgress(ctx context.Context, items []content.Item) error

	// Seed adds the items not stored yet and reports how many it added.
	Seed(ctx context.Context, items []content.Item) (int, error)

	// ResetProgress returns every item to level 1, never attempted.
	ResetProgress(ctx context.Context) error
}

// EventRepo is the append-only log of drills, sessions and LLM calls.
type EventRepo interface {
	AppendProgress(ctx context.Context, data ProgressEventData) error
	// ProgressHistory lists the drills of one item, or of all items when
	// itemID is empty.
	ProgressHistory(ctx context.Context, itemID string, opts QueryOpts) ([]ProgressEventRecord, error)

	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	// RecentSessions lists the end events of finished sessions.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	// GetLLMEvent returns nil without error for an unknown id.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStats, error)
}

// SnapshotRepo keeps point-in-time copies of all item progress.
type SnapshotRepo interface {
	Save(ctx context.Context, snap *Snapshot) error
	// Latest returns nil without error when nothing was saved.
	Latest(ctx context.Context) (*Snapshot, error)
	// Prune keeps the newest keep snapshots.
	Prune(ctx context.Context, keep int) error
}
