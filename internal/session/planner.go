package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/alefba/internal/content"
)

// ItemSource is the slice of the item store the planner reads.
type ItemSource interface {
	ListByCategory(ctx context.Context, c content.Category) ([]content.Item, error)
	ListDueForReview(ctx context.Context, c content.Category, now time.Time) ([]content.Item, error)
}

// Plan is what a session needs to start.
type Plan struct {
	Category content.Category
	Review   bool

	// Main is the item a learning session is built around. Nil when
	// every unlocked item of the category is mastered.
	Main *content.Item

	// Candidates is the review pool.
	Candidates []content.Item

	// Mastered feeds learning extras and keyboard decoys.
	Mastered []content.Item
}

// Planner builds session plans from the item store.
type Planner struct {
	items ItemSource
	now   func() time.Time
}

// NewPlanner creates a Planner.
func NewPlanner(items ItemSource) *Planner {
	return &Planner{items: items, now: time.Now}
}

// Learning plans a session around the first unlocked item of c that is not
// yet mastered. When there is none, the plan falls back to review.
func (p *Planner) Learning(ctx context.Context, c content.Category) (Plan, error) {
	items, err := p.items.ListByCategory(ctx, c)
	if err != nil {
		return Plan{}, fmt.Errorf("list %s items: %w", c, err)
	}
	plan := Plan{Category: c, Mastered: content.Mastered(items)}
	if main, ok := content.NextToLearn(items); ok {
		plan.Main = &main
		return plan, nil
	}
	return p.review(ctx, c, items, plan.Mastered)
}

// Review plans a review session of c. Items whose review time has come are
// preferred; if none are due, any attempted item qualifies.
func (p *Planner) Review(ctx context.Context, c content.Category) (Plan, error) {
	items, err := p.items.ListByCategory(ctx, c)
	if err != nil {
		return Plan{}, fmt.Errorf("list %s items: %w", c, err)
	}
	return p.review(ctx, c, items, content.Mastered(items))
}

func (p *Planner) review(ctx context.Context, c content.Category, items, mastered []content.Item) (Plan, error) {
	due, err := p.items.ListDueForReview(ctx, c, p.now())
	if err != nil {
		return Plan{}, fmt.Errorf("list due %s items: %w", c, err)
	}
	if len(due) == 0 {
		for _, it := range items {
			if it.Attempted() {
				due = append(due, it)
			}
		}
	}
	return Plan{Category: c, Review: true, Candidates: due, Mastered: mastered}, nil
}
