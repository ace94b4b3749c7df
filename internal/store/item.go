package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/alefba/internal/content"
)

var itemColumns = []string{
	"id", "character", "word", "phonetic_ref", "image_ref", "category",
	"position", "level", "experience", "last_review_time", "next_review_time",
}

// itemRepo implements ItemRepo with ent's SQL builders.
type itemRepo struct {
	db *sql.DB
}

func (r *itemRepo) ListAll(ctx context.Context) ([]content.Item, error) {
	return r.query(ctx, nil)
}

func (r *itemRepo) ListByCategory(ctx context.Context, c content.Category) ([]content.Item, error) {
	return r.query(ctx, entsql.EQ("category", string(c)))
}

func (r *itemRepo) ListDueForReview(ctx context.Context, c content.Category, now time.Time) ([]content.Item, error) {
	b := builder()
	sel := b.Select(itemColumns...).
		From(b.Table(itemsTable)).
		Where(entsql.And(
			entsql.EQ("category", string(c)),
			entsql.GT("last_review_time", 0),
			entsql.LTE("next_review_time", now.UnixMilli()),
		)).
		OrderBy("next_review_time", "position")
	return r.scan(ctx, sel)
}

func (r *itemRepo) ListMastered(ctx context.Context, c content.Category) ([]content.Item, error) {
	return r.query(ctx, entsql.And(
		entsql.EQ("category", string(c)),
		entsql.GTE("level", content.MaxLevel),
	))
}

func (r *itemRepo) Get(ctx context.Context, id string) (content.Item, error) {
	items, err := r.query(ctx, entsql.EQ("id", id))
	if err != nil {
		return content.Item{}, err
	}
	if len(items) == 0 {
		return content.Item{}, fmt.Errorf("get %s: %w", id, ErrItemNotFound)
	}
	return items[0], nil
}

func (r *itemRepo) Upsert(ctx context.Context, it content.Item) error {
	query, args := builder().Insert(itemsTable).
		Columns(itemColumns...).
		Values(itemValues(it)...).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert item %s: %w", it.ID, err)
	}
	return nil
}

func (r *itemRepo) UpdateProgress(ctx context.Context, it content.Item) error {
	return updateProgress(ctx, r.db, it)
}

func (r *itemRepo) RestoreProgress(ctx context.Context, items []content.Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback()

	for _, it := range items {
		if err := updateProgress(ctx, tx, it); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit restore: %w", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func updateProgress(ctx context.Context, db execer, it content.Item) error {
	query, args := builder().Update(itemsTable).
		Set("level", it.Level).
		Set("experience", it.Experience).
		Set("last_review_time", it.LastReviewTime).
		Set("next_review_time", it.NextReviewTime).
		Where(entsql.EQ("id", it.ID)).
		Query()
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update progress %s: %w", it.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update progress %s: %w", it.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update progress %s: %w", it.ID, ErrItemNotFound)
	}
	return nil
}

func (r *itemRepo) Seed(ctx context.Context, items []content.Item) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, it := range items {
		query, args := builder().Insert(itemsTable).
			Columns(itemColumns...).
			Values(itemValues(it)...).
			OnConflict(
				entsql.ConflictColumns("id"),
				entsql.DoNothing(),
			).
			Query()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("seed item %s: %w", it.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return added, nil
}

func (r *itemRepo) ResetProgress(ctx context.Context) error {
	query, args := builder().Update(itemsTable).
		Set("level", content.MinLevel).
		Set("experience", 0).
		Set("last_review_time", 0).
		Set("next_review_time", 0).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (r *itemRepo) query(ctx context.Context, where *entsql.Predicate) ([]content.Item, error) {
	b := builder()
	sel := b.Select(itemColumns...).
		From(b.Table(itemsTable)).
		OrderBy("category", "position", "id")
	if where != nil {
		sel.Where(where)
	}
	return r.scan(ctx, sel)
}

func (r *itemRepo) scan(ctx context.Context, sel *entsql.Selector) ([]content.Item, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []content.Item
	for rows.Next() {
		var (
			it       content.Item
			category string
		)
		err := rows.Scan(
			&it.ID, &it.Character, &it.Word, &it.PhoneticRef, &it.ImageRef, &category,
			&it.Position, &it.Level, &it.Experience, &it.LastReviewTime, &it.NextReviewTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Category = content.Category(category)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func itemValues(it content.Item) []any {
	return []any{
		it.ID, it.Character, it.Word, it.PhoneticRef, it.ImageRef, string(it.Category),
		it.Position, it.Level, it.Experience, it.LastReviewTime, it.NextReviewTime,
	}
}
