package spacedrep

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/logging"
	"github.com/abhisek/alefba/internal/store"
)

// ItemWriter persists progress fields of an existing item.
type ItemWriter interface {
	UpdateProgress(ctx context.Context, it content.Item) error
}

// ProgressLog receives one event per recorded outcome.
type ProgressLog interface {
	AppendProgress(ctx context.Context, data store.ProgressEventData) error
}

// Outcome describes a finished drill.
type Outcome struct {
	Correct   bool
	Activity  string
	SessionID string
}

// Scheduler applies outcomes to items and persists the result.
type Scheduler struct {
	items  ItemWriter
	events ProgressLog
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewScheduler creates a scheduler. events and log may be nil.
func NewScheduler(items ItemWriter, events ProgressLog, log logrus.FieldLogger) *Scheduler {
	if log == nil {
		log = logging.Discard()
	}
	return &Scheduler{
		items:  items,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Record computes the new state of it after o and writes it to the store.
// The updated item is returned even when the write fails so the session can
// carry on; the error is for the caller to log.
func (s *Scheduler) Record(ctx context.Context, it content.Item, o Outcome) (content.Item, error) {
	updated := Update(it, o.Correct, s.now())

	logger := s.log.WithFields(logrus.Fields{
		"item":    it.ID,
		"correct": o.Correct,
		"level":   updated.Level,
	})

	if err := s.items.UpdateProgress(ctx, updated); err != nil {
		logger.WithError(err).Warn("progress not saved")
		return updated, fmt.Errorf("save progress for %s: %w", it.ID, err)
	}

	if s.events != nil {
		err := s.events.AppendProgress(ctx, store.ProgressEventData{
			ItemID:     it.ID,
			Category:   string(it.Category),
			Activity:   o.Activity,
			SessionID:  o.SessionID,
			Correct:    o.Correct,
			FromLevel:  it.Level,
			ToLevel:    updated.Level,
			Experience: updated.Experience,
		})
		if err != nil {
			logger.WithError(err).Warn("progress event not recorded")
		}
	}

	if updated.Level > it.Level {
		logger.WithField("from", it.Level).Info("item promoted")
	}
	return updated, nil
}
