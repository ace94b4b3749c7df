package spacedrep

import (
	"time"

	"github.com/abhisek/alefba/internal/content"
)

// IsDue reports whether an attempted item has reached its review time.
func IsDue(it content.Item, now time.Time) bool {
	return it.Attempted() && it.NextReviewTime <= now.UnixMilli()
}

// UntilReview returns the wait before the item is due. Returns 0 if it is
// already due and -1 if it will never be reviewed again.
func UntilReview(it content.Item, now time.Time) time.Duration {
	if it.NextReviewTime == content.Never {
		return -1
	}
	if IsDue(it, now) || !it.Attempted() {
		return 0
	}
	return time.Duration(it.NextReviewTime-now.UnixMilli()) * time.Millisecond
}

// Status describes an item's place in the schedule for display.
type Status string

const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusDue      Status = "due"
	StatusMastered Status = "mastered"
)

// StatusOf returns the display status of it.
func StatusOf(it content.Item, now time.Time) Status {
	switch {
	case it.IsMastered():
		return StatusMastered
	case !it.Attempted():
		return StatusNew
	case IsDue(it, now):
		return StatusDue
	default:
		return StatusLearning
	}
}
