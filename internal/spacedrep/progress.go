package spacedrep

import (
	"time"

	"github.com/abhisek/alefba/internal/content"
)

// Update applies one drill outcome to it and returns the new item.
// Level never goes down: a miss costs one experience point and schedules
// a short retry.
func Update(it content.Item, correct bool, now time.Time) content.Item {
	nowMs := now.UnixMilli()
	it.LastReviewTime = nowMs

	if it.Level < content.MinLevel {
		it.Level = content.MinLevel
	}

	if !correct {
		it.Experience = max(it.Experience-1, 0)
		if it.IsMastered() {
			it.NextReviewTime = content.Never
		} else {
			it.NextReviewTime = now.Add(RetryDelay).UnixMilli()
		}
		return it
	}

	it.Experience++
	if it.Experience >= RequiredExperience(it.Level) {
		it.Level = min(it.Level+1, content.MaxLevel)
		it.Experience = 0
	}

	if d, ok := ReviewDelay(it.Level); ok {
		it.NextReviewTime = now.Add(d).UnixMilli()
	} else {
		it.NextReviewTime = content.Never
	}
	return it
}
