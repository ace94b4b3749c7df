package spacedrep

import (
	"time"

	"github.com/abhisek/alefba/internal/content"
)

// ReviewDelays is the Leitner box schedule indexed by level. The delay for
// a level is applied right after an item reaches it. Level 5 has no entry:
// mastered items are never scheduled again.
var ReviewDelays = map[int]time.Duration{
	1: 5 * time.Minute,
	2: 24 * time.Hour,
	3: 48 * time.Hour,
	4: 5 * 24 * time.Hour,
}

// RetryDelay brings a missed item back soon without waiting for its box.
const RetryDelay = 10 * time.Minute

// RequiredExperience is the number of correct answers at level needed to
// move up. Level 1 promotes on the first success.
func RequiredExperience(level int) int {
	if level <= content.MinLevel {
		return 1
	}
	return 3
}

// ReviewDelay returns the wait after reaching level. ok is false for the
// mastered level.
func ReviewDelay(level int) (d time.Duration, ok bool) {
	if level >= content.MaxLevel {
		return 0, false
	}
	if level < content.MinLevel {
		level = content.MinLevel
	}
	return ReviewDelays[level], true
}
