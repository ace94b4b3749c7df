package session

import (
	"time"

	"github.com/abhisek/alefba/internal/content"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID  string
	Category   content.Category
	Review     bool
	Planned    int
	Completed  int
	Flawless   int
	BestStreak int
	Duration   time.Duration
	Accuracy   float64
}

// Summary returns the counters of the current or last session.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return BuildSummary(e.st, e.now())
}

// BuildSummary creates a Summary from a session state.
func BuildSummary(st State, now time.Time) Summary {
	var accuracy float64
	if st.Completed > 0 {
		accuracy = float64(st.Flawless) / float64(st.Completed)
	}
	var d time.Duration
	if !st.StartedAt.IsZero() {
		d = now.Sub(st.StartedAt)
	}
	return Summary{
		SessionID:  st.SessionID,
		Category:   st.Category,
		Review:     st.Review,
		Planned:    st.Planned,
		Completed:  st.Completed,
		Flawless:   st.Flawless,
		BestStreak: st.BestStreak,
		Duration:   d,
		Accuracy:   accuracy,
	}
}
