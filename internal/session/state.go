package session

import (
	"time"

	"github.com/abhisek/alefba/internal/activity"
	"github.com/abhisek/alefba/internal/content"
)

// Phase is where the current item is in its presentation.
type Phase string

const (
	PhaseIdle       Phase = "IDLE"       // No session started
	PhasePresenting Phase = "PRESENTING" // Waiting for taps on the current item
	PhaseComplete   Phase = "COMPLETE"   // Item finished, advance pending
	PhaseDone       Phase = "DONE"       // Queue drained or session exited
)

// State is a snapshot of a running session. Values returned by the engine
// are copies; mutating them has no effect on the session.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Category is the category the session draws from.
	Category content.Category

	// Review is true for review sessions.
	Review bool

	// Phase is the presentation phase of the current item.
	Phase Phase

	// Queue holds the items still to come after Current, in order.
	Queue []content.Item

	// Current is the item being drilled, nil between sessions.
	Current *content.Item

	// Activity and MissingIndex describe the drill for Current.
	Activity     activity.Type
	MissingIndex int

	// Target is what the learner has to produce, one symbol per entry.
	Target []string

	// Typed holds the symbols produced so far; Correctness is parallel to it.
	Typed       []string
	Correctness []bool

	// HadError is set by any wrong tap on the current item.
	HadError bool

	// Keyboard is the shuffled set of symbols offered.
	Keyboard []string

	// Streak counts flawless completions in a row; BestStreak is the
	// session maximum.
	Streak     int
	BestStreak int

	// Planned, Completed and Flawless count items for the summary.
	Planned   int
	Completed int
	Flawless  int

	// StartedAt is when the session began.
	StartedAt time.Time
}

// Empty reports whether there is nothing to drill. A review session started
// with no candidates is empty from the start.
func (s State) Empty() bool {
	return s.Current == nil
}

// Done reports whether the session has ended.
func (s State) Done() bool {
	return s.Phase == PhaseDone
}

// Expected returns the symbol the learner should tap next, or "" when the
// item is finished.
func (s State) Expected() string {
	if s.Current == nil || s.Phase != PhasePresenting {
		return ""
	}
	if s.Activity == activity.MissingLetter {
		if s.MissingIndex < len(s.Target) {
			return s.Target[s.MissingIndex]
		}
		return ""
	}
	if len(s.Typed) < len(s.Target) {
		return s.Target[len(s.Typed)]
	}
	return ""
}

func (s State) clone() State {
	out := s
	out.Queue = append([]content.Item(nil), s.Queue...)
	if s.Current != nil {
		cur := *s.Current
		out.Current = &cur
	}
	out.Target = append([]string(nil), s.Target...)
	out.Typed = append([]string(nil), s.Typed...)
	out.Correctness = append([]bool(nil), s.Correctness...)
	out.Keyboard = append([]string(nil), s.Keyboard...)
	return out
}

// Verdict is the judge's answer to one tap.
type Verdict string

const (
	VerdictIgnored   Verdict = "IGNORED"   // Nothing to judge
	VerdictAccepted  Verdict = "ACCEPTED"  // Right symbol, item not finished
	VerdictMistake   Verdict = "MISTAKE"   // Wrong symbol
	VerdictCompleted Verdict = "COMPLETED" // Right symbol, item finished
)
