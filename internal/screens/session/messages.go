package session

import (
	sess "github.com/abhisek/alefba/internal/session"
)

// planReadyMsg carries the plan built for this screen's session.
type planReadyMsg struct {
	Plan sess.Plan
	Err  error
}

// engineEventMsg is one event read from the engine subscription. Events
// from a subscription this screen no longer holds are ignored.
type engineEventMsg struct {
	Sub   <-chan sess.Event
	Event sess.Event
	Open  bool
}

// flashDoneMsg clears a banner unless a newer one replaced it.
type flashDoneMsg struct {
	ID int
}
