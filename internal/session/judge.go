package session

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/alefba/internal/activity"
	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/spacedrep"
)

// Input judges one tapped symbol against the current item.
//
// Missing-letter drills need only the hidden symbol; one right tap fills
// the whole target. Every other drill is typed position by position, and
// the item counts as correct only if no wrong tap happened along the way.
// A wrong tap never moves the position back.
func (e *Engine) Input(ctx context.Context, symbol string) Verdict {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := &e.st
	if st.Current == nil || st.Phase != PhasePresenting || len(st.Target) == 0 {
		return VerdictIgnored
	}

	if st.Activity == activity.MissingLetter {
		if symbol != st.Expected() {
			return e.mistakeLocked()
		}
		st.Typed = append([]string(nil), st.Target...)
		st.Correctness = make([]bool, len(st.Target))
		for i := range st.Correctness {
			st.Correctness[i] = true
		}
		e.completeLocked(ctx, true)
		return VerdictCompleted
	}

	if symbol != st.Expected() {
		return e.mistakeLocked()
	}
	st.Typed = append(st.Typed, symbol)
	st.Correctness = append(st.Correctness, true)
	if len(st.Typed) == len(st.Target) {
		e.completeLocked(ctx, !st.HadError)
		return VerdictCompleted
	}
	e.publishLocked(EventState)
	return VerdictAccepted
}

func (e *Engine) mistakeLocked() Verdict {
	e.st.HadError = true
	if e.feedback != nil {
		e.feedback.Mistake(e.ctx)
	}
	e.publishLocked(EventError)
	return VerdictMistake
}

// completeLocked scores the current item and schedules the advance.
func (e *Engine) completeLocked(ctx context.Context, correct bool) {
	st := &e.st
	st.Phase = PhaseComplete
	it := *st.Current

	outcome := spacedrep.Outcome{
		Correct:   correct,
		Activity:  string(st.Activity),
		SessionID: st.SessionID,
	}
	var updated content.Item
	if e.recorder != nil {
		var err error
		updated, err = e.recorder.Record(ctx, it, outcome)
		if err != nil {
			// Best effort: the next outcome writes fresh data anyway.
			e.log.WithError(err).WithField("item", it.ID).Debug("continuing without saved progress")
		}
	} else {
		updated = spacedrep.Update(it, correct, e.now())
	}
	st.Current = &updated
	if updated.IsMastered() && !it.IsMastered() {
		e.mastered = append(e.mastered, updated)
	}

	st.Completed++
	if correct {
		st.Flawless++
	}

	milestone := false
	switch {
	case !correct:
		st.Streak = 0
	case st.Activity == activity.MissingLetter && !e.cfg.MissingLetterCountsForStreak:
	default:
		st.Streak++
		if st.Streak > st.BestStreak {
			st.BestStreak = st.Streak
		}
		milestone = IsStreakMilestone(st.Streak)
	}

	e.log.WithFields(logrus.Fields{
		"item":     it.ID,
		"activity": st.Activity,
		"correct":  correct,
		"streak":   st.Streak,
	}).Debug("item complete")

	delay := e.cfg.FlawedDelay
	if correct {
		delay = e.cfg.SuccessDelay
		if e.feedback != nil {
			e.feedback.Success(e.ctx)
		}
		e.publishLocked(EventSuccess)
	} else {
		e.publishLocked(EventState)
	}
	if milestone {
		e.publishLocked(EventStreakMilestone)
	}

	gen := e.gen
	e.stopPending = e.after(delay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.gen != gen || e.st.Phase != PhaseComplete {
			return
		}
		e.stopPending = nil
		e.advanceLocked()
	})
}
