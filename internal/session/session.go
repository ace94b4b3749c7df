// Package session sequences the items of a drill session and judges the
// learner's taps.
package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/alefba/internal/activity"
	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/keyboard"
	"github.com/abhisek/alefba/internal/logging"
	"github.com/abhisek/alefba/internal/spacedrep"
	"github.com/abhisek/alefba/internal/store"
)

// Recorder applies a finished drill to an item and persists it.
type Recorder interface {
	Record(ctx context.Context, it content.Item, o spacedrep.Outcome) (content.Item, error)
}

// SessionLog receives session start and end events.
type SessionLog interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Feedback is told about presentation changes so it can speak and play
// effects. Calls are made with the engine locked and must not block.
type Feedback interface {
	// Present starts narration for a new item, replacing any narration
	// still running for the previous one.
	Present(ctx context.Context, it content.Item, c activity.Choice)
	// Mistake signals a wrong tap.
	Mistake(ctx context.Context)
	// Success celebrates a flawless completion.
	Success(ctx context.Context)
	// Stop cancels whatever narration is running.
	Stop()
}

// Rand is the engine's random source. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Options wires an Engine. Everything but Config is optional.
type Options struct {
	Config   Config
	Rand     Rand
	Recorder Recorder
	Feedback Feedback
	Sessions SessionLog
	Logger   logrus.FieldLogger

	// Now and After replace the clock in tests. After schedules fn once
	// after d and returns a function that cancels it.
	Now   func() time.Time
	After func(d time.Duration, fn func()) (cancel func())
}

// Engine runs one session at a time. All methods are safe for concurrent
// use; taps and the delayed advance are serialized.
type Engine struct {
	mu sync.Mutex

	cfg      Config
	rng      Rand
	recorder Recorder
	feedback Feedback
	sessions SessionLog
	log      logrus.FieldLogger
	now      func() time.Time
	after    func(d time.Duration, fn func()) func()

	st       State
	mastered []content.Item

	ctx    context.Context
	cancel context.CancelFunc

	// gen is bumped whenever the current item changes so a stale delayed
	// advance can tell it lost the race.
	gen         int
	stopPending func()

	events broadcaster
}

// New creates an idle engine.
func New(opts Options) *Engine {
	e := &Engine{
		cfg:      opts.Config,
		rng:      opts.Rand,
		recorder: opts.Recorder,
		feedback: opts.Feedback,
		sessions: opts.Sessions,
		log:      opts.Logger,
		now:      opts.Now,
		after:    opts.After,
		st:       State{Phase: PhaseIdle},
	}
	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed>>32))
	}
	if e.log == nil {
		e.log = logging.Discard()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.after == nil {
		e.after = func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		}
	}
	return e
}

// StartLearning begins a session around main, followed by up to
// Config.LearningExtras mastered items of the same category picked at
// random from mastered. mastered also supplies keyboard decoys.
func (e *Engine) StartLearning(ctx context.Context, main content.Item, mastered []content.Item) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var extras []content.Item
	for _, it := range mastered {
		if it.Category == main.Category && it.ID != main.ID && it.IsMastered() {
			extras = append(extras, it)
		}
	}
	queue := append([]content.Item{main}, sample(extras, e.cfg.LearningExtras, e.rng)...)
	e.beginLocked(ctx, queue, main.Category, false, mastered)
}

// StartReview begins a review session of up to Config.ReviewSize items
// drawn at random from candidates. With no candidates the session is empty
// and immediately done; check State().Empty().
func (e *Engine) StartReview(ctx context.Context, candidates, mastered []content.Item) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var category content.Category
	if len(candidates) > 0 {
		category = candidates[0].Category
	}
	e.beginLocked(ctx, sample(candidates, e.cfg.ReviewSize, e.rng), category, true, mastered)
}

// Start begins the session described by p.
func (e *Engine) Start(ctx context.Context, p Plan) {
	if p.Review || p.Main == nil {
		e.StartReview(ctx, p.Candidates, p.Mastered)
		return
	}
	e.StartLearning(ctx, *p.Main, p.Mastered)
}

func (e *Engine) beginLocked(ctx context.Context, queue []content.Item, c content.Category, review bool, mastered []content.Item) {
	if e.st.Phase == PhasePresenting || e.st.Phase == PhaseComplete {
		e.stopLocked()
	}

	e.ctx, e.cancel = context.WithCancel(ctx)
	e.mastered = append([]content.Item(nil), mastered...)
	e.st = State{
		SessionID: uuid.NewString(),
		Category:  c,
		Review:    review,
		Phase:     PhasePresenting,
		Queue:     queue,
		Planned:   len(queue),
		StartedAt: e.now(),
	}

	if len(queue) == 0 {
		e.st.Phase = PhaseDone
		e.cancel()
		e.publishLocked(EventState)
		return
	}

	e.logSessionLocked(store.SessionStart)
	e.log.WithFields(logrus.Fields{
		"session":  e.st.SessionID,
		"category": c,
		"review":   review,
		"items":    len(queue),
	}).Info("session started")
	e.advanceLocked()
}

// Advance moves to the next queued item, skipping whatever is current. When
// the queue is empty the session completes. Advancing a finished session
// does nothing.
func (e *Engine) Advance(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st.Phase == PhaseIdle || e.st.Phase == PhaseDone {
		return
	}
	e.advanceLocked()
}

func (e *Engine) advanceLocked() {
	e.gen++
	if e.stopPending != nil {
		e.stopPending()
		e.stopPending = nil
	}

	if len(e.st.Queue) == 0 {
		e.finishLocked()
		return
	}

	it := e.st.Queue[0]
	e.st.Queue = e.st.Queue[1:]

	choice := activity.Choose(it, e.st.Review, e.rng)
	e.st.Current = &it
	e.st.Activity = choice.Type
	e.st.MissingIndex = choice.MissingIndex
	e.st.Target = activity.Target(choice.Type, it)
	e.st.Typed = nil
	e.st.Correctness = nil
	e.st.HadError = false
	e.st.Keyboard = keyboard.Build(it, choice.Type, e.mastered, e.rng)
	e.st.Phase = PhasePresenting

	if e.feedback != nil {
		e.feedback.Present(e.ctx, it, choice)
	}
	e.publishLocked(EventState)
}

func (e *Engine) finishLocked() {
	e.clearItemLocked()
	e.st.Phase = PhaseDone
	if e.feedback != nil {
		e.feedback.Stop()
	}
	e.logSessionLocked(store.SessionEnd)
	e.log.WithFields(logrus.Fields{
		"session":   e.st.SessionID,
		"completed": e.st.Completed,
		"flawless":  e.st.Flawless,
	}).Info("session complete")
	e.cancel()
	e.publishLocked(EventSessionComplete)
}

// Exit abandons the session: the pending advance and any narration are
// cancelled. No SESSION_COMPLETE event is sent.
func (e *Engine) Exit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st.Phase == PhaseIdle || e.st.Phase == PhaseDone {
		return
	}
	e.stopLocked()
	e.publishLocked(EventState)
}

func (e *Engine) stopLocked() {
	e.gen++
	if e.stopPending != nil {
		e.stopPending()
		e.stopPending = nil
	}
	if e.feedback != nil {
		e.feedback.Stop()
	}
	e.clearItemLocked()
	e.st.Phase = PhaseDone
	e.logSessionLocked(store.SessionEnd)
	e.log.WithField("session", e.st.SessionID).Info("session exited")
	e.cancel()
}

func (e *Engine) clearItemLocked() {
	e.st.Current = nil
	e.st.Activity = ""
	e.st.MissingIndex = 0
	e.st.Target = nil
	e.st.Typed = nil
	e.st.Correctness = nil
	e.st.HadError = false
	e.st.Keyboard = nil
}

// State returns a copy of the current session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.clone()
}

// Subscribe returns a channel of session events and a function that
// unsubscribes and closes it.
func (e *Engine) Subscribe() (<-chan Event, func()) {
	return e.events.subscribe()
}

func (e *Engine) publishLocked(kind EventKind) {
	e.events.publish(Event{Kind: kind, State: e.st.clone()})
}

func (e *Engine) logSessionLocked(action string) {
	if e.sessions == nil {
		return
	}
	data := store.SessionEventData{
		SessionID:      e.st.SessionID,
		Action:         action,
		Category:       string(e.st.Category),
		Review:         e.st.Review,
		ItemsPlanned:   e.st.Planned,
		ItemsCompleted: e.st.Completed,
		Flawless:       e.st.Flawless,
		BestStreak:     e.st.BestStreak,
	}
	if action == store.SessionEnd {
		data.DurationSecs = int(e.now().Sub(e.st.StartedAt).Seconds())
	}
	// The session context may already be cancelled by Exit.
	ctx := context.WithoutCancel(e.ctx)
	if err := e.sessions.AppendSessionEvent(ctx, data); err != nil {
		e.log.WithError(err).WithField("action", action).Warn("session event not recorded")
	}
}

// sample picks up to n items from pool at random, without replacement.
func sample(pool []content.Item, n int, r Rand) []content.Item {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	cp := append([]content.Item(nil), pool...)
	if n > len(cp) {
		n = len(cp)
	}
	// Partial Fisher-Yates.
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}
