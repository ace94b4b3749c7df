package narration

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/alefba/internal/activity"
	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/logging"
)

// Rand picks reward phrases. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Options configures a Narrator. Speaker and Effects default to silence.
type Options struct {
	Speaker Speaker
	Effects EffectPlayer
	Stories *Storyteller
	Rand    Rand
	Logger  logrus.FieldLogger
	Now     func() time.Time

	// LeadIn is the pause before an instruction is spoken.
	LeadIn time.Duration
	// RewardDelay separates the success effect from the reward phrase.
	RewardDelay time.Duration
	// ErrorThrottle is the minimum gap between two error effects.
	ErrorThrottle time.Duration
}

// DefaultOptions returns the standard pacing with no outputs attached.
func DefaultOptions() Options {
	return Options{
		LeadIn:        300 * time.Millisecond,
		RewardDelay:   600 * time.Millisecond,
		ErrorThrottle: 800 * time.Millisecond,
	}
}

// Narrator voices a session. It satisfies session.Feedback.
type Narrator struct {
	opts Options
	log  logrus.FieldLogger

	mu        sync.Mutex
	scope     *Scope
	lastError time.Time
	wg        sync.WaitGroup
}

// New creates a Narrator.
func New(opts Options) *Narrator {
	if opts.Speaker == nil {
		opts.Speaker = silent{}
	}
	if opts.Effects == nil {
		opts.Effects = silent{}
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Narrator{opts: opts, log: log}
}

// Scope is one narration lifetime, usually one item presentation.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	n      *Narrator
}

// Begin cancels the current scope and opens a new one under ctx.
func (n *Narrator) Begin(ctx context.Context) *Scope {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.beginLocked(ctx)
}

func (n *Narrator) beginLocked(ctx context.Context) *Scope {
	if n.scope != nil {
		n.scope.End()
	}
	sctx, cancel := context.WithCancel(ctx)
	n.scope = &Scope{ctx: sctx, cancel: cancel, n: n}
	return n.scope
}

// Context is cancelled when the scope ends or is replaced.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Go runs fn in the background with the scope's context.
func (s *Scope) Go(fn func(ctx context.Context)) {
	s.n.wg.Add(1)
	go func() {
		defer s.n.wg.Done()
		fn(s.ctx)
	}()
}

// Say waits for pause and then speaks texts in order in the background,
// stopping early if the scope ends.
func (s *Scope) Say(pause time.Duration, texts ...string) {
	s.Go(func(ctx context.Context) {
		if !sleep(ctx, pause) {
			return
		}
		for _, t := range texts {
			if !s.n.speak(ctx, t) {
				return
			}
		}
	})
}

// Effect plays a sound unless the scope has already ended.
func (s *Scope) Effect(name string) {
	if s.ctx.Err() != nil {
		return
	}
	s.n.opts.Effects.Play(s.ctx, name)
}

// End cancels the scope.
func (s *Scope) End() {
	s.cancel()
}

// speak reports whether narration should continue.
func (n *Narrator) speak(ctx context.Context, text string) bool {
	if text == "" {
		return ctx.Err() == nil
	}
	if err := n.opts.Speaker.Speak(ctx, text); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			n.log.WithError(err).Warn("speech failed")
		}
		return false
	}
	return ctx.Err() == nil
}

// Present narrates the instruction for a new item. Recognition drills at
// level 4 and up are introduced with a short story instead.
func (n *Narrator) Present(ctx context.Context, it content.Item, c activity.Choice) {
	s := n.Begin(ctx)
	if c.Type != activity.Recognition || it.Level < 4 || n.opts.Stories == nil {
		s.Say(n.opts.LeadIn, Instruction(c.Type, it))
		return
	}
	s.Go(func(ctx context.Context) {
		if sleep(ctx, n.opts.LeadIn) {
			n.speak(ctx, n.opts.Stories.Story(ctx, it))
		}
	})
}

// Mistake plays the error effect, at most once per ErrorThrottle.
func (n *Narrator) Mistake(ctx context.Context) {
	n.mu.Lock()
	now := n.opts.Now()
	if !n.lastError.IsZero() && now.Sub(n.lastError) < n.opts.ErrorThrottle {
		n.mu.Unlock()
		return
	}
	n.lastError = now
	n.mu.Unlock()

	n.opts.Effects.Play(ctx, EffectError)
}

// Success cuts off the instruction, plays the success effect and then
// speaks a random reward.
func (n *Narrator) Success(ctx context.Context) {
	n.mu.Lock()
	s := n.beginLocked(ctx)
	reward := Rewards[n.opts.Rand.IntN(len(Rewards))]
	n.mu.Unlock()

	s.Effect(EffectSuccess)
	s.Say(n.opts.RewardDelay, reward)
}

// Stop cancels the current scope.
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.scope != nil {
		n.scope.End()
		n.scope = nil
	}
}

// Wait blocks until all background narration has returned.
func (n *Narrator) Wait() {
	n.wg.Wait()
}

// sleep waits for d and reports whether ctx is still live.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

type silent struct{}

func (silent) Speak(ctx context.Context, _ string) error { return ctx.Err() }
func (silent) Play(context.Context, string) {}
