package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/screens/summary"
	sess "github.com/abhisek/alefba/internal/session"
	"github.com/abhisek/alefba/internal/ui/components"
	"github.com/abhisek/alefba/internal/ui/layout"
)

// flashDuration is how long a banner stays up.
const flashDuration = 1500 * time.Millisecond

var errNoEngine = errors.New("session engine is not configured")

// SessionScreen implements screen.Screen for a running drill session.
// It is a thin view over the engine: taps go in through Engine.Input and
// every change comes back as an engine event.
type SessionScreen struct {
	svc      *screen.Services
	category content.Category
	review   bool

	keys     keyMap
	help     help.Model
	keyboard components.Keyboard

	loaded  bool
	state   sess.State
	itemKey string

	sub         <-chan sess.Event
	unsubscribe func()

	flash   string
	flashOK bool
	flashID int

	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)

// New creates a session screen for category c. With review set the session
// revisits due items instead of teaching the next one.
func New(svc *screen.Services, c content.Category, review bool) *SessionScreen {
	return &SessionScreen{
		svc:      svc,
		category: c,
		review:   review,
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	svc, c, review := s.svc, s.category, s.review
	return func() tea.Msg {
		if svc == nil || svc.Planner == nil || svc.Engine == nil {
			return planReadyMsg{Err: errNoEngine}
		}
		ctx := context.Background()
		var (
			plan sess.Plan
			err  error
		)
		if review {
			plan, err = svc.Planner.Review(ctx, c)
		} else {
			plan, err = svc.Planner.Learning(ctx, c)
		}
		return planReadyMsg{Plan: plan, Err: err}
	}
}

func (s *SessionScreen) Title() string {
	verb := "Learn"
	if s.review {
		verb = "Review"
	}
	return verb + " " + s.category.Label()
}

// HandlesBack keeps the app from popping the screen on Esc; a running
// session asks for confirmation first.
func (s *SessionScreen) HandlesBack() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop"},
			{Key: "N", Description: "Keep going"},
		}
	case s.errMsg != "" || (s.loaded && s.state.Empty()):
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case !s.loaded:
		return nil
	}
	return layout.HintsFromBindings(s.keys.Tap, s.keys.Digit, s.keys.Quit)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		return s.handlePlan(msg)

	case engineEventMsg:
		return s.handleEvent(msg)

	case flashDoneMsg:
		if msg.ID == s.flashID {
			s.flash = ""
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handlePlan(msg planReadyMsg) (screen.Screen, tea.Cmd) {
	s.loaded = true
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		if s.svc != nil && s.svc.Log != nil {
			s.svc.Log.WithError(msg.Err).Warn("could not plan session")
		}
		return s, nil
	}

	engine := s.svc.Engine
	// Subscribe first so the opening events are not missed.
	s.sub, s.unsubscribe = engine.Subscribe()
	engine.Start(context.Background(), msg.Plan)
	s.apply(engine.State())

	if s.state.Empty() {
		s.stopListening()
		return s, nil
	}
	return s, listen(s.sub)
}

func (s *SessionScreen) handleEvent(msg engineEventMsg) (screen.Screen, tea.Cmd) {
	if msg.Sub != s.sub || !msg.Open {
		return s, nil
	}
	ev := msg.Event
	s.apply(ev.State)

	var cmd tea.Cmd
	switch ev.Kind {
	case sess.EventError:
		cmd = s.setFlash("دوباره امتحان کن", false)
	case sess.EventSuccess:
		cmd = s.setFlash("آفرین!", true)
	case sess.EventStreakMilestone:
		cmd = s.setFlash(fmt.Sprintf("★ %d تا پشت سر هم!", ev.State.Streak), true)
	case sess.EventSessionComplete:
		return s, s.finish()
	}
	return s, tea.Batch(cmd, listen(s.sub))
}

// apply takes a state snapshot from the engine. The keyboard is rebuilt
// whenever a new item comes up.
func (s *SessionScreen) apply(st sess.State) {
	s.state = st
	k := itemKey(st)
	if k != s.itemKey {
		s.itemKey = k
		s.keyboard = components.NewKeyboard(st.Keyboard)
	}
}

func itemKey(st sess.State) string {
	if st.Current == nil {
		return ""
	}
	return fmt.Sprintf("%s/%d/%s", st.SessionID, st.Completed, st.Current.ID)
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" || (s.loaded && s.state.Empty()) {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !s.loaded {
		if key.Matches(msg, s.keys.Quit) {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.quit()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keys.Quit):
		s.confirmQuit = true
	case key.Matches(msg, s.keys.Help):
		s.help.ShowAll = !s.help.ShowAll
	case key.Matches(msg, s.keys.Left):
		s.keyboard.Move(1)
	case key.Matches(msg, s.keys.Right):
		s.keyboard.Move(-1)
	case key.Matches(msg, s.keys.Tap):
		if sym, ok := s.keyboard.Current(); ok {
			s.tap(sym)
		}
	case key.Matches(msg, s.keys.Digit):
		n := int(msg.String()[0] - '0')
		if sym, ok := s.keyboard.At(n); ok {
			s.keyboard.Cursor = n - 1
			s.tap(sym)
		}
	default:
		// Children with a Persian layout can type the symbol directly.
		if msg.Text != "" && s.keyboard.Index(msg.Text) >= 0 {
			s.keyboard.Cursor = s.keyboard.Index(msg.Text)
			s.tap(msg.Text)
		}
	}
	return s, nil
}

// tap sends one symbol to the engine. The outcome is rendered from the
// event that follows; only the red key is tracked here.
func (s *SessionScreen) tap(symbol string) {
	if s.state.Phase != sess.PhasePresenting {
		return
	}
	switch s.svc.Engine.Input(context.Background(), symbol) {
	case sess.VerdictMistake:
		s.keyboard.Wrong = symbol
	case sess.VerdictAccepted, sess.VerdictCompleted:
		s.keyboard.Wrong = ""
	}
}

func (s *SessionScreen) quit() tea.Cmd {
	s.svc.Engine.Exit()
	return s.finish()
}

func (s *SessionScreen) finish() tea.Cmd {
	s.stopListening()
	sum := s.svc.Engine.Summary()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func (s *SessionScreen) stopListening() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.sub, s.unsubscribe = nil, nil
}

func (s *SessionScreen) setFlash(text string, ok bool) tea.Cmd {
	s.flashID++
	s.flash, s.flashOK = text, ok
	id := s.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{ID: id}
	})
}

// listen waits for the next engine event.
func listen(sub <-chan sess.Event) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-sub
		return engineEventMsg{Sub: sub, Event: ev, Open: ok}
	}
}
