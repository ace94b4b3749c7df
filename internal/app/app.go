// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/screens/home"
	"github.com/abhisek/alefba/internal/screens/welcome"
	"github.com/abhisek/alefba/internal/ui/layout"
)

var (
	keyQuit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit"))
	keyBack = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back"))

	menuHints = []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}}
)

// Options configures Run.
type Options struct {
	Services    *screen.Services
	SkipWelcome bool
	// Open builds a screen shown on top of home from the start, such as a
	// review session requested on the command line.
	Open func(svc *screen.Services) screen.Screen
}

type masteredMsg int

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router        *router.Router
	svc           *screen.Services
	width, height int

	caption  captionLine
	mastered int

	startCmd tea.Cmd
}

func newAppModel(opts Options) AppModel {
	svc := opts.Services
	m := AppModel{svc: svc}
	switch {
	case opts.Open != nil:
		m.router = router.New(home.New(svc))
		m.startCmd = m.router.Push(opts.Open(svc))
	case opts.SkipWelcome:
		m.router = router.New(home.New(svc))
		m.startCmd = m.router.Active().Init()
	default:
		m.router = router.New(welcome.New(func() screen.Screen { return home.New(svc) }))
		m.startCmd = m.router.Active().Init()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.startCmd, m.listen(), m.countMastered())
}

func (m AppModel) listen() tea.Cmd {
	if m.svc == nil || m.svc.Captions == nil {
		return nil
	}
	return listen(m.svc.Captions.C())
}

// countMastered refreshes the header counter. It runs after every
// navigation since finished sessions change it.
func (m AppModel) countMastered() tea.Cmd {
	if m.svc == nil || m.svc.Items == nil {
		return nil
	}
	items := m.svc.Items
	return func() tea.Msg {
		all, err := items.ListAll(context.Background())
		if err != nil {
			return nil
		}
		return masteredMsg(len(content.Mastered(all)))
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case captionMsg:
		var expire tea.Cmd
		m.caption, expire = m.caption.show(msg.caption)
		return m, tea.Batch(m.listen(), expire)

	case captionExpiredMsg:
		m.caption = m.caption.expire(msg.gen)
		return m, nil

	case masteredMsg:
		m.mastered = int(msg)
		return m, nil

	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg:
		return m, tea.Batch(m.router.Update(msg), m.countMastered())

	case tea.KeyPressMsg:
		if key.Matches(msg, keyQuit) {
			if m.svc != nil && m.svc.Engine != nil {
				m.svc.Engine.Exit()
			}
			return m, tea.Quit
		}
		if key.Matches(msg, keyBack) && !m.activeHandlesBack() {
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}
	return m, m.router.Update(msg)
}

func (m AppModel) activeHandlesBack() bool {
	bh, ok := m.router.Active().(screen.BackHandler)
	return ok && bh.HandlesBack()
}

func (m AppModel) streak() int {
	if m.svc == nil || m.svc.Engine == nil {
		return 0
	}
	return m.svc.Engine.State().Streak
}

// footerHints ends with the quit key whatever the screen offers.
func (m AppModel) footerHints() []layout.KeyHint {
	quit := layout.HintsFromBindings(keyQuit)
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); hints != nil {
			return append(hints, quit...)
		}
	}
	if m.router.Depth() > 1 {
		return append(layout.HintsFromBindings(keyBack), quit...)
	}
	return append(append([]layout.KeyHint(nil), menuHints...), quit...)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	switch {
	case m.width == 0 || m.height == 0:
		return ""
	case layout.IsTooSmall(m.width, m.height):
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	var title string
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.streak(), m.mastered, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)
	caption := m.caption.view(m.width)

	body := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(caption), 0)
	screenView := lipgloss.NewStyle().Height(body).Render(m.router.View(m.width, body))
	return layout.RenderFrame(header, screenView+"\n"+caption, footer, m.width, m.height)
}

// Run blocks until the program exits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
