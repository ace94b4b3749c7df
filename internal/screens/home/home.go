package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/report"
	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/screens/history"
	"github.com/abhisek/alefba/internal/screens/islands"
	"github.com/abhisek/alefba/internal/screens/parent"
	sessionscreen "github.com/abhisek/alefba/internal/screens/session"
	"github.com/abhisek/alefba/internal/store"
	"github.com/abhisek/alefba/internal/ui/components"
	"github.com/abhisek/alefba/internal/ui/layout"
)

// stats are the counters on the dashboard.
type stats struct {
	total    int
	started  int
	mastered int
	due      int
	recent   bool // something was mastered in the last day
}

type statsLoadedMsg struct {
	stats stats
	err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc    *screen.Services
	menu   components.Menu
	labels []string
	stats  stats
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ router.Refresher = (*HomeScreen)(nil)

// New creates the home screen.
func New(svc *screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}
	play := func(c content.Category, review bool) func() tea.Cmd {
		return push(func() screen.Screen { return sessionscreen.New(svc, c, review) })
	}

	items := []components.MenuItem{
		{Label: "LEARN LETTERS", Action: play(content.CategoryAlphabet, false)},
		{Label: "LEARN NUMBERS", Action: play(content.CategoryNumber, false)},
		{Label: "REVIEW LETTERS", Action: play(content.CategoryAlphabet, true)},
		{Label: "REVIEW NUMBERS", Action: play(content.CategoryNumber, true)},
		{Label: "ISLAND MAP", Action: push(func() screen.Screen { return islands.New(svc) })},
		{Label: "PARENT REPORT", Action: push(func() screen.Screen { return parent.New(svc) })},
		{Label: "HISTORY", Action: push(func() screen.Screen {
			var events store.EventRepo
			if svc != nil {
				events = svc.Events
			}
			return history.New(events)
		})},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	for _, it := range items {
		h.labels = append(h.labels, it.Label)
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Refresh reloads the counters after a session or a reset.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	svc := h.svc
	return func() tea.Msg {
		if svc == nil || svc.Items == nil {
			return statsLoadedMsg{}
		}
		items, err := svc.Items.ListAll(context.Background())
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		return statsLoadedMsg{stats: computeStats(items, svc.Clock())}
	}
}

func computeStats(items []content.Item, now time.Time) stats {
	r := report.Build(items, now)
	st := stats{
		total:    r.Overall.Total,
		started:  r.Overall.Started,
		mastered: r.Overall.Mastered,
		due:      r.Overall.Due,
	}
	dayAgo := now.Add(-24 * time.Hour).UnixMilli()
	for _, it := range items {
		if it.IsMastered() && it.LastReviewTime >= dayAgo {
			st.recent = true
			break
		}
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.stats = msg.stats
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.stats.due >= 3:
		return MascotAlert
	case h.stats.recent:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.Compact(width, height)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if h.errMsg != "" {
		sections = append(sections, "Could not load progress: "+h.errMsg)
	}
	sections = append(sections, renderArcadeMenu(h.labels, h.menu.Selected, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
