// Package history lists past sessions for parents. Each session can be
// opened to show every drill answered in it.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/store"
	"github.com/abhisek/alefba/internal/ui/layout"
	"github.com/abhisek/alefba/internal/ui/theme"
)

const (
	sessionLimit = 50
	drillLimit   = 500
)

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
	keyToggle = key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Details"))
	keyBack   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back"))
)

// characters maps item ids to the symbol they teach.
var characters = func() map[string]string {
	m := make(map[string]string)
	for _, it := range content.Catalog() {
		m[it.ID] = it.Character
	}
	return m
}()

type loadedMsg struct {
	sessions []store.SessionRecord
	drills   map[string][]store.ProgressEventRecord
	err      error
}

// HistoryScreen implements screen.Screen for the session log.
type HistoryScreen struct {
	events store.EventRepo

	sessions []store.SessionRecord
	drills   map[string][]store.ProgressEventRecord // by session id, newest first
	cursor   int
	open     map[string]bool

	loaded bool
	errMsg string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{events: events, open: make(map[string]bool)}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		if events == nil {
			return loadedMsg{}
		}
		ctx := context.Background()
		sessions, err := events.RecentSessions(ctx, store.QueryOpts{Limit: sessionLimit})
		if err != nil {
			return loadedMsg{err: err}
		}
		// Without drills the list is still useful.
		progress, err := events.ProgressHistory(ctx, "", store.QueryOpts{Limit: drillLimit})
		if err != nil {
			return loadedMsg{sessions: sessions}
		}
		drills := make(map[string][]store.ProgressEventRecord)
		for _, ev := range progress {
			if ev.SessionID != "" {
				drills[ev.SessionID] = append(drills[ev.SessionID], ev)
			}
		}
		return loadedMsg{sessions: sessions, drills: drills}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFromBindings(keyToggle, keyUp, keyBack)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.sessions, s.drills = msg.sessions, msg.drills

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keyBack):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, keyUp):
			s.cursor = max(s.cursor-1, 0)
		case key.Matches(msg, keyDown):
			s.cursor = max(min(s.cursor+1, len(s.sessions)-1), 0)
		case key.Matches(msg, keyToggle):
			if s.cursor < len(s.sessions) {
				id := s.sessions[s.cursor].SessionID
				s.open[id] = !s.open[id]
			}
		}
	}
	return s, nil
}

func note(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render("\n\n" + text)
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case s.errMsg != "":
		return note(width, lipgloss.NewStyle().Foreground(theme.Error), "Error: "+s.errMsg)
	case !s.loaded:
		return note(width, dim, "Loading history...")
	case len(s.sessions) == 0:
		return note(width, dim.Italic(true), "No sessions yet. Start practicing!")
	}

	center := func(line string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, line) + "\n"
	}
	var b strings.Builder
	b.WriteString("\n")
	for i, rec := range s.sessions {
		row := lipgloss.NewStyle().Foreground(theme.Text).Render("  " + sessionLine(rec))
		if i == s.cursor {
			row = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("> " + sessionLine(rec))
		}
		b.WriteString(center(row))
		if !s.open[rec.SessionID] {
			continue
		}
		drills := s.drills[rec.SessionID]
		if len(drills) == 0 {
			b.WriteString(center(dim.Italic(true).Render("    No drills recorded")))
		}
		for j := len(drills) - 1; j >= 0; j-- {
			b.WriteString(center(drillLine(drills[j])))
		}
	}
	return b.String()
}

func sessionLine(rec store.SessionRecord) string {
	mode := "learn"
	if rec.Review {
		mode = "review"
	}
	label := rec.Category
	if c, err := content.ParseCategory(rec.Category); err == nil {
		label = c.Label()
	}
	return fmt.Sprintf("%s  %d:%02d  %-7s %-6s  %d/%d items  %d flawless  ★ %d",
		rec.Timestamp.Format("Jan 02, 2006"), rec.DurationSecs/60, rec.DurationSecs%60,
		label, mode, rec.ItemsCompleted, rec.ItemsPlanned, rec.Flawless, rec.BestStreak)
}

func drillLine(d store.ProgressEventRecord) string {
	mark, style := "✓", theme.Correct
	if !d.Correct {
		mark, style = "✗", theme.Incorrect
	}
	return style.Render(fmt.Sprintf("    %s %s %s  %s  level %d → %d",
		mark, d.ItemID, characters[d.ItemID], d.Activity, d.FromLevel, d.ToLevel))
}
