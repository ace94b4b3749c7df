// Package islands draws the learning path: one island per item, grouped by
// category, unlocked in catalog order.
package islands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/spacedrep"
	"github.com/abhisek/alefba/internal/ui/layout"
	"github.com/abhisek/alefba/internal/ui/theme"
)

var (
	keyUp      = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate"))
	keyDown    = key.NewBinding(key.WithKeys("down", "j"))
	keyNextCat = key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Category"))
	keyPrevCat = key.NewBinding(key.WithKeys("shift+tab"))
	keyOpen    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Details"))
	keyBack    = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back"))
)

// section is the island chain of one category.
type section struct {
	category content.Category
	islands  []content.Island
}

// spot addresses one island on the map.
type spot struct {
	sec, idx int
}

type itemsLoadedMsg struct {
	items []content.Item
	err   error
}

// IslandsScreen implements screen.Screen for the map.
type IslandsScreen struct {
	svc      *screen.Services
	sections []section
	cursor   spot
	top      int // first rendered line
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*IslandsScreen)(nil)
var _ screen.KeyHintProvider = (*IslandsScreen)(nil)
var _ router.Refresher = (*IslandsScreen)(nil)

func New(svc *screen.Services) *IslandsScreen {
	return &IslandsScreen{svc: svc}
}

func (s *IslandsScreen) Init() tea.Cmd { return s.load() }

// Refresh reloads the map when a detail screen is closed.
func (s *IslandsScreen) Refresh() tea.Cmd { return s.load() }

func (s *IslandsScreen) load() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		if svc == nil || svc.Items == nil {
			return itemsLoadedMsg{items: content.Catalog()}
		}
		items, err := svc.Items.ListAll(context.Background())
		return itemsLoadedMsg{items: items, err: err}
	}
}

func buildSections(items []content.Item) []section {
	var out []section
	for _, c := range content.Categories {
		if isl := content.Islands(content.FilterCategory(items, c)); len(isl) > 0 {
			out = append(out, section{category: c, islands: isl})
		}
	}
	return out
}

func (s *IslandsScreen) Title() string { return "Island Map" }

func (s *IslandsScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFromBindings(keyUp, keyNextCat, keyOpen, keyBack)
}

func (s *IslandsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.sections = buildSections(msg.items)
		if _, ok := s.selected(); !ok {
			s.cursor = spot{}
		}

	case tea.KeyPressMsg:
		if len(s.sections) == 0 {
			return s, nil
		}
		switch {
		case key.Matches(msg, keyUp):
			s.step(-1)
		case key.Matches(msg, keyDown):
			s.step(1)
		case key.Matches(msg, keyNextCat):
			if s.cursor.sec+1 < len(s.sections) {
				s.cursor = spot{sec: s.cursor.sec + 1}
			}
		case key.Matches(msg, keyPrevCat):
			if s.cursor.sec > 0 {
				s.cursor = spot{sec: s.cursor.sec - 1}
			}
		case key.Matches(msg, keyOpen):
			return s, s.open()
		}
	}
	return s, nil
}

func (s *IslandsScreen) selected() (content.Island, bool) {
	c := s.cursor
	if c.sec >= len(s.sections) || c.idx >= len(s.sections[c.sec].islands) {
		return content.Island{}, false
	}
	return s.sections[c.sec].islands[c.idx], true
}

// step moves one island along the path, crossing into the neighboring
// category at either end.
func (s *IslandsScreen) step(dir int) {
	c := s.cursor
	c.idx += dir
	switch {
	case c.idx < 0 && c.sec > 0:
		c.sec--
		c.idx = len(s.sections[c.sec].islands) - 1
	case c.idx >= len(s.sections[c.sec].islands) && c.sec+1 < len(s.sections):
		c = spot{sec: c.sec + 1}
	case c.idx < 0 || c.idx >= len(s.sections[c.sec].islands):
		return
	}
	s.cursor = c
}

func (s *IslandsScreen) open() tea.Cmd {
	isl, ok := s.selected()
	if !ok {
		return nil
	}
	detail := newIslandDetail(s.svc, isl, s.now())
	return func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
}

func (s *IslandsScreen) now() time.Time {
	if s.svc == nil {
		return time.Now()
	}
	return s.svc.Clock()
}

func (s *IslandsScreen) View(width, height int) string {
	note := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return note.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case len(s.sections) == 0:
		return note.Foreground(theme.TextDim).Render("\n\n  Loading the map...")
	}

	headerStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).PaddingLeft(2)
	now := s.now()
	var (
		lines     []string
		cursorAt  int
		sectionAt int
	)
	for si, sec := range s.sections {
		if si == s.cursor.sec {
			sectionAt = len(lines)
		}
		lines = append(lines, "", headerStyle.Render(strings.ToUpper(sec.category.Label())))
		for i, isl := range sec.islands {
			here := spot{si, i} == s.cursor
			if here {
				cursorAt = len(lines)
			}
			lines = append(lines, islandRow(isl, i+1, here, now))
		}
	}

	// Keep the cursor on screen, with its category header when it fits.
	if height > 0 {
		if cursorAt-sectionAt < height {
			s.top = min(s.top, sectionAt)
		}
		s.top = min(s.top, cursorAt)
		s.top = max(s.top, cursorAt-height+1)
		lines = lines[s.top:min(s.top+height, len(lines))]
	}
	return strings.Join(lines, "\n")
}

// levelStars draws the level as filled and empty stars.
func levelStars(level int) string {
	level = max(0, min(level, content.MaxLevel))
	return strings.Repeat("★", level) + strings.Repeat("☆", content.MaxLevel-level)
}

func islandRow(isl content.Island, n int, selected bool, now time.Time) string {
	it := isl.Item
	status := spacedrep.StatusOf(it, now)

	icon, label := "🌊", string(status)
	name := lipgloss.NewStyle().Foreground(theme.Text)
	tag := lipgloss.NewStyle().Foreground(theme.Secondary)
	switch {
	case isl.Locked:
		icon, label = "🔒", "locked"
		name = name.Foreground(theme.TextDim)
		tag = name
	case status == spacedrep.StatusMastered:
		icon = "🏝"
		name = name.Foreground(theme.Success)
		tag = name
	case status == spacedrep.StatusDue:
		icon = "⏰"
		tag = tag.Foreground(theme.Accent)
	}

	marker := "  "
	if selected {
		marker = "▸ "
		name = name.Foreground(theme.Primary).Bold(true)
		tag = lipgloss.NewStyle().Foreground(theme.Primary)
	}

	title := fmt.Sprintf("%2d. %s  %s", n, it.Character, it.Word)
	if pad := 24 - lipgloss.Width(title); pad > 0 {
		title += strings.Repeat(" ", pad)
	}
	return fmt.Sprintf("  %s%s %s  %s  %s",
		marker, icon, name.Render(title),
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(levelStars(it.Level)),
		tag.Render(fmt.Sprintf("%9s", label)))
}
