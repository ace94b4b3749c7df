// Package parent is the grown-up view of the learner's progress.
package parent

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/report"
	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/spacedrep"
	"github.com/abhisek/alefba/internal/ui/components"
	"github.com/abhisek/alefba/internal/ui/layout"
	"github.com/abhisek/alefba/internal/ui/theme"
)

var (
	keyNext = key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Switch category"))
	keyPrev = key.NewBinding(key.WithKeys("shift+tab"))
	keyUp   = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Scroll"))
	keyDown = key.NewBinding(key.WithKeys("down", "j"))
	keyBack = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back"))
)

// chromeLines is what the view draws above the item list.
const chromeLines = 10

type reportMsg struct {
	report report.Report
	err    error
}

type ParentScreen struct {
	svc    *screen.Services
	report report.Report
	tab    int
	offset int // first visible item of the tab
	loaded bool
	errMsg string
}

var _ screen.Screen = (*ParentScreen)(nil)
var _ screen.KeyHintProvider = (*ParentScreen)(nil)

func New(svc *screen.Services) *ParentScreen {
	return &ParentScreen{svc: svc}
}

func (s *ParentScreen) Init() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		if svc == nil || svc.Items == nil {
			return reportMsg{report: report.Build(nil, time.Now())}
		}
		items, err := svc.Items.ListAll(context.Background())
		if err != nil {
			return reportMsg{err: err}
		}
		return reportMsg{report: report.Build(items, svc.Clock())}
	}
}

func (s *ParentScreen) Title() string { return "Parent Report" }

func (s *ParentScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFromBindings(keyNext, keyUp, keyBack)
}

func (s *ParentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.report = msg.report
		}

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keyBack):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, keyNext):
			s.switchTab(1)
		case key.Matches(msg, keyPrev):
			s.switchTab(-1)
		case key.Matches(msg, keyUp):
			s.offset = max(s.offset-1, 0)
		case key.Matches(msg, keyDown):
			s.offset = max(min(s.offset+1, len(s.current().Items)-1), 0)
		}
	}
	return s, nil
}

// switchTab moves between categories, wrapping at both ends.
func (s *ParentScreen) switchTab(dir int) {
	if n := len(s.report.Categories); n > 0 {
		s.tab = (s.tab + dir + n) % n
		s.offset = 0
	}
}

func (s *ParentScreen) current() report.CategoryReport {
	if s.tab < len(s.report.Categories) {
		return s.report.Categories[s.tab]
	}
	return report.CategoryReport{}
}

func (s *ParentScreen) View(width, height int) string {
	plain := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return plain.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return plain.Foreground(theme.TextDim).Render("\n\n  Building report...")
	}

	var b strings.Builder
	centered := func(line string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line) + "\n")
	}
	r := s.report
	bar := min(width-8, 60)

	b.WriteString("\n")
	centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.Narrative))
	b.WriteString("\n")
	centered(components.ProgressBar{Label: "Mastered", Done: r.Overall.Mastered, Total: r.Overall.Total, Width: bar}.View())
	centered(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"%d%% mastered · %d started · %d due for review", r.Overall.Percent(), r.Overall.Started, r.Overall.Due)))
	b.WriteString("\n")

	tabs := make([]string, len(r.Categories))
	for i, cr := range r.Categories {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.tab {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Underline(true)
		}
		tabs[i] = style.Render(fmt.Sprintf(" %s %d/%d ", cr.Category.Label(), cr.Mastered, cr.Total))
	}
	centered(strings.Join(tabs, "  "))
	centered(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", bar)))

	items := s.current().Items
	visible := max(height-chromeLines, 3)
	for _, line := range items[min(s.offset, len(items)):min(s.offset+visible, len(items))] {
		centered(itemLine(line, bar))
	}
	return b.String()
}

func itemLine(line report.ItemLine, width int) string {
	var when string
	if line.Status == spacedrep.StatusLearning {
		when = "review " + inDuration(line.NextReview)
	}
	it := line.Item
	return lipgloss.NewStyle().Width(width).Foreground(statusColor(line.Status)).
		Render(fmt.Sprintf("%s  %-8s  level %d  %-9s %s", it.Character, it.Word, it.Level, line.Status, when))
}

// inDuration rounds d down to minutes, hours or days.
func inDuration(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("in %dm", max(1, int(d.Minutes())))
	}
	h := int(d.Hours())
	if h < 48 {
		return fmt.Sprintf("in %dh", h)
	}
	return fmt.Sprintf("in %dd", h/24)
}

var statusColors = map[spacedrep.Status]color.Color{
	spacedrep.StatusMastered: theme.Success,
	spacedrep.StatusDue:      theme.Accent,
	spacedrep.StatusLearning: theme.Secondary,
}

func statusColor(st spacedrep.Status) color.Color {
	if c, ok := statusColors[st]; ok {
		return c
	}
	return theme.TextDim
}
