// Package summary shows the result card at the end of a session.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/session"
	"github.com/abhisek/alefba/internal/ui/components"
	"github.com/abhisek/alefba/internal/ui/layout"
	"github.com/abhisek/alefba/internal/ui/theme"
)

// maxStars caps the streak row so it fits narrow terminals.
const maxStars = 10

var (
	keyContinue = key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Continue"))
	keyHome     = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Home"))
)

type SummaryScreen struct {
	summary session.Summary
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
	_ screen.BackHandler     = (*SummaryScreen)(nil)
)

func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd     { return nil }
func (s *SummaryScreen) Title() string     { return "Session Summary" }
func (s *SummaryScreen) HandlesBack() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFromBindings(keyContinue, keyHome)
}

// Update leaves for home on either key; the session under this screen is
// already finished.
func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && key.Matches(k, keyContinue, keyHome) {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func headline(sum session.Summary) string {
	switch {
	case sum.Completed == 0:
		return "See you next time!"
	case sum.Completed < sum.Planned:
		return "Good try!"
	case sum.Flawless == sum.Completed:
		return "Perfect session!"
	}
	return "Session complete!"
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	line := func(fg color.Color, bold bool, text string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(fg).Bold(bold).Render(text)
	}

	mode := "learning"
	if sum.Review {
		mode = "review"
	}
	secs := int(sum.Duration.Seconds())
	rows := []string{
		line(theme.Primary, true, headline(sum)),
		line(theme.TextDim, false, sum.Category.Label()+" "+mode),
		"",
		line(theme.TextDim, false, fmt.Sprintf("Duration: %d:%02d", secs/60, secs%60)),
		"",
		line(theme.Text, false, fmt.Sprintf("Items: %d/%d        Flawless: %d        Accuracy: %.0f%%",
			sum.Completed, sum.Planned, sum.Flawless, sum.Accuracy*100)),
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ProgressBar{
			Label: "Done", Done: sum.Completed, Total: sum.Planned, Width: min(width-8, 60),
		}.View()),
	}
	if sum.BestStreak > 0 {
		stars := strings.Repeat("★", min(sum.BestStreak, maxStars))
		rows = append(rows, "", line(theme.ArcadeYellow, true, fmt.Sprintf("%s  best streak %d", stars, sum.BestStreak)))
	}
	return strings.Join(rows, "\n")
}
