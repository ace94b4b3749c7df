package components

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/ui/theme"
)

// ProgressBar is a labelled static progress bar.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// Percent returns Done/Total clamped to [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// View renders "label  [bar]  done/total".
func (p ProgressBar) View() string {
	var prefix string
	if p.Label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	suffix := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d/%d", p.Done, p.Total))

	barWidth := p.Width - lipgloss.Width(prefix) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}
	bar := progress.New(
		progress.WithColors(theme.Secondary, theme.Primary),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	return prefix + bar.ViewAs(p.Percent()) + suffix
}
