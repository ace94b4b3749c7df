package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/ui/components"
	"github.com/abhisek/alefba/internal/ui/theme"
)

const arcadeTitleFull = ` ▄▀█ █   █▀▀ █▀▀ █▄▄ ▄▀█
 █▀█ █▄▄ ██▄ █▀  █▄█ █▀█`

const arcadeTitleCompact = "A · L · E · F · B · A"

// renderTitle returns the styled title block with the Persian name under it.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return center.Render(style.Render(title)) + "\n" +
		center.Render(lipgloss.NewStyle().Foreground(theme.Text).Render("الفبا"))
}

// renderStatsBar renders the dashboard counters in a bordered box.
func renderStatsBar(st stats, cw int, compact bool) string {
	masteredStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	startedStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	reviewStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			masteredStyle.Render(fmt.Sprintf("★%d", st.mastered)),
			startedStyle.Render(fmt.Sprintf("✎%d/%d", st.started, st.total)),
			reviewText(st.due, true, reviewStyle, dimStyle),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			masteredStyle.Render(fmt.Sprintf("★ %d MASTERED", st.mastered)),
			startedStyle.Render(fmt.Sprintf("✎ %d/%d STARTED", st.started, st.total)),
			reviewText(st.due, false, reviewStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func reviewText(due int, compact bool, active, dim lipgloss.Style) string {
	if due == 0 {
		if compact {
			return dim.Render("⟳0")
		}
		return dim.Render("⟳ NONE DUE")
	}
	if compact {
		return active.Render(fmt.Sprintf("⟳%d", due))
	}
	return active.Render(fmt.Sprintf("⟳ %d DUE", due))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderArcadeMenu renders the menu as a column of buttons, or as plain
// lines when the terminal is short.
func renderArcadeMenu(labels []string, selected, cw int, compact bool) string {
	lines := make([]string, 0, len(labels))
	for i, label := range labels {
		if compact {
			if i == selected {
				lines = append(lines, lipgloss.NewStyle().
					Foreground(theme.BgDark).
					Background(theme.ArcadeYellow).
					Bold(true).
					Render(" ▸ "+label+" "))
			} else {
				lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
			}
			continue
		}
		lines = append(lines, components.ArcadeButton(label, i == selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(v MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(v))
}
