// Package layout draws the frame around every screen: a header bar with
// the learner's counters, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/ui/theme"
)

// The drill keyboard needs about 70 columns.
const (
	MinWidth  = 72
	MinHeight = 22

	// HeaderHeight and FooterHeight are the rendered bar heights,
	// borders included.
	HeaderHeight = 3
	FooterHeight = 3

	compactWidth  = 100
	compactHeight = 30
)

// KeyHint is one entry of the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal cannot fit a drill.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Compact reports whether a body of the given size should drop its
// decorations.
func Compact(bodyWidth, bodyHeight int) bool {
	return bodyWidth < compactWidth || bodyHeight+HeaderHeight+FooterHeight < compactHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("The window is too small.\n\nPlease make it at least %d x %d\n\nNow: %d x %d",
			MinWidth, MinHeight, width, height))
}

// bar wraps a single line in the rounded card used for header and footer.
func bar(line string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(line)
}

// RenderHeader shows the app name on the left, title centered and the
// streak and mastered counters on the right.
func RenderHeader(title string, streak, mastered, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  الفبا Alefba")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(fmt.Sprintf("★ %d", streak)) +
		"   " + lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d", mastered))

	inner := max(width-4, 0)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((inner-mw)/2-lw, 1)
	gapR := max(inner-lw-gapL-mw-rw, 1)

	return bar(left+strings.Repeat(" ", gapL)+mid+strings.Repeat(" ", gapR)+right, width)
}

func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height the bars leave.
func RenderFrame(header, body, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return header + "\n" + lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(body) + "\n" + footer
}

// HintsFromBindings turns enabled key bindings into footer hints.
func HintsFromBindings(bindings ...key.Binding) []KeyHint {
	var hints []KeyHint
	for _, b := range bindings {
		if b.Enabled() {
			hints = append(hints, KeyHint{Key: b.Help().Key, Description: b.Help().Desc})
		}
	}
	return hints
}
