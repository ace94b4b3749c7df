package components

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/ui/theme"
)

// Keyboard is the on-screen key row of a drill. Keys are numbered from 1 so
// a child can tap them with the digit row as well as with arrows.
type Keyboard struct {
	Keys   []string
	Cursor int
	// Wrong is the key last tapped by mistake, drawn in red.
	Wrong string
}

// NewKeyboard creates a keyboard with the cursor on the first key.
func NewKeyboard(keys []string) Keyboard {
	return Keyboard{Keys: keys}
}

// Move shifts the cursor by delta, wrapping around.
func (k *Keyboard) Move(delta int) {
	n := len(k.Keys)
	if n == 0 {
		return
	}
	k.Cursor = ((k.Cursor+delta)%n + n) % n
}

// Current returns the key under the cursor.
func (k Keyboard) Current() (string, bool) {
	if k.Cursor < 0 || k.Cursor >= len(k.Keys) {
		return "", false
	}
	return k.Keys[k.Cursor], true
}

// At returns the key numbered n (1-based).
func (k Keyboard) At(n int) (string, bool) {
	if n < 1 || n > len(k.Keys) {
		return "", false
	}
	return k.Keys[n-1], true
}

// Index returns the position of symbol, or -1.
func (k Keyboard) Index(symbol string) int {
	for i, s := range k.Keys {
		if s == symbol {
			return i
		}
	}
	return -1
}

// View renders the keys right to left, the reading direction of the
// symbols, wrapping into rows that fit width.
func (k Keyboard) View(width int) string {
	if len(k.Keys) == 0 {
		return ""
	}
	caps := make([]string, len(k.Keys))
	for i, sym := range k.Keys {
		style := theme.Keycap
		switch {
		case i == k.Cursor:
			style = theme.KeycapSelected
		case sym == k.Wrong:
			style = style.Foreground(theme.Error).BorderForeground(theme.Error)
		}
		face := style.Render(sym)
		label := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(lipgloss.Width(face)).
			Align(lipgloss.Center).
			Render(keyLabel(i))
		caps[i] = lipgloss.JoinVertical(lipgloss.Center, face, label)
	}

	// Fill rows in key order, then draw each row reversed so key 1 sits at
	// the top right.
	var rows []string
	var row []string
	rowWidth := 0
	flush := func() {
		if len(row) == 0 {
			return
		}
		slices.Reverse(row)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		row, rowWidth = nil, 0
	}
	for _, c := range caps {
		w := lipgloss.Width(c) + 1
		if rowWidth+w > width && len(row) > 0 {
			flush()
		}
		row = append(row, c, " ")
		rowWidth += w
	}
	flush()
	return strings.Join(rows, "\n")
}

// keyLabel is the digit that taps key i. Keys past the ninth are reachable
// with the arrows only.
func keyLabel(i int) string {
	if i < 9 {
		return fmt.Sprintf("%d", i+1)
	}
	return ""
}
