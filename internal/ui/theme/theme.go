// Package theme holds the colors and shared styles of the terminal UI.
package theme

import "charm.land/lipgloss/v2"

// Tile colors: turquoise, saffron and pomegranate on a night-blue ground.
var (
	Primary   = lipgloss.Color("#0D9488")
	Secondary = lipgloss.Color("#38BDF8")
	Accent    = lipgloss.Color("#EA580C")
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#E11D48")

	Text    = lipgloss.Color("#F1F5F9")
	TextDim = lipgloss.Color("#8CA0B8")
	BgDark  = lipgloss.Color("#0B1226")
	BgCard  = lipgloss.Color("#18233D")
	Border  = lipgloss.Color("#2F3E5C")

	ArcadeYellow = lipgloss.Color("#F5B700") // saffron
	ArcadeCyan   = lipgloss.Color("#2DD4BF")
)

// Correct and Incorrect mark drill outcomes.
var (
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Keycap is one key of the on-screen keyboard.
var Keycap = lipgloss.NewStyle().
	Foreground(Text).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// KeycapSelected is the key under the cursor.
var KeycapSelected = Keycap.
	Foreground(BgDark).
	Background(ArcadeYellow).
	BorderForeground(ArcadeYellow).
	Bold(true)

// Slot is one letter position of the target word, underlined.
var Slot = lipgloss.NewStyle().
	Foreground(TextDim).
	Border(lipgloss.NormalBorder(), false, false, true, false).
	BorderForeground(Border).
	Padding(0, 1)

// SlotHidden is the gap of a missing-letter drill.
var SlotHidden = Slot.Foreground(ArcadeYellow).BorderForeground(ArcadeYellow)
