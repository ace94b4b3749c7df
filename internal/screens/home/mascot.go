package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: something mastered today
	MascotAlert                            // Orange: reviews piling up
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ا ب │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ا ب │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ا ب │
└─────┘`

// RenderMascot returns the mascot art for v.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
