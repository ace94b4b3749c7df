package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/narration"
	"github.com/abhisek/alefba/internal/ui/theme"
)

// captionTTL is how long a caption stays after the last one arrived.
const captionTTL = 4 * time.Second

type captionMsg struct {
	caption narration.Caption
}

// captionExpiredMsg clears the line unless a newer caption replaced it.
type captionExpiredMsg struct {
	gen int
}

// captionLine is the narration line above the footer.
type captionLine struct {
	text string
	gen  int
}

func (c captionLine) show(n narration.Caption) (captionLine, tea.Cmd) {
	c.gen++
	c.text = n.Text
	if c.text == "" {
		c.text = "♪ " + n.Effect
	}
	gen := c.gen
	return c, tea.Tick(captionTTL, func(time.Time) tea.Msg { return captionExpiredMsg{gen: gen} })
}

func (c captionLine) expire(gen int) captionLine {
	if gen == c.gen {
		c.text = ""
	}
	return c
}

func (c captionLine) view(width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.ArcadeCyan).Bold(true).Render(c.text)
}

// listen waits for the next caption from the narrator.
func listen(ch <-chan narration.Caption) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg { return captionMsg{caption: <-ch} }
}
