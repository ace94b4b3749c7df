package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/ui/theme"
)

const frameInterval = 120 * time.Millisecond

// parade is revealed one symbol per frame, right to left.
var parade = []string{"ا", "ب", "پ", "ت", "ث", "ج", "۱", "۲", "۳"}

var twinkle = [...]string{"✦", "★", "✧"}

type frameMsg struct{}

// WelcomeScreen walks a row of letters onto the screen, shows the banner
// once the row is complete and leaves for home on the first key press.
type WelcomeScreen struct {
	next    func() screen.Screen
	frame   int
	leaving bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the splash screen. next builds the screen that replaces it.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		w.frame++
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// paradeDone reports whether every symbol of the parade is on screen.
func (w *WelcomeScreen) paradeDone() bool {
	return w.frame >= len(parade)
}

func (w *WelcomeScreen) leave() tea.Cmd {
	if w.leaving {
		return nil
	}
	w.leaving = true
	s := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

func (w *WelcomeScreen) View(width, height int) string {
	shown := min(w.frame, len(parade))
	row := make([]string, 0, len(parade)+2)
	for i := len(parade) - 1; i >= 0; i-- {
		if i < shown {
			row = append(row, theme.Slot.Render(parade[i]))
		} else {
			row = append(row, theme.Slot.Render(" "))
		}
	}

	star := lipgloss.NewStyle().Foreground(theme.Accent).Render(twinkle[w.frame%len(twinkle)])
	row = append([]string{star + " "}, append(row, " "+star)...)
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Center, row...)}

	if w.paradeDone() {
		lines = append(lines,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("بیا با هم الفبا یاد بگیریم!"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
