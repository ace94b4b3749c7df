package session

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/activity"
	"github.com/abhisek/alefba/internal/narration"
	sess "github.com/abhisek/alefba/internal/session"
	"github.com/abhisek/alefba/internal/ui/components"
	"github.com/abhisek/alefba/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case !s.loaded:
		return renderLoading(width)
	case s.state.Empty():
		return renderNothingDue(width)
	case s.confirmQuit:
		return renderQuitConfirm(width)
	}
	return s.renderDrill(width)
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderDrill renders the current item with its keyboard.
func (s *SessionScreen) renderDrill(width int) string {
	st := s.state
	it := *st.Current

	var b strings.Builder

	// Info line.
	mode := "Learning"
	if st.Review {
		mode = "Review"
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", st.Category.Label(), mode))

	n := min(st.Completed+1, st.Planned)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d/%d  %s %d",
			n, st.Planned,
			lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("★"),
			st.Streak,
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(centered(width).Foreground(theme.TextDim).Render(st.Activity.Label()))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render(narration.Instruction(st.Activity, it)))
	b.WriteString("\n\n")

	if st.Activity == activity.Recognition && it.ImageRef != "" {
		b.WriteString(centered(width).Foreground(theme.Accent).Render("[ " + it.ImageRef + " ]"))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderTarget(st)))
	b.WriteString("\n\n")

	if s.flash != "" {
		style := theme.Incorrect
		if s.flashOK {
			style = theme.Correct
		}
		b.WriteString(centered(width).Inherit(style).Render(s.flash))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.keyboard.View(width-8)))
	b.WriteString("\n\n")

	bar := components.ProgressBar{
		Label: "Progress",
		Done:  st.Completed,
		Total: st.Planned,
		Width: min(width-8, 60),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	s.help.SetWidth(width - 4)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.help.View(s.keys)))

	return b.String()
}

// renderTarget draws one slot per target symbol, right to left.
func renderTarget(st sess.State) string {
	slots := make([]string, len(st.Target))
	for i, sym := range st.Target {
		slots[i] = renderSlot(st, i, sym)
	}
	slices.Reverse(slots)
	return lipgloss.JoinHorizontal(lipgloss.Bottom, slots...)
}

func renderSlot(st sess.State, i int, sym string) string {
	typed := i < len(st.Typed)
	switch st.Activity {
	case activity.MissingLetter:
		if i == st.MissingIndex && !typed {
			return theme.SlotHidden.Render("؟")
		}
		if typed {
			return theme.Slot.Inherit(theme.Correct).Render(sym)
		}
		return theme.Slot.Foreground(theme.Text).Render(sym)
	case activity.Intro:
		// The guide stays visible so the letter can be copied.
		if typed {
			return theme.Slot.Inherit(theme.Correct).Render(sym)
		}
		return theme.Slot.Render(sym)
	default:
		if typed {
			return theme.Slot.Inherit(theme.Correct).Render(sym)
		}
		if i == len(st.Typed) {
			return theme.SlotHidden.Render(" ")
		}
		return theme.Slot.Render(" ")
	}
}

// renderNothingDue is shown when a review finds nothing to revisit.
func renderNothingDue(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("Nothing to review yet"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("فعلاً چیزی برای مرور نیست. بیا یه نشانه تازه یاد بگیریم!"))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Press any key to go back."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("Stop the session?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Finished items are already saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Success).Render("[Y] Yes, stop"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return centered(width).
		Foreground(theme.TextDim).
		Render("\n\n\n  Getting the next letters ready...")
}

func renderError(width int, errMsg string) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
