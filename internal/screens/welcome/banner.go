package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/ui/theme"
)

const bannerArt = `
  █████╗ ██╗     ███████╗███████╗██████╗  █████╗
 ██╔══██╗██║     ██╔════╝██╔════╝██╔══██╗██╔══██╗
 ███████║██║     █████╗  █████╗  ██████╔╝███████║
 ██╔══██║██║     ██╔══╝  ██╔══╝  ██╔══██╗██╔══██║
 ██║  ██║███████╗███████╗██║     ██████╔╝██║  ██║
 ╚═╝  ╚═╝╚══════╝╚══════╝╚═╝     ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "A L E F B A"

// RenderBanner returns the ALEFBA banner styled in the primary color, with
// the Persian name under it. Terminals narrower than 52 columns get the
// compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)
	persian := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("الفبا")

	art := bannerArt
	if width < 52 {
		art = bannerCompact
	}
	return lipgloss.JoinVertical(lipgloss.Center, style.Render(art), "", persian)
}
