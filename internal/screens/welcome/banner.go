package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ██╗   ██╗███████╗████████╗██╗ ██████╗██╗  ██╗███████╗██████╗
 ██╔════╝██╔══██╗██║   ██║██╔════╝╚══██╔══╝██║██╔════╝██║ ██╔╝██╔════╝██╔══██╗
 █████╗  ██║  ██║██║   ██║███████╗   ██║   ██║██║     █████╔╝ █████╗  ██████╔╝
 ██╔══╝  ██║  ██║██║   ██║╚════██║   ██║   ██║██║     ██╔═██╗ ██╔══╝  ██╔══██╗
 ███████╗██████╔╝╚██████╔╝███████║   ██║   ██║╚██████╗██║  ██╗███████╗██║  ██║
 ╚══════╝╚═════╝  ╚═════╝ ╚══════╝   ╚═╝   ╚═╝ ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝`

const bannerCompact = "E D U S T I C K E R"

// RenderBanner returns the title banner, or a one-line fallback for
// terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
