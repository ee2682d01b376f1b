package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ███████╗██╗   ██╗████████╗███████╗ ██████╗██╗  ██╗
 ██╔══██╗██╔════╝██║   ██║╚══██╔══╝██╔════╝██╔════╝██║  ██║
 ██║  ██║█████╗  ██║   ██║   ██║   ███████╗██║     ███████║
 ██║  ██║██╔══╝  ██║   ██║   ██║   ╚════██║██║     ██╔══██║
 ██████╔╝███████╗╚██████╔╝   ██║   ███████║╚██████╗██║  ██║
 ╚═════╝ ╚══════╝ ╚═════╝    ╚═╝   ╚══════╝ ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "D E U T S C H"

// bannerMinWidth is the narrowest terminal that fits the block letters.
const bannerMinWidth = 62

// RenderBanner returns the DEUTSCH banner with a PRO badge underneath.
// Uses a compact fallback for terminals narrower than the block letters.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)
	pro := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Accent).
		Bold(true).
		Padding(0, 1).
		Render("PRO")

	if width < bannerMinWidth {
		return style.Render(bannerCompact) + " " + pro
	}
	return lipgloss.JoinVertical(lipgloss.Right, style.Render(bannerArt), pro)
}
