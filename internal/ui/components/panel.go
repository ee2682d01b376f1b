package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked panels so
// they line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel wraps content in a rounded card with a bold title line.
func Panel(title, content string, cw int, accent color.Color) string {
	head := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw - 2).
		Padding(0, 1).
		Render(head + "\n" + content)
}

// Centered places s in the middle of a width-wide line.
func Centered(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// Dim renders s in the secondary text color.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s)
}
