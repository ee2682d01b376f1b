package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/ui/theme"
)

// MascotVariant selects which Hans art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // every catalog lesson done
	MascotSleepy                    // no API key yet
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ◡  │
│ D E │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ D E │
└─╥═╥─┘
  ╚═╝`

const mascotSleepy = `┌─────┐ z
│ – – │ Z
│  ○  │
│ D E │
└─────┘`

// RenderMascot returns Hans's ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Success
	case MascotSleepy:
		art = mascotSleepy
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
