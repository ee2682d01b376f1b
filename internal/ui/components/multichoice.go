package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector for one exercise. It only moves
// the cursor; the owning screen decides what a pick means.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	// Chosen is the picked option, empty until one is picked.
	Chosen string
	// Correct is revealed once Revealed is set.
	Correct  string
	Revealed bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correct string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Correct:  correct,
	}
}

// Update handles cursor movement. Enter and number keys return the option
// under the cursor as picked; the caller records it.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, string) {
	if m.Revealed {
		return m, ""
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, ""
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space", " ":
		if m.Cursor < len(m.Options) {
			return m, m.Options[m.Cursor]
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Options) {
				m.Cursor = i
				return m, m.Options[i]
			}
		}
	}
	return m, ""
}

// View renders the question and its options.
func (m MultiChoice) View(focused bool) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n")

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}
		prefix := "  "
		if focused && i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}
		mark := " "
		if opt == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && opt == m.Correct:
			style = theme.Correct
		case m.Revealed && opt == m.Chosen:
			style = theme.Incorrect
		case m.Revealed:
			style = theme.Disabled
		case focused && i == m.Cursor:
			style = theme.Selected
		case opt == m.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true once revealed and the chosen option is correct.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.Chosen == m.Correct
}
