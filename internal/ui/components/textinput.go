package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with DeutschPro styling.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	// Masked hides the typed value, for secrets.
	Masked   bool
	disabled bool
	reason   string
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, masked bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	ti.Focus()

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
		Masked:   masked,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. A disabled input ignores everything.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.disabled {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input, or the reason it is disabled.
func (t TextInput) View() string {
	if t.disabled {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(t.reason)
	}
	return t.Model.View()
}

// Value returns the current input value, trimmed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Reset clears the typed value.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
}

// Disable blocks input and shows reason in place of the field.
func (t *TextInput) Disable(reason string) {
	t.disabled = true
	t.reason = reason
	t.Model.Blur()
}

// Enable re-focuses the input. The returned command starts the cursor.
func (t *TextInput) Enable() tea.Cmd {
	t.disabled = false
	t.reason = ""
	return t.Model.Focus()
}

// Disabled reports whether input is blocked.
func (t TextInput) Disabled() bool {
	return t.disabled
}
