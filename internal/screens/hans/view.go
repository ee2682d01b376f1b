package hans

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/chat"
	"github.com/abhisek/deutschpro/internal/ui/components"
	"github.com/abhisek/deutschpro/internal/ui/theme"
)

const greeting = "Hallo! Ich bin Hans. Hôm nay bạn muốn luyện tập gì? Chúng ta có thể nói về văn hóa Đức, ngữ pháp, hoặc tập hội thoại."

func (s *HansScreen) View(width, height int) string {
	bubble := max(width*3/4, 20)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, renderMessage(chat.Message{Role: chat.RoleModel, Text: greeting}, width, bubble)...)
	for _, m := range s.transcript.Messages() {
		lines = append(lines, "")
		lines = append(lines, renderMessage(m, width, bubble)...)
	}
	if s.transcript.Pending() {
		lines = append(lines, "", "  "+components.Dim(pendingNotice))
	}

	footer := []string{
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0))),
		"  " + s.input.View(),
	}
	if s.status != "" {
		footer = append([]string{"  " + theme.Hint.Render(s.status)}, footer...)
	}

	// Keep the newest messages visible above the input.
	room := height - len(footer)
	if room < 0 {
		room = 0
	}
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for len(lines) < room {
		lines = append(lines, "")
	}
	return strings.Join(append(lines, footer...), "\n")
}

func renderMessage(m chat.Message, width, bubble int) []string {
	var style lipgloss.Style
	switch {
	case m.Failed:
		style = lipgloss.NewStyle().Foreground(theme.Error).Italic(true)
	case m.Role == chat.RoleUser:
		style = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Primary).Padding(0, 1)
	default:
		style = lipgloss.NewStyle().Foreground(theme.Text).
			Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1)
	}

	text := m.Text
	if m.Audio != "" {
		text += "\n♪ " + m.Audio
	}
	rendered := style.Width(bubble).Render(text)

	pos := lipgloss.Left
	if m.Role == chat.RoleUser {
		pos = lipgloss.Right
	}
	var out []string
	for _, l := range strings.Split(rendered, "\n") {
		out = append(out, lipgloss.PlaceHorizontal(width-2, pos, l))
	}
	return out
}
