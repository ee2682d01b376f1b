package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/router"
	"github.com/abhisek/deutschpro/internal/screen"
	"github.com/abhisek/deutschpro/internal/store"
	"github.com/abhisek/deutschpro/internal/ui/layout"
	"github.com/abhisek/deutschpro/internal/ui/theme"
)

// CompletionSource reads finished lesson sessions.
type CompletionSource interface {
	QueryLessonCompletions(ctx context.Context, opts store.QueryOpts) ([]store.LessonCompletionRecord, error)
}

type historyLoadedMsg struct {
	Completions []store.LessonCompletionRecord
	Err         error
}

// HistoryScreen lists past lesson sessions, newest first.
type HistoryScreen struct {
	source      CompletionSource
	completions []store.LessonCompletionRecord
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source CompletionSource) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.source.QueryLessonCompletions(context.Background(), store.QueryOpts{Limit: 100})
		return historyLoadedMsg{Completions: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Lịch sử học"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Chi tiết"},
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.completions = msg.Completions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.completions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nLỗi: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Đang tải lịch sử...")
	}
	if len(s.completions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Chưa có bài học nào. Los geht's!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.summaryLine())))
	b.WriteString("\n\n")

	for i, c := range s.completions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-32s  %3d điểm  %d/%d đúng",
			prefix, c.Timestamp.Format("02/01/2006 15:04"), clip(c.LessonTitle, 32), c.Score, c.Correct, c.Total)

		style := lipgloss.NewStyle().Foreground(scoreColor(c.Score))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    bài %s · phiên %s", c.LessonID, c.SessionID)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) summaryLine() string {
	total := 0
	for _, c := range s.completions {
		total += c.Score
	}
	avg := total / len(s.completions)
	return fmt.Sprintf("%d lượt học · điểm trung bình %d", len(s.completions), avg)
}

func scoreColor(score int) color.Color {
	switch {
	case score >= 80:
		return theme.Success
	case score >= 50:
		return theme.Primary
	default:
		return theme.Error
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
