package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/catalog"
	sess "github.com/abhisek/deutschpro/internal/session"
	"github.com/abhisek/deutschpro/internal/ui/components"
	"github.com/abhisek/deutschpro/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	var lines []string
	focusLine := 0

	lines = append(lines, s.renderHeading(width)...)

	switch s.state.Phase {
	case sess.PhaseReading:
		body, focus := s.renderReading(width)
		focusLine = len(lines) + focus
		lines = append(lines, body...)
	case sess.PhaseQuiz:
		body, focus := s.renderQuiz(width)
		focusLine = len(lines) + focus
		lines = append(lines, body...)
	case sess.PhaseScored:
		lines = append(lines, s.renderScored(width)...)
		s.scroll = min(s.scroll, max(len(lines)-height, 0))
		return strings.Join(lines[s.scroll:min(s.scroll+height, len(lines))], "\n")
	}

	if s.errMsg != "" {
		lines = append(lines, "", theme.Incorrect.Render("  "+s.errMsg))
		focusLine = len(lines) - 1
	}

	return window(lines, focusLine, height)
}

func (s *LessonScreen) renderHeading(width int) []string {
	l := s.state.Lesson
	badge := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Secondary).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("%s • %s", l.Level, l.Category))

	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(l.Title)
	german := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(l.GermanTitle)

	return []string{
		"",
		"  " + title + "  " + badge,
		"  " + german,
		lipgloss.NewStyle().Foreground(theme.Border).Render("  " + strings.Repeat("─", max(width-4, 0))),
	}
}

// renderReading lists sections and their examples. It returns the line of
// the selected example so the caller can keep it on screen.
func (s *LessonScreen) renderReading(width int) ([]string, int) {
	var lines []string
	focus := 0
	idx := 0
	textStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-6, 10))

	for i, sec := range s.state.Lesson.Content {
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
			Render(fmt.Sprintf("  %d. %s", i+1, sec.Section)))
		if sec.Text != "" {
			for _, l := range strings.Split(textStyle.Render(sec.Text), "\n") {
				lines = append(lines, "    "+l)
			}
		}
		for _, ex := range sec.Examples {
			prefix := "    "
			de := theme.German.Render(ex.De)
			if idx == s.cursor {
				prefix = "  ▸ "
				de = theme.Selected.Render(ex.De)
				focus = len(lines)
			}
			lines = append(lines, prefix+de+"  "+theme.Vietnamese.Render(ex.Vi))
			idx++
		}
		if i == 0 {
			if tip, ok := catalog.ContextualTip(s.state.Lesson.ID); ok {
				box := components.Panel(catalog.HintTypeDisplayName(tip.Type)+": "+tip.Title, tip.Content,
					components.ContentWidth(width), theme.Accent)
				for _, l := range strings.Split(box, "\n") {
					lines = append(lines, "  "+l)
				}
			}
		}
	}

	if status := s.speechStatus(); status != "" {
		lines = append(lines, "", "  "+status)
	}

	lines = append(lines, "", "  "+components.NewButton("Làm bài tập ngay", true).View())
	return lines, focus
}

func (s *LessonScreen) speechStatus() string {
	switch {
	case s.speakErr != "":
		return theme.Incorrect.Render("♪ " + s.speakErr)
	case s.spoken != "":
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("♪ " + s.spoken)
	}
	return ""
}

// renderQuiz lists exercises. It returns the first line of the focused one.
func (s *LessonScreen) renderQuiz(width int) ([]string, int) {
	lines := []string{"", lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("  ✓ Kiểm tra kiến thức")}
	focus := 0

	if len(s.choices) == 0 {
		lines = append(lines, "", components.Dim("  Bài này không có bài tập. Nhấn Enter để hoàn thành."))
		return lines, 0
	}

	for i, mc := range s.choices {
		lines = append(lines, "")
		if i == s.focus {
			focus = len(lines)
		}
		mc.Question = fmt.Sprintf("%d. %s", i+1, mc.Question)
		for _, l := range strings.Split(strings.TrimRight(mc.View(i == s.focus), "\n"), "\n") {
			lines = append(lines, "  "+l)
		}
	}

	answered := len(s.state.Answers)
	total := len(s.choices)
	bar := components.NewProgressBar(fmt.Sprintf("Đã trả lời %d/%d", answered, total),
		components.Fraction(answered, total), false, min(width-4, 50))
	lines = append(lines, "", "  "+bar.View(), "", "  "+components.NewButton("Nộp bài", s.state.CanSubmit()).View())
	return lines, focus
}

func (s *LessonScreen) renderScored(width int) []string {
	r := s.state.Result
	scoreStyle := theme.Correct
	if r.Score < 50 {
		scoreStyle = theme.Incorrect
	}

	lines := []string{
		"",
		"  " + scoreStyle.Render(fmt.Sprintf("%d điểm", r.Score)) +
			components.Dim(fmt.Sprintf("   (%d/%d câu đúng)", r.Correct, r.Total)),
	}

	wrap := lipgloss.NewStyle().Width(max(width-10, 10))
	for i, o := range s.state.Outcomes() {
		ex := s.state.Lesson.Exercises[i]
		mark := theme.Correct.Render("✓")
		if !o.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		lines = append(lines, "", fmt.Sprintf("  %s %d. %s", mark, i+1, o.Question))
		lines = append(lines, "      "+components.Dim("Bạn chọn: ")+o.Chosen+components.Dim("   Đáp án: ")+theme.Correct.Render(o.Answer))
		if ex.Explanation != "" {
			for _, l := range strings.Split(wrap.Render("Giải thích: "+ex.Explanation), "\n") {
				lines = append(lines, "      "+theme.Hint.Render(l))
			}
		}
		if o.Feedback != "" {
			for _, l := range strings.Split(wrap.Render("Hans: "+o.Feedback), "\n") {
				lines = append(lines, "      "+lipgloss.NewStyle().Foreground(theme.Secondary).Render(l))
			}
		}
	}

	lines = append(lines, "", components.Dim("  Mẹo: Đừng lo lắng nếu bạn làm sai. Sai lầm là cách tốt nhất để ghi nhớ lâu hơn!"))
	if !s.reported {
		lines = append(lines, components.Dim(fmt.Sprintf("  Kết quả sẽ được lưu sau %d giây…", int(s.delay.Seconds()))))
	}
	return lines
}

// window returns at most height lines, scrolled so that focus is visible.
func window(lines []string, focus, height int) string {
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	start := 0
	if focus >= height {
		start = focus - height/2
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return strings.Join(lines[start:start+height], "\n")
}
