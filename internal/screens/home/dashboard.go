package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/progress"
	"github.com/abhisek/deutschpro/internal/screens/welcome"
	"github.com/abhisek/deutschpro/internal/tutor"
	"github.com/abhisek/deutschpro/internal/ui/components"
	"github.com/abhisek/deutschpro/internal/ui/theme"
)

// sideBySideMin is the content width at which the tip and word panels sit
// next to each other.
const sideBySideMin = 64

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(cw))
}

func renderMascot(v MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(v))
}

// renderStatsBar renders score, catalog completion and tutor state in a
// bordered box matching content width.
func renderStatsBar(p progress.UserProgress, r tutor.Readiness, cw int) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	var hans string
	switch r {
	case tutor.ReadinessReady:
		hans = lipgloss.NewStyle().Foreground(theme.Secondary).Render("● Hans sẵn sàng")
	case tutor.ReadinessChecking:
		hans = components.Dim("○ Đang kiểm tra")
	default:
		hans = lipgloss.NewStyle().Foreground(theme.Accent).Render("○ Chưa có API Key")
	}

	stats := fmt.Sprintf("%s  %s  %s",
		scoreStyle.Render(fmt.Sprintf("★ %d điểm", p.Score)),
		doneStyle.Render(fmt.Sprintf("✓ %d/%d bài", completedCatalog(p), len(catalog.AllLessons()))),
		hans,
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Render(m.View())
}

func (h *HomeScreen) renderDailyPanel(cw int) string {
	var body string
	switch {
	case h.deps.Daily == nil:
		body = components.Dim("Không khả dụng.")
	case h.daily == dailyLoading:
		body = components.Dim("Hans đang soạn bài học hôm nay...")
	case h.daily == dailyFailed:
		body = theme.Incorrect.Render("Bài học hôm nay chưa sẵn sàng (nhấn r để thử lại).")
		if h.dailyLesson.ID != "" {
			body += "\n" + components.Dim("Vẫn có thể học bản cũ: "+h.dailyLesson.GermanTitle)
		}
	case h.daily == dailyReady:
		l := h.dailyLesson
		body = theme.German.Render(l.GermanTitle) + components.Dim(fmt.Sprintf("  %s · %s", l.Level, l.Category)) + "\n" +
			l.Title + "\n" +
			components.Dim("r: soạn lại")
	case h.readiness() == tutor.ReadinessChecking:
		body = components.Dim("Đang kiểm tra API Key...")
	default:
		body = components.Dim("Cần API Key để Hans soạn bài mỗi ngày (chọn mục API Key).")
	}
	return components.Panel("Bài học hôm nay", body, cw, theme.Primary)
}

// renderSidePanels renders the tip and the word of the day, side by side
// when there is room.
func renderSidePanels(hint catalog.Hint, w catalog.Word, spoken, speakErr string, cw int) string {
	tip := catalog.HintTypeDisplayName(hint.Type) + ": " + hint.Title
	tipBody := hint.Content + "\n" + components.Dim("h: mẹo khác")

	wordBody := theme.German.Render(w.De) + "\n" +
		theme.Vietnamese.Render(w.Vi) + "\n" +
		lipgloss.NewStyle().Italic(true).Foreground(theme.TextDim).Render("„"+w.Example+"“")
	switch {
	case speakErr != "":
		wordBody += "\n" + theme.Incorrect.Render(speakErr)
	case spoken != "":
		wordBody += "\n" + components.Dim("♪ "+spoken)
	default:
		wordBody += "\n" + components.Dim("w: từ khác · p: phát âm")
	}

	if cw < sideBySideMin {
		return strings.Join([]string{
			components.Panel(tip, tipBody, cw, theme.Secondary),
			components.Panel("Từ của ngày", wordBody, cw, theme.Accent),
		}, "\n")
	}
	half := cw / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.Panel(tip, tipBody, half, theme.Secondary),
		components.Panel("Từ của ngày", wordBody, cw-half, theme.Accent),
	)
}

// renderFrame wraps content in a double-border frame, centered
// horizontally and pinned to the top of the given area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Top).
		Render(content)
}
