package lessons

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/progress"
	"github.com/abhisek/deutschpro/internal/router"
	"github.com/abhisek/deutschpro/internal/screen"
	"github.com/abhisek/deutschpro/internal/screens/lesson"
	"github.com/abhisek/deutschpro/internal/ui/components"
	"github.com/abhisek/deutschpro/internal/ui/layout"
	"github.com/abhisek/deutschpro/internal/ui/theme"
)

// levelFilters cycles with tab. The empty level means all.
var levelFilters = append([]catalog.Level{""}, catalog.AllLevels()...)

// LessonsScreen lists the built-in curriculum.
type LessonsScreen struct {
	all      []catalog.Lesson
	shown    []catalog.Lesson
	filter   int
	menu     components.Menu
	progress func() progress.UserProgress
	feedback lesson.FeedbackSource
	speaker  lesson.Speaker
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)

// New creates the lesson list. current returns the learner's progress at
// render time.
func New(current func() progress.UserProgress, feedback lesson.FeedbackSource, speaker lesson.Speaker) *LessonsScreen {
	s := &LessonsScreen{
		all:      catalog.AllLessons(),
		progress: current,
		feedback: feedback,
		speaker:  speaker,
	}
	s.applyFilter()
	return s
}

func (s *LessonsScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonsScreen) Title() string {
	return "Bài học"
}

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Enter", Description: "Học"},
		{Key: "Tab", Description: "Trình độ"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "tab" {
		s.filter = (s.filter + 1) % len(levelFilters)
		s.applyFilter()
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LessonsScreen) applyFilter() {
	level := levelFilters[s.filter]
	s.shown = s.shown[:0]
	for _, l := range s.all {
		if level == "" || l.Level == level {
			s.shown = append(s.shown, l)
		}
	}

	items := make([]components.MenuItem, len(s.shown))
	for i, l := range s.shown {
		items[i] = components.MenuItem{
			Label: l.Title,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: lesson.New(l, s.feedback, s.speaker)}
				}
			},
		}
	}
	s.menu = components.NewMenu(items)
}

func (s *LessonsScreen) View(width, height int) string {
	p := progress.Default()
	if s.progress != nil {
		p = s.progress()
	}

	var b strings.Builder
	b.WriteString("\n")

	done := 0
	for _, l := range s.all {
		if p.HasCompleted(l.ID) {
			done++
		}
	}
	bar := components.NewProgressBar(fmt.Sprintf("Hoàn thành %d/%d", done, len(s.all)),
		components.Fraction(done, len(s.all)), true, min(width-4, 60))
	b.WriteString("  " + bar.View() + "\n")
	b.WriteString("  " + s.filterLine() + "\n\n")

	if len(s.shown) == 0 {
		b.WriteString(components.Dim("  Chưa có bài học ở trình độ này.") + "\n")
		return b.String()
	}

	menu := s.menu
	menu.Items = make([]components.MenuItem, len(s.menu.Items))
	copy(menu.Items, s.menu.Items)
	for i, l := range s.shown {
		mark := " "
		if p.HasCompleted(l.ID) {
			mark = "✓"
		}
		menu.Items[i].Detail = fmt.Sprintf("%s · %s %s", l.Level, l.Category, mark)
	}
	b.WriteString(menu.View())

	if sel := menu.Selected; sel < len(s.shown) {
		l := s.shown[sel]
		desc := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(max(width-6, 10)).
			Render(l.GermanTitle + ": " + l.Description)
		b.WriteString("\n  " + strings.ReplaceAll(desc, "\n", "\n  ") + "\n")
	}
	return b.String()
}

func (s *LessonsScreen) filterLine() string {
	parts := make([]string, len(levelFilters))
	for i, lv := range levelFilters {
		label := string(lv)
		if lv == "" {
			label = "Tất cả"
		}
		if i == s.filter {
			parts[i] = theme.Selected.Render("[" + label + "]")
		} else {
			parts[i] = components.Dim(label)
		}
	}
	return strings.Join(parts, " ")
}
