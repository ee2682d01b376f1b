package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/chat"
	"github.com/abhisek/deutschpro/internal/logger"
	"github.com/abhisek/deutschpro/internal/progress"
	"github.com/abhisek/deutschpro/internal/router"
	"github.com/abhisek/deutschpro/internal/screen"
	"github.com/abhisek/deutschpro/internal/screens/connect"
	"github.com/abhisek/deutschpro/internal/screens/history"
	"github.com/abhisek/deutschpro/internal/screens/home"
	"github.com/abhisek/deutschpro/internal/screens/lesson"
	"github.com/abhisek/deutschpro/internal/screens/welcome"
	"github.com/abhisek/deutschpro/internal/store"
	"github.com/abhisek/deutschpro/internal/tutor"
	"github.com/abhisek/deutschpro/internal/ui/layout"
)

const (
	readinessTimeout = 15 * time.Second
	storageTimeout   = 5 * time.Second
)

// Tutor is the AI gateway as the app sees it.
type Tutor interface {
	home.Tutor
	CheckReadiness(ctx context.Context) tutor.Readiness
}

// ProgressStore loads and saves the learner's progress.
type ProgressStore interface {
	Load(ctx context.Context) progress.UserProgress
	Persist(ctx context.Context, p progress.UserProgress) error
}

// History records finished lessons and lists them back.
type History interface {
	history.CompletionSource
	AppendLessonCompletion(ctx context.Context, data store.LessonCompletionData) error
}

// Options holds the collaborators built by the CLI. Tutor and Progress are
// required; the rest may be nil.
type Options struct {
	Tutor    Tutor
	Progress ProgressStore
	History  History
	Daily    home.Daily
	Speaker  lesson.Speaker
	Log      *logger.Logger

	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

type readinessCheckedMsg struct {
	Readiness tutor.Readiness
}

type completionRecordedMsg struct {
	LessonID string
	Err      error
}

// state is owned by the event loop and shared by value copies of AppModel.
type state struct {
	progress   progress.UserProgress
	transcript *chat.Transcript
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	state  *state
	log    *logger.Logger
	width  int
	height int
}

// newAppModel loads progress and builds the screen stack.
func newAppModel(opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	m := AppModel{
		opts: opts,
		log:  log.With("component", "app"),
		state: &state{
			progress:   opts.Progress.Load(ctx),
			transcript: &chat.Transcript{},
		},
	}

	homeFactory := func() screen.Screen {
		deps := home.Deps{
			Tutor:      opts.Tutor,
			Speaker:    opts.Speaker,
			Transcript: m.state.transcript,
			Progress:   m.currentProgress,
		}
		// Leave interface fields nil rather than wrapping nil values.
		if opts.Daily != nil {
			deps.Daily = opts.Daily
		}
		if opts.History != nil {
			deps.History = opts.History
		}
		return home.New(deps)
	}

	if opts.SkipWelcome {
		m.router = router.New(homeFactory())
	} else {
		m.router = router.New(welcome.New(homeFactory))
	}
	return m
}

func (m AppModel) currentProgress() progress.UserProgress {
	return m.state.progress
}

func (m AppModel) Init() tea.Cmd {
	t := m.opts.Tutor
	check := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), readinessTimeout)
		defer cancel()
		return readinessCheckedMsg{Readiness: t.CheckReadiness(ctx)}
	}
	return tea.Batch(m.router.Active().Init(), check)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.BackHandler); ok && b.HandlesBack() {
				return m, m.router.Update(msg)
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case readinessCheckedMsg:
		m.log.Info("tutor readiness", "readiness", msg.Readiness)
		return m, m.router.Update(connect.ReadinessChangedMsg{Readiness: msg.Readiness})

	case lesson.CompletedMsg:
		return m, m.complete(msg)

	case completionRecordedMsg:
		if msg.Err != nil {
			m.log.Error("record lesson completion", "lesson", msg.LessonID, "error", msg.Err)
		}
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// complete folds a finished lesson into progress, persists it, and closes
// the lesson screen. History is appended off the event loop.
func (m AppModel) complete(msg lesson.CompletedMsg) tea.Cmd {
	r := msg.Result
	m.state.progress = progress.RecordCompletion(m.state.progress, r.LessonID, r.Score)

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	// Persist logs its own failures; the in-memory value stays authoritative.
	_ = m.opts.Progress.Persist(ctx, m.state.progress)

	m.log.Info("lesson completed",
		"lesson", r.LessonID, "score", r.Score, "correct", r.Correct, "total", r.Total,
		"total_score", m.state.progress.Score)

	pop := func() tea.Msg { return router.PopScreenMsg{} }
	if m.opts.History == nil {
		return pop
	}
	h := m.opts.History
	record := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		err := h.AppendLessonCompletion(ctx, store.LessonCompletionData{
			SessionID:   r.SessionID,
			LessonID:    r.LessonID,
			LessonTitle: r.LessonTitle,
			Score:       r.Score,
			Correct:     r.Correct,
			Total:       r.Total,
		})
		return completionRecordedMsg{LessonID: r.LessonID, Err: err}
	}
	return tea.Batch(pop, record)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	p := m.state.progress
	header := layout.RenderHeader(title, p.Score, completedCatalog(p), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Thoát"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Enter", Description: "Chọn"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

func completedCatalog(p progress.UserProgress) int {
	n := 0
	for _, l := range catalog.AllLessons() {
		if p.HasCompleted(l.ID) {
			n++
		}
	}
	return n
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Tutor == nil || opts.Progress == nil {
		return fmt.Errorf("app: tutor and progress store are required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
