package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/chat"
	"github.com/abhisek/deutschpro/internal/progress"
	"github.com/abhisek/deutschpro/internal/router"
	"github.com/abhisek/deutschpro/internal/screen"
	"github.com/abhisek/deutschpro/internal/screens/connect"
	"github.com/abhisek/deutschpro/internal/screens/hans"
	"github.com/abhisek/deutschpro/internal/screens/history"
	"github.com/abhisek/deutschpro/internal/screens/lesson"
	"github.com/abhisek/deutschpro/internal/screens/lessons"
	"github.com/abhisek/deutschpro/internal/tutor"
	"github.com/abhisek/deutschpro/internal/ui/components"
	"github.com/abhisek/deutschpro/internal/ui/layout"
)

const (
	dailyTimeout = 2 * time.Minute
	cacheTimeout = 5 * time.Second
	speakTimeout = 30 * time.Second
)

// Tutor is everything the home screen hands down to the lesson and chat
// screens.
type Tutor interface {
	hans.Tutor
	lesson.FeedbackSource
}

// Daily supplies the generated lesson of the day.
type Daily interface {
	Cached(ctx context.Context, date time.Time) (catalog.Lesson, bool)
	Today(ctx context.Context) (catalog.Lesson, error)
	Refresh(ctx context.Context, date time.Time) (catalog.Lesson, error)
}

// Deps holds the collaborators the home screen wires into child screens.
// Nil Daily or History disables the matching menu entries.
type Deps struct {
	Tutor      Tutor
	Daily      Daily
	Speaker    lesson.Speaker
	History    history.CompletionSource
	Transcript *chat.Transcript
	Progress   func() progress.UserProgress
	Now        func() time.Time
}

type dailyState int

const (
	dailyIdle dailyState = iota
	dailyLoading
	dailyReady
	dailyFailed
)

type dailyLoadedMsg struct {
	Seq    int
	Lesson catalog.Lesson
	Err    error
	// FromCache marks a lookup that never generates. A miss leaves the
	// panel idle.
	FromCache bool
}

type wordSpokenMsg struct {
	Word string
	Path string
	Err  error
}

const (
	itemLessons = iota
	itemDaily
	itemHans
	itemHistory
	itemConnect
	itemQuit
)

// HomeScreen is the dashboard: menu, stats, lesson of the day, a tip and
// the word of the day.
type HomeScreen struct {
	deps Deps
	menu components.Menu

	daily        dailyState
	dailyLesson  catalog.Lesson
	dailySeq     int
	cacheChecked bool

	hint      catalog.Hint
	wordShift int
	spoken    string
	speakErr  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Transcript == nil {
		deps.Transcript = &chat.Transcript{}
	}
	h := &HomeScreen{
		deps: deps,
		hint: catalog.RandomHint(nil),
	}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := make([]components.MenuItem, itemQuit+1)
	items[itemLessons] = components.MenuItem{
		Label: "Bài học",
		Action: push(func() screen.Screen {
			return lessons.New(h.progress, h.feedback(), deps.Speaker)
		}),
	}
	items[itemDaily] = components.MenuItem{
		Label:    "Bài học hôm nay",
		Disabled: true,
		Action: push(func() screen.Screen {
			return lesson.New(h.dailyLesson, h.feedback(), deps.Speaker)
		}),
	}
	items[itemHans] = components.MenuItem{
		Label:    "Trò chuyện với Hans",
		Disabled: deps.Tutor == nil,
		Action: push(func() screen.Screen {
			return hans.New(deps.Tutor, deps.Transcript, deps.Speaker)
		}),
	}
	items[itemHistory] = components.MenuItem{
		Label:    "Lịch sử học",
		Disabled: deps.History == nil,
		Action: push(func() screen.Screen {
			return history.New(deps.History)
		}),
	}
	items[itemConnect] = components.MenuItem{
		Label:    "API Key",
		Disabled: deps.Tutor == nil,
		Action: push(func() screen.Screen {
			return connect.New(deps.Tutor)
		}),
	}
	items[itemQuit] = components.MenuItem{
		Label:  "Thoát",
		Action: func() tea.Cmd { return tea.Quit },
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.maybeLoadDaily()
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Enter", Description: "Chọn"},
		{Key: "r", Description: "Bài hôm nay"},
		{Key: "h", Description: "Mẹo khác"},
		{Key: "w/p", Description: "Từ mới/Phát âm"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dailyLoadedMsg:
		if msg.Seq != h.dailySeq {
			return h, nil
		}
		if msg.FromCache {
			if msg.Lesson.ID != "" {
				h.daily = dailyReady
				h.dailyLesson = msg.Lesson
				h.syncDailyItem()
			}
			return h, nil
		}
		if msg.Err != nil {
			h.daily = dailyFailed
		} else {
			h.daily = dailyReady
			h.dailyLesson = msg.Lesson
		}
		h.syncDailyItem()
		return h, nil

	case wordSpokenMsg:
		if msg.Word != h.word().De {
			return h, nil
		}
		if msg.Err != nil {
			h.speakErr = msg.Err.Error()
		} else {
			h.spoken = msg.Path
		}
		return h, nil

	case connect.ReadinessChangedMsg:
		if msg.Readiness == tutor.ReadinessReady && h.daily != dailyReady && h.daily != dailyLoading {
			return h, h.loadDaily(false)
		}
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return h, h.retryDaily()
		case "h":
			h.hint = nextHint(h.hint)
			return h, nil
		case "w":
			h.wordShift++
			h.spoken, h.speakErr = "", ""
			return h, nil
		case "p":
			return h, h.speakWord()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, tea.Batch(h.maybeLoadDaily(), cmd)
}

func (h *HomeScreen) progress() progress.UserProgress {
	if h.deps.Progress == nil {
		return progress.Default()
	}
	return h.deps.Progress()
}

func (h *HomeScreen) readiness() tutor.Readiness {
	if h.deps.Tutor == nil {
		return tutor.ReadinessMissing
	}
	return h.deps.Tutor.Readiness()
}

func (h *HomeScreen) feedback() lesson.FeedbackSource {
	if h.deps.Tutor == nil {
		return nil
	}
	return h.deps.Tutor
}

// maybeLoadDaily starts the first daily load once a credential is ready.
// Before that, a lesson already cached for today is shown.
func (h *HomeScreen) maybeLoadDaily() tea.Cmd {
	if h.daily != dailyIdle || h.deps.Daily == nil {
		return nil
	}
	if h.readiness() == tutor.ReadinessReady {
		return h.loadDaily(false)
	}
	if h.cacheChecked {
		return nil
	}
	h.cacheChecked = true
	return h.loadCachedDaily()
}

func (h *HomeScreen) loadCachedDaily() tea.Cmd {
	h.dailySeq++
	seq := h.dailySeq
	svc := h.deps.Daily
	now := h.deps.Now()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		defer cancel()
		l, ok := svc.Cached(ctx, now)
		if !ok {
			l = catalog.Lesson{}
		}
		return dailyLoadedMsg{Seq: seq, Lesson: l, FromCache: true}
	}
}

func (h *HomeScreen) retryDaily() tea.Cmd {
	if h.deps.Daily == nil || h.daily == dailyLoading || h.readiness() != tutor.ReadinessReady {
		return nil
	}
	return h.loadDaily(h.daily == dailyReady)
}

// loadDaily fetches today's lesson. refresh regenerates it even when cached.
func (h *HomeScreen) loadDaily(refresh bool) tea.Cmd {
	h.daily = dailyLoading
	h.dailySeq++
	seq := h.dailySeq
	svc := h.deps.Daily
	now := h.deps.Now()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dailyTimeout)
		defer cancel()
		var (
			l   catalog.Lesson
			err error
		)
		if refresh {
			l, err = svc.Refresh(ctx, now)
		} else {
			l, err = svc.Today(ctx)
		}
		return dailyLoadedMsg{Seq: seq, Lesson: l, Err: err}
	}
}

// syncDailyItem keeps the menu entry usable whenever some daily lesson is
// loaded, including a previous one kept after a failed refresh.
func (h *HomeScreen) syncDailyItem() {
	item := &h.menu.Items[itemDaily]
	item.Disabled = h.dailyLesson.ID == ""
	item.Detail = h.dailyLesson.GermanTitle
}

func (h *HomeScreen) word() catalog.Word {
	words := catalog.WordsOfTheDay()
	today := catalog.WordOfTheDay(h.deps.Now())
	base := 0
	for i, w := range words {
		if w.De == today.De {
			base = i
			break
		}
	}
	return words[(base+h.wordShift)%len(words)]
}

func (h *HomeScreen) speakWord() tea.Cmd {
	if h.deps.Speaker == nil {
		return nil
	}
	w := h.word()
	h.spoken, h.speakErr = "", ""
	speaker := h.deps.Speaker
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
		defer cancel()
		path, err := speaker.Speak(ctx, w.De)
		return wordSpokenMsg{Word: w.De, Path: path, Err: err}
	}
}

// nextHint picks a random hint different from cur.
func nextHint(cur catalog.Hint) catalog.Hint {
	all := catalog.Hints()
	if len(all) < 2 {
		return cur
	}
	for {
		if h := catalog.RandomHint(nil); h.ID != cur.ID {
			return h
		}
	}
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 36 || width < 90
	cw := components.ContentWidth(width)
	p := h.progress()

	var sections []string
	if !compact {
		sections = append(sections, renderTitle(cw), renderMascot(h.mascotVariant(p), cw))
	}
	sections = append(sections,
		renderStatsBar(p, h.readiness(), cw),
		renderMenu(h.menu, cw),
		h.renderDailyPanel(cw),
		renderSidePanels(h.hint, h.word(), h.spoken, h.speakErr, cw),
	)

	return renderFrame(strings.Join(sections, "\n"), width, height)
}

func (h *HomeScreen) mascotVariant(p progress.UserProgress) MascotVariant {
	switch r := h.readiness(); {
	case r == tutor.ReadinessMissing:
		return MascotSleepy
	case completedCatalog(p) == len(catalog.AllLessons()):
		return MascotCelebrating
	}
	return MascotIdle
}

// completedCatalog counts completed static lessons, ignoring daily ones.
func completedCatalog(p progress.UserProgress) int {
	n := 0
	for _, l := range catalog.AllLessons() {
		if p.HasCompleted(l.ID) {
			n++
		}
	}
	return n
}
