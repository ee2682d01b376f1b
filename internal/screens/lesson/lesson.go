package lesson

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/router"
	"github.com/abhisek/deutschpro/internal/screen"
	sess "github.com/abhisek/deutschpro/internal/session"
	"github.com/abhisek/deutschpro/internal/speech"
	"github.com/abhisek/deutschpro/internal/tutor"
	"github.com/abhisek/deutschpro/internal/ui/components"
	"github.com/abhisek/deutschpro/internal/ui/layout"
)

const (
	feedbackTimeout = 30 * time.Second
	speakTimeout    = 20 * time.Second
)

// FeedbackSource explains scored answers.
type FeedbackSource interface {
	Readiness() tutor.Readiness
	FeedbackOnAnswer(ctx context.Context, question, chosen string, correct bool) (string, error)
}

// Speaker turns a German phrase into a playable audio file.
type Speaker interface {
	Speak(ctx context.Context, text string) (string, error)
}

// exampleRef points at one example phrase in the lesson content.
type exampleRef struct {
	section int
	example int
}

// LessonScreen walks one lesson through reading, quiz and score.
type LessonScreen struct {
	state    *sess.SessionState
	feedback FeedbackSource
	speaker  Speaker
	delay    time.Duration

	// reading
	examples []exampleRef
	cursor   int
	spoken   string
	speakErr string

	// quiz
	choices []components.MultiChoice
	focus   int
	errMsg  string

	// scored
	scroll   int
	reported bool
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.BackHandler = (*LessonScreen)(nil)

// New creates a lesson screen. feedback and speaker may be nil.
func New(lesson catalog.Lesson, feedback FeedbackSource, speaker Speaker) *LessonScreen {
	s := &LessonScreen{
		state:    sess.New(lesson),
		feedback: feedback,
		speaker:  speaker,
		delay:    sess.CompletionDelay,
	}
	for i, sec := range lesson.Content {
		for j := range sec.Examples {
			s.examples = append(s.examples, exampleRef{section: i, example: j})
		}
	}
	for _, ex := range lesson.Exercises {
		s.choices = append(s.choices, components.NewMultiChoice(ex.Question, ex.Options, ex.CorrectAnswer))
	}
	return s
}

// Session exposes the underlying session state.
func (s *LessonScreen) Session() *sess.SessionState {
	return s.state
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return s.state.Lesson.Title
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch s.state.Phase {
	case sess.PhaseReading:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Ví dụ"},
			{Key: "p", Description: "Phát âm"},
			{Key: "Enter", Description: "Làm bài tập"},
		}
		if _, ok := s.nextLesson(); ok {
			hints = append(hints, layout.KeyHint{Key: "n", Description: "Bài sau"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quay lại"})
	case sess.PhaseQuiz:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Chọn"},
			{Key: "Enter", Description: "Trả lời"},
			{Key: "Tab", Description: "Câu sau"},
			{Key: "s", Description: "Nộp bài"},
			{Key: "Esc", Description: "Bỏ"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Cuộn"},
			{Key: "Enter/Esc", Description: "Hoàn thành"},
		}
	}
}

// HandlesBack keeps Esc on a scored lesson so the score is still reported.
func (s *LessonScreen) HandlesBack() bool {
	return s.state.Phase == sess.PhaseScored
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackMsg:
		if msg.Err == nil && msg.Text != "" {
			s.state.AttachFeedback(msg.SessionID, msg.ExerciseID, msg.Text)
		}
		return s, nil

	case completionTickMsg:
		if msg.SessionID != s.state.ID {
			return s, nil
		}
		return s, s.complete()

	case spokenMsg:
		switch {
		case errors.Is(msg.Err, speech.ErrDisabled):
			s.spoken, s.speakErr = "", "Phát âm chưa bật (đặt DEUTSCHPRO_TTS=1)."
		case msg.Err != nil:
			s.spoken, s.speakErr = "", msg.Err.Error()
		default:
			s.spoken, s.speakErr = msg.Path, ""
		}
		return s, nil

	case tea.KeyMsg:
		switch s.state.Phase {
		case sess.PhaseReading:
			return s.handleReadingKey(msg)
		case sess.PhaseQuiz:
			return s.handleQuizKey(msg)
		case sess.PhaseScored:
			switch msg.String() {
			case "enter", "esc":
				return s, s.complete()
			case "up", "k":
				s.scroll = max(s.scroll-1, 0)
			case "down", "j":
				s.scroll++
			}
		}
	}
	return s, nil
}

func (s *LessonScreen) handleReadingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.examples)-1 {
			s.cursor++
		}
	case "p":
		return s, s.speakSelected()
	case "n":
		if next, ok := s.nextLesson(); ok {
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: New(next, s.feedback, s.speaker)}
			}
		}
	case "enter":
		if err := s.state.StartQuiz(); err != nil {
			s.errMsg = err.Error()
		}
	}
	return s, nil
}

func (s *LessonScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "right", "l":
		s.moveFocus(1)
		return s, nil
	case "shift+tab", "left", "h":
		s.moveFocus(-1)
		return s, nil
	case "s":
		return s, s.submit()
	}

	if len(s.choices) == 0 {
		if msg.String() == "enter" {
			return s, s.submit()
		}
		return s, nil
	}

	var picked string
	s.choices[s.focus], picked = s.choices[s.focus].Update(msg)
	if picked == "" {
		return s, nil
	}

	ex := s.state.Lesson.Exercises[s.focus]
	if err := s.state.Choose(ex.ID, picked); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.choices[s.focus].Chosen = picked
	s.focusNextUnanswered()
	return s, nil
}

func (s *LessonScreen) moveFocus(delta int) {
	n := len(s.choices)
	if n == 0 {
		return
	}
	s.focus = (s.focus + delta + n) % n
}

// focusNextUnanswered moves to the next exercise without an answer,
// staying put when everything is answered.
func (s *LessonScreen) focusNextUnanswered() {
	n := len(s.choices)
	for step := 1; step < n; step++ {
		i := (s.focus + step) % n
		if _, ok := s.state.Answered(s.state.Lesson.Exercises[i].ID); !ok {
			s.focus = i
			return
		}
	}
}

func (s *LessonScreen) submit() tea.Cmd {
	if !s.state.CanSubmit() {
		s.errMsg = "Hãy trả lời tất cả các câu trước khi nộp bài."
		return nil
	}
	if _, err := s.state.Submit(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	for i := range s.choices {
		s.choices[i].Revealed = true
	}

	cmds := []tea.Cmd{completionTick(s.state.ID, s.delay)}
	cmds = append(cmds, s.requestFeedback()...)
	return tea.Batch(cmds...)
}

// requestFeedback asks the tutor about every scored answer. Nothing is
// requested when no credential is ready.
func (s *LessonScreen) requestFeedback() []tea.Cmd {
	if s.feedback == nil || s.feedback.Readiness() != tutor.ReadinessReady {
		return nil
	}
	sessionID := s.state.ID
	var cmds []tea.Cmd
	for _, o := range s.state.Outcomes() {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), feedbackTimeout)
			defer cancel()
			text, err := s.feedback.FeedbackOnAnswer(ctx, o.Question, o.Chosen, o.Correct)
			return feedbackMsg{SessionID: sessionID, ExerciseID: o.ExerciseID, Text: text, Err: err}
		})
	}
	return cmds
}

// complete reports the result once. Later ticks or key presses are no-ops.
func (s *LessonScreen) complete() tea.Cmd {
	if s.reported || s.state.Result == nil {
		return nil
	}
	s.reported = true
	result := *s.state.Result
	return func() tea.Msg { return CompletedMsg{Result: result} }
}

func (s *LessonScreen) speakSelected() tea.Cmd {
	if s.speaker == nil || len(s.examples) == 0 {
		return nil
	}
	ref := s.examples[s.cursor]
	text := s.state.Lesson.Content[ref.section].Examples[ref.example].De
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
		defer cancel()
		path, err := s.speaker.Speak(ctx, text)
		return spokenMsg{Text: text, Path: path, Err: err}
	}
}

// nextLesson returns the catalog lesson after this one. Generated lessons
// have no successor.
func (s *LessonScreen) nextLesson() (catalog.Lesson, bool) {
	all := catalog.AllLessons()
	for i, l := range all {
		if l.ID == s.state.Lesson.ID && i+1 < len(all) {
			return all[i+1], true
		}
	}
	return catalog.Lesson{}, false
}
