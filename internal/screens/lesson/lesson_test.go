package lesson

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/router"
	sess "github.com/abhisek/deutschpro/internal/session"
	"github.com/abhisek/deutschpro/internal/speech"
	"github.com/abhisek/deutschpro/internal/tutor"
)

type fakeFeedback struct {
	mu        sync.Mutex
	readiness tutor.Readiness
	calls     int
}

func (f *fakeFeedback) Readiness() tutor.Readiness { return f.readiness }

func (f *fakeFeedback) FeedbackOnAnswer(_ context.Context, question, _ string, correct bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if correct {
		return "Sehr gut! " + question, nil
	}
	return "Fast! " + question, nil
}

type fakeSpeaker struct {
	err error
}

func (f fakeSpeaker) Speak(_ context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "/tmp/audio/" + text + ".mp3", nil
}

func l1(t *testing.T) catalog.Lesson {
	t.Helper()
	l, err := catalog.FindLesson("l1")
	if err != nil {
		t.Fatalf("FindLesson: %v", err)
	}
	return l
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func keyRune(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

// collect runs cmd and any batched commands, returning every message.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// answerAll picks an option for every exercise with number keys.
func answerAll(t *testing.T, s *LessonScreen, correct bool) {
	t.Helper()
	for i, ex := range s.state.Lesson.Exercises {
		s.focus = i
		for j, opt := range ex.Options {
			if (opt == ex.CorrectAnswer) == correct {
				s.Update(keyRune(rune('1' + j)))
				break
			}
		}
	}
}

func TestLessonScreen_Title(t *testing.T) {
	s := New(l1(t), nil, nil)
	if s.Title() != l1(t).Title {
		t.Errorf("Title() = %q", s.Title())
	}
}

func TestLessonScreen_ReadingDisplay(t *testing.T) {
	s := New(l1(t), nil, nil)
	v := s.View(80, 40)
	if !strings.Contains(v, "Guten Morgen") {
		t.Fatalf("reading view should list examples, got %q", v)
	}
	if !strings.Contains(v, "Moin") {
		t.Fatal("l1 should show the greeting culture tip")
	}
}

func TestLessonScreen_EnterStartsQuiz(t *testing.T) {
	s := New(l1(t), nil, nil)
	s.Update(enter())
	if s.state.Phase != sess.PhaseQuiz {
		t.Fatalf("phase = %s, want quiz", s.state.Phase)
	}
	if v := s.View(80, 40); !strings.Contains(v, "Kiểm tra kiến thức") {
		t.Fatal("expected quiz heading")
	}
}

func TestLessonScreen_SubmitRequiresAllAnswers(t *testing.T) {
	s := New(l1(t), nil, nil)
	s.Update(enter())
	s.Update(enter()) // answers exercise 1 with the first option

	_, cmd := s.Update(keyRune('s'))
	if cmd != nil || s.state.Phase != sess.PhaseQuiz {
		t.Fatal("submit with a missing answer must not score")
	}
	if s.errMsg == "" {
		t.Fatal("expected an error message")
	}
}

func TestLessonScreen_PickAdvancesFocus(t *testing.T) {
	s := New(l1(t), nil, nil)
	s.Update(enter())
	s.Update(enter())
	if s.focus != 1 {
		t.Fatalf("focus = %d, want the next unanswered exercise", s.focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.focus != 0 {
		t.Fatalf("tab should wrap focus, got %d", s.focus)
	}
}

func TestLessonScreen_CompletionAfterDelay(t *testing.T) {
	s := New(l1(t), nil, nil)
	s.delay = time.Millisecond
	s.Update(enter())
	answerAll(t, s, true)

	_, cmd := s.Update(keyRune('s'))
	if s.state.Phase != sess.PhaseScored {
		t.Fatalf("phase = %s, want scored", s.state.Phase)
	}

	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected only the completion tick without a tutor, got %d msgs", len(msgs))
	}
	_, cmd = s.Update(msgs[0])
	if cmd == nil {
		t.Fatal("tick should report completion")
	}
	done, ok := cmd().(CompletedMsg)
	if !ok {
		t.Fatal("expected CompletedMsg")
	}
	if done.Result.LessonID != "l1" || done.Result.Score != 100 || done.Result.Total != 2 {
		t.Fatalf("unexpected result %+v", done.Result)
	}

	if _, again := s.Update(msgs[0]); again != nil {
		t.Fatal("completion must be reported once")
	}
	if _, again := s.Update(enter()); again != nil {
		t.Fatal("enter after reporting must not report again")
	}
}

func TestLessonScreen_EnterFinishesEarly(t *testing.T) {
	s := New(l1(t), nil, nil)
	s.Update(enter())
	answerAll(t, s, false)
	s.Update(keyRune('s'))

	_, cmd := s.Update(enter())
	done, ok := cmd().(CompletedMsg)
	if !ok || done.Result.Score != 0 {
		t.Fatalf("expected zero-score completion, got %#v", done)
	}
}

func TestLessonScreen_EscOnScoredReports(t *testing.T) {
	s := New(l1(t), nil, nil)
	if s.HandlesBack() {
		t.Fatal("esc while reading leaves the lesson")
	}
	s.Update(enter())
	if s.HandlesBack() {
		t.Fatal("esc during the quiz leaves the lesson")
	}
	answerAll(t, s, true)
	s.Update(keyRune('s'))
	if !s.HandlesBack() {
		t.Fatal("a scored lesson must handle esc itself")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should report completion")
	}
	done, ok := cmd().(CompletedMsg)
	if !ok || done.Result.Score != 100 {
		t.Fatalf("expected full-score completion, got %#v", done)
	}
}

func TestLessonScreen_IgnoresForeignTick(t *testing.T) {
	s := New(l1(t), nil, nil)
	s.Update(enter())
	answerAll(t, s, true)
	s.Update(keyRune('s'))

	if _, cmd := s.Update(completionTickMsg{SessionID: "someone-else"}); cmd != nil {
		t.Fatal("tick for another session must be ignored")
	}
}

func TestLessonScreen_FeedbackOnlyWhenReady(t *testing.T) {
	tests := []struct {
		name      string
		readiness tutor.Readiness
		wantCalls int
	}{
		{"ready", tutor.ReadinessReady, 2},
		{"missing", tutor.ReadinessMissing, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeFeedback{readiness: tt.readiness}
			s := New(l1(t), fb, nil)
			s.delay = time.Millisecond
			s.Update(enter())
			answerAll(t, s, true)
			_, cmd := s.Update(keyRune('s'))

			for _, msg := range collect(cmd) {
				s.Update(msg)
			}
			if fb.calls != tt.wantCalls {
				t.Fatalf("feedback calls = %d, want %d", fb.calls, tt.wantCalls)
			}
			if tt.wantCalls > 0 && !strings.Contains(s.state.Feedback["e1-1"], "Sehr gut!") {
				t.Fatalf("feedback not attached: %v", s.state.Feedback)
			}
		})
	}
}

func TestLessonScreen_LateFeedbackDropped(t *testing.T) {
	s := New(l1(t), nil, nil)
	s.Update(enter())
	answerAll(t, s, true)
	s.Update(keyRune('s'))

	s.Update(feedbackMsg{SessionID: "old", ExerciseID: "e1-1", Text: "stale"})
	s.Update(feedbackMsg{SessionID: s.state.ID, ExerciseID: "e1-2", Err: errors.New("timeout")})
	if len(s.state.Feedback) != 0 {
		t.Fatalf("unexpected feedback %v", s.state.Feedback)
	}
}

func TestLessonScreen_Speak(t *testing.T) {
	s := New(l1(t), nil, fakeSpeaker{})
	_, cmd := s.Update(keyRune('p'))
	if cmd == nil {
		t.Fatal("expected speak command")
	}
	s.Update(cmd())
	if !strings.HasSuffix(s.spoken, ".mp3") {
		t.Fatalf("spoken = %q", s.spoken)
	}

	s = New(l1(t), nil, fakeSpeaker{err: speech.ErrDisabled})
	_, cmd = s.Update(keyRune('p'))
	s.Update(cmd())
	if !strings.Contains(s.speakErr, "DEUTSCHPRO_TTS") {
		t.Fatalf("speakErr = %q", s.speakErr)
	}
}

func TestLessonScreen_NextLesson(t *testing.T) {
	s := New(l1(t), nil, nil)
	_, cmd := s.Update(keyRune('n'))
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if msg.Screen.Title() == s.Title() {
		t.Fatal("next lesson should differ")
	}

	daily := New(catalog.Lesson{ID: "daily-2026-10-16", Title: "Daily"}, nil, nil)
	if _, cmd := daily.Update(keyRune('n')); cmd != nil {
		t.Fatal("generated lessons have no successor")
	}
}

func TestLessonScreen_KeyHints(t *testing.T) {
	s := New(l1(t), nil, nil)
	if len(s.KeyHints()) != 5 {
		t.Fatalf("reading hints = %d, want 5", len(s.KeyHints()))
	}
	s.Update(enter())
	if len(s.KeyHints()) != 5 {
		t.Fatalf("quiz hints = %d, want 5", len(s.KeyHints()))
	}
}

func TestWindow(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	if got := window(lines, 0, 4); got != "0\n1\n2\n3" {
		t.Errorf("top window = %q", got)
	}
	if got := window(lines, 9, 4); got != "6\n7\n8\n9" {
		t.Errorf("bottom window = %q", got)
	}
	if got := window(lines[:3], 2, 4); got != "0\n1\n2" {
		t.Errorf("short window = %q", got)
	}
}
