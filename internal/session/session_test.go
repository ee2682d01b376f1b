package session

import (
	"errors"
	"testing"

	"github.com/abhisek/deutschpro/internal/catalog"
)

func testLesson(t *testing.T) catalog.Lesson {
	t.Helper()
	l, err := catalog.FindLesson("l1")
	if err != nil {
		t.Fatalf("catalog lesson l1: %v", err)
	}
	if len(l.Exercises) != 2 {
		t.Fatalf("l1 should have 2 exercises, has %d", len(l.Exercises))
	}
	return l
}

func quizState(t *testing.T) *SessionState {
	t.Helper()
	s := New(testLesson(t))
	if err := s.StartQuiz(); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	return s
}

func wrongOption(ex catalog.Exercise) string {
	for _, o := range ex.Options {
		if o != ex.CorrectAnswer {
			return o
		}
	}
	return ""
}

func TestNew_StartsReading(t *testing.T) {
	s := New(testLesson(t))
	if s.Phase != PhaseReading {
		t.Errorf("Phase = %s, want reading", s.Phase)
	}
	if s.ID == "" || s.ID == New(testLesson(t)).ID {
		t.Error("expected a fresh session id")
	}
	if err := s.Choose("e1-1", "Guten Morgen"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Choose while reading = %v, want ErrWrongPhase", err)
	}
}

func TestStartQuiz_OnlyFromReading(t *testing.T) {
	s := quizState(t)
	if err := s.StartQuiz(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("second StartQuiz = %v, want ErrWrongPhase", err)
	}
}

func TestCanSubmit_RequiresEveryAnswer(t *testing.T) {
	s := quizState(t)
	exs := s.Lesson.Exercises

	if s.CanSubmit() {
		t.Fatal("CanSubmit with no answers")
	}
	if err := s.Choose(exs[0].ID, exs[0].CorrectAnswer); err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if s.CanSubmit() {
		t.Fatal("CanSubmit with 1 of 2 answers")
	}
	if _, err := s.Submit(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Submit = %v, want ErrIncomplete", err)
	}
	if s.Phase != PhaseQuiz {
		t.Fatal("failed submit must not change phase")
	}

	// Changing an answer doesn't change coverage.
	if err := s.Choose(exs[0].ID, wrongOption(exs[0])); err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if s.CanSubmit() {
		t.Fatal("CanSubmit after re-answering the same exercise")
	}

	if err := s.Choose(exs[1].ID, exs[1].CorrectAnswer); err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if !s.CanSubmit() {
		t.Fatal("CanSubmit should be true with every exercise answered")
	}
}

func TestChoose_RejectsUnknownExerciseAndOption(t *testing.T) {
	s := quizState(t)
	if err := s.Choose("nope", "Guten Morgen"); err == nil {
		t.Error("expected error for unknown exercise")
	}
	if err := s.Choose("e1-1", "Moin"); err == nil {
		t.Error("expected error for option not in exercise")
	}
	if len(s.Answers) != 0 {
		t.Errorf("rejected choices were recorded: %v", s.Answers)
	}
}

func TestSubmit_Scores(t *testing.T) {
	tests := []struct {
		name        string
		correct     []bool
		wantScore   int
		wantCorrect int
	}{
		{"all correct", []bool{true, true}, 100, 2},
		{"half correct", []bool{true, false}, 50, 1},
		{"none correct", []bool{false, false}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quizState(t)
			for i, ex := range s.Lesson.Exercises {
				opt := wrongOption(ex)
				if tt.correct[i] {
					opt = ex.CorrectAnswer
				}
				if err := s.Choose(ex.ID, opt); err != nil {
					t.Fatalf("Choose: %v", err)
				}
			}

			r, err := s.Submit()
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if r.Score != tt.wantScore || r.Correct != tt.wantCorrect || r.Total != 2 {
				t.Errorf("result = %+v, want score %d correct %d", r, tt.wantScore, tt.wantCorrect)
			}
			if r.LessonID != "l1" || r.SessionID != s.ID {
				t.Errorf("result identity = %+v", r)
			}
			if s.Phase != PhaseScored || s.Result == nil {
				t.Error("expected scored phase with result")
			}
		})
	}
}

func TestScored_IsFrozen(t *testing.T) {
	s := quizState(t)
	for _, ex := range s.Lesson.Exercises {
		_ = s.Choose(ex.ID, ex.CorrectAnswer)
	}
	if _, err := s.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	ex := s.Lesson.Exercises[0]
	if err := s.Choose(ex.ID, wrongOption(ex)); !errors.Is(err, ErrFrozen) {
		t.Fatalf("Choose after scoring = %v, want ErrFrozen", err)
	}
	if s.Answers[ex.ID] != ex.CorrectAnswer {
		t.Fatal("frozen answer changed")
	}
	if _, err := s.Submit(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("second Submit = %v, want ErrWrongPhase", err)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 3, 100},
	}
	for _, tt := range tests {
		if got := Score(tt.correct, tt.total); got != tt.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestZeroExerciseLesson(t *testing.T) {
	s := New(catalog.Lesson{ID: "empty", Title: "Trống"})
	_ = s.StartQuiz()
	if !s.CanSubmit() {
		t.Fatal("a lesson without exercises can be submitted immediately")
	}
	r, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.Score != 0 || r.Total != 0 {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestAttachFeedback_Guards(t *testing.T) {
	s := quizState(t)
	if s.AttachFeedback(s.ID, "e1-1", "Toll!") {
		t.Fatal("feedback accepted before scoring")
	}

	for _, ex := range s.Lesson.Exercises {
		_ = s.Choose(ex.ID, ex.CorrectAnswer)
	}
	_, _ = s.Submit()

	if s.AttachFeedback("other-session", "e1-1", "Toll!") {
		t.Fatal("feedback for another session accepted")
	}
	if s.AttachFeedback(s.ID, "nope", "Toll!") {
		t.Fatal("feedback for unknown exercise accepted")
	}
	if !s.AttachFeedback(s.ID, "e1-2", "Super!") {
		t.Fatal("valid feedback rejected")
	}
	if !s.AttachFeedback(s.ID, "e1-1", "Toll!") {
		t.Fatal("out-of-order feedback rejected")
	}

	outcomes := s.Outcomes()
	if outcomes[0].Feedback != "Toll!" || outcomes[1].Feedback != "Super!" {
		t.Fatalf("feedback misattributed: %+v", outcomes)
	}

	var nilState *SessionState
	if nilState.AttachFeedback(s.ID, "e1-1", "x") {
		t.Fatal("nil session accepted feedback")
	}
}

func TestOutcomes_EmptyBeforeScoring(t *testing.T) {
	if got := quizState(t).Outcomes(); got != nil {
		t.Fatalf("expected nil outcomes, got %v", got)
	}
}
