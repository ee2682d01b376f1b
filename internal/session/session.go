package session

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// CompletionDelay is how long the scored view stays up before the session
// reports completion.
const CompletionDelay = 5 * time.Second

var (
	// ErrWrongPhase is returned when an operation is not valid in the
	// current phase.
	ErrWrongPhase = errors.New("operation not allowed in this phase")

	// ErrFrozen is returned when changing answers after scoring.
	ErrFrozen = errors.New("answers are frozen after scoring")

	// ErrIncomplete is returned when submitting before every exercise has
	// an answer.
	ErrIncomplete = errors.New("every exercise needs an answer")
)

// StartQuiz moves from reading to the quiz.
func (s *SessionState) StartQuiz() error {
	if s.Phase != PhaseReading {
		return fmt.Errorf("start quiz in %s: %w", s.Phase, ErrWrongPhase)
	}
	s.Phase = PhaseQuiz
	return nil
}

// Choose records option as the answer for an exercise, replacing any
// earlier choice.
func (s *SessionState) Choose(exerciseID, option string) error {
	switch s.Phase {
	case PhaseScored:
		return ErrFrozen
	case PhaseQuiz:
	default:
		return fmt.Errorf("choose in %s: %w", s.Phase, ErrWrongPhase)
	}

	ex, ok := s.Lesson.Exercise(exerciseID)
	if !ok {
		return fmt.Errorf("unknown exercise %q", exerciseID)
	}
	if !ex.HasOption(option) {
		return fmt.Errorf("exercise %q has no option %q", exerciseID, option)
	}
	s.Answers[exerciseID] = option
	return nil
}

// Answered returns the chosen option for an exercise.
func (s *SessionState) Answered(exerciseID string) (string, bool) {
	a, ok := s.Answers[exerciseID]
	return a, ok
}

// CanSubmit reports whether every exercise has an answer.
func (s *SessionState) CanSubmit() bool {
	return s.Phase == PhaseQuiz && len(s.Answers) == len(s.Lesson.Exercises)
}

// Submit scores the quiz and freezes the answers.
func (s *SessionState) Submit() (Result, error) {
	if s.Phase != PhaseQuiz {
		return Result{}, fmt.Errorf("submit in %s: %w", s.Phase, ErrWrongPhase)
	}
	if !s.CanSubmit() {
		return Result{}, fmt.Errorf("%d of %d answered: %w", len(s.Answers), len(s.Lesson.Exercises), ErrIncomplete)
	}

	correct := 0
	for _, ex := range s.Lesson.Exercises {
		if ex.IsCorrect(s.Answers[ex.ID]) {
			correct++
		}
	}
	total := len(s.Lesson.Exercises)

	r := Result{
		SessionID:   s.ID,
		LessonID:    s.Lesson.ID,
		LessonTitle: s.Lesson.Title,
		Score:       Score(correct, total),
		Correct:     correct,
		Total:       total,
	}
	s.Result = &r
	s.Phase = PhaseScored
	return r, nil
}

// Score returns round(100*correct/total), or 0 when there are no
// exercises.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// AttachFeedback stores tutor feedback for an exercise. Results for another
// session, or arriving before scoring, are dropped.
func (s *SessionState) AttachFeedback(sessionID, exerciseID, text string) bool {
	if s == nil || sessionID != s.ID || s.Phase != PhaseScored {
		return false
	}
	if _, ok := s.Lesson.Exercise(exerciseID); !ok || text == "" {
		return false
	}
	s.Feedback[exerciseID] = text
	return true
}
