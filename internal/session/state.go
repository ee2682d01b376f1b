package session

import (
	"github.com/google/uuid"

	"github.com/abhisek/deutschpro/internal/catalog"
)

// SessionPhase represents the current phase of a lesson session.
type SessionPhase int

const (
	PhaseReading SessionPhase = iota // Showing lesson content
	PhaseQuiz                        // Collecting one answer per exercise
	PhaseScored                      // Answers frozen, score computed
)

func (p SessionPhase) String() string {
	switch p {
	case PhaseReading:
		return "reading"
	case PhaseQuiz:
		return "quiz"
	case PhaseScored:
		return "scored"
	default:
		return "unknown"
	}
}

// SessionState tracks one pass through a lesson.
type SessionState struct {
	// ID identifies this pass. Async feedback carries it back so results
	// for a discarded session can be dropped.
	ID string

	// Lesson is the lesson being studied.
	Lesson catalog.Lesson

	// Phase is the current session phase.
	Phase SessionPhase

	// Answers maps exercise id to the chosen option.
	Answers map[string]string

	// Feedback maps exercise id to tutor feedback, filled after scoring.
	Feedback map[string]string

	// Result is set once the quiz is submitted.
	Result *Result
}

// New starts a session in the reading phase.
func New(lesson catalog.Lesson) *SessionState {
	return &SessionState{
		ID:       uuid.NewString(),
		Lesson:   lesson,
		Phase:    PhaseReading,
		Answers:  make(map[string]string),
		Feedback: make(map[string]string),
	}
}
