package session

// Result is what a scored session reports on completion.
type Result struct {
	SessionID   string
	LessonID    string
	LessonTitle string
	Score       int
	Correct     int
	Total       int
}

// ExerciseOutcome is one row of the scored view.
type ExerciseOutcome struct {
	ExerciseID string
	Question   string
	Chosen     string
	Correct    bool
	Answer     string
	Feedback   string
}

// Outcomes lists each exercise with its chosen answer, in lesson order.
// It is empty until the session is scored.
func (s *SessionState) Outcomes() []ExerciseOutcome {
	if s.Phase != PhaseScored {
		return nil
	}
	out := make([]ExerciseOutcome, 0, len(s.Lesson.Exercises))
	for _, ex := range s.Lesson.Exercises {
		chosen := s.Answers[ex.ID]
		out = append(out, ExerciseOutcome{
			ExerciseID: ex.ID,
			Question:   ex.Question,
			Chosen:     chosen,
			Correct:    ex.IsCorrect(chosen),
			Answer:     ex.CorrectAnswer,
			Feedback:   s.Feedback[ex.ID],
		})
	}
	return out
}
