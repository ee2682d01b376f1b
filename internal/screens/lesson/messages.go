package lesson

import (
	"time"

	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/deutschpro/internal/session"
)

// CompletedMsg reports a finished lesson session. The app records it in
// progress and history, then pops the lesson screen.
type CompletedMsg struct {
	Result sess.Result
}

// feedbackMsg carries tutor feedback for one exercise of one session.
type feedbackMsg struct {
	SessionID  string
	ExerciseID string
	Text       string
	Err        error
}

// completionTickMsg fires CompletionDelay after scoring.
type completionTickMsg struct {
	SessionID string
}

// spokenMsg carries the audio file for an example phrase.
type spokenMsg struct {
	Text string
	Path string
	Err  error
}

func completionTick(sessionID string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return completionTickMsg{SessionID: sessionID}
	})
}
