package hans

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/deutschpro/internal/chat"
	"github.com/abhisek/deutschpro/internal/router"
	"github.com/abhisek/deutschpro/internal/screen"
	"github.com/abhisek/deutschpro/internal/screens/connect"
	"github.com/abhisek/deutschpro/internal/screens/lesson"
	"github.com/abhisek/deutschpro/internal/tutor"
	"github.com/abhisek/deutschpro/internal/ui/components"
	"github.com/abhisek/deutschpro/internal/ui/layout"
)

const (
	chatTimeout = 60 * time.Second

	// TransientNotice is shown inline when a send fails for a reason other
	// than the credential.
	TransientNotice = "Có lỗi kết nối với Hans. Vui lòng kiểm tra lại API Key."

	credentialNotice = "Hans cần API Key để bắt đầu cuộc trò chuyện vui vẻ với bạn! (nhấn c)"
	checkingNotice   = "Đang kiểm tra API Key..."
	pendingNotice    = "Hans đang gõ..."
)

// Tutor is the chat backend.
type Tutor interface {
	connect.Credentials
	Chat(ctx context.Context, history []chat.Message, message string) (string, error)
}

type replyMsg struct {
	Text string
	Err  error
}

type audioMsg struct {
	// Len is the transcript length when synthesis was requested.
	Len  int
	Path string
	Err  error
}

// HansScreen is a conversation with Hans, the AI tutor.
type HansScreen struct {
	tutor      Tutor
	transcript *chat.Transcript
	speaker    lesson.Speaker
	input      components.TextInput
	status     string
}

var _ screen.Screen = (*HansScreen)(nil)
var _ screen.KeyHintProvider = (*HansScreen)(nil)

// New creates a chat screen over transcript, which outlives the screen.
func New(t Tutor, transcript *chat.Transcript, speaker lesson.Speaker) *HansScreen {
	s := &HansScreen{
		tutor:      t,
		transcript: transcript,
		speaker:    speaker,
		input:      components.NewTextInput("Viết cho Hans bằng tiếng Đức hoặc tiếng Việt...", false, 500),
	}
	s.syncInput()
	return s
}

func (s *HansScreen) Init() tea.Cmd {
	if s.input.Disabled() {
		return nil
	}
	return s.input.Init()
}

func (s *HansScreen) Title() string {
	return "Trò chuyện với Hans"
}

func (s *HansScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Gửi"}}
	if s.tutor.Readiness() != tutor.ReadinessReady {
		hints = []layout.KeyHint{{Key: "c", Description: "Kết nối API Key"}}
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+P", Description: "Phát âm"},
		layout.KeyHint{Key: "Ctrl+L", Description: "Xóa"},
		layout.KeyHint{Key: "Esc", Description: "Quay lại"},
	)
}

func (s *HansScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	focus := s.syncInput()

	switch msg := msg.(type) {
	case replyMsg:
		return s, tea.Batch(focus, s.handleReply(msg))

	case audioMsg:
		switch {
		case msg.Err != nil:
			s.status = msg.Err.Error()
		case msg.Len == s.transcript.Len() && s.transcript.AttachAudio(msg.Path):
			s.status = ""
		}
		return s, focus

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+l":
			if err := s.transcript.Clear(); err != nil {
				s.status = pendingNotice
			} else {
				s.status = ""
			}
			return s, focus
		case "ctrl+p":
			return s, tea.Batch(focus, s.speakLastReply())
		case "enter":
			return s, tea.Batch(focus, s.send())
		case "c":
			if s.tutor.Readiness() != tutor.ReadinessReady {
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: connect.New(s.tutor)}
				}
			}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, tea.Batch(focus, cmd)
}

// syncInput disables the input while no credential is ready or a send is
// pending, and re-enables it otherwise. It returns the focus command when
// the input comes back.
func (s *HansScreen) syncInput() tea.Cmd {
	switch {
	case s.tutor.Readiness() == tutor.ReadinessChecking:
		s.input.Disable(checkingNotice)
	case s.tutor.Readiness() != tutor.ReadinessReady:
		s.input.Disable(credentialNotice)
	case s.transcript.Pending():
		s.input.Disable(pendingNotice)
	case s.input.Disabled():
		return s.input.Enable()
	}
	return nil
}

func (s *HansScreen) send() tea.Cmd {
	if s.input.Disabled() {
		return nil
	}
	text, history, err := s.transcript.Begin(s.input.Value())
	if err != nil {
		return nil
	}
	s.input.Reset()
	s.input.Disable(pendingNotice)
	s.status = ""

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		reply, err := s.tutor.Chat(ctx, history, text)
		return replyMsg{Text: reply, Err: err}
	}
}

func (s *HansScreen) handleReply(msg replyMsg) tea.Cmd {
	switch {
	case msg.Err == nil:
		s.transcript.Resolve(msg.Text)
	case tutor.NeedsCredential(msg.Err):
		s.transcript.Fail(credentialNotice)
	default:
		s.transcript.Fail(TransientNotice)
	}
	return s.syncInput()
}

// speakLastReply synthesizes Hans's latest reply for listening practice.
func (s *HansScreen) speakLastReply() tea.Cmd {
	if s.speaker == nil {
		return nil
	}
	msgs := s.transcript.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m.Role != chat.RoleModel || m.Failed {
			continue
		}
		n := len(msgs)
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
			defer cancel()
			path, err := s.speaker.Speak(ctx, m.Text)
			return audioMsg{Len: n, Path: path, Err: err}
		}
	}
	s.status = "Chưa có câu trả lời nào để phát âm."
	return nil
}
