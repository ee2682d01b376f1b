package connect

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/deutschpro/internal/router"
	"github.com/abhisek/deutschpro/internal/screen"
	"github.com/abhisek/deutschpro/internal/tutor"
	"github.com/abhisek/deutschpro/internal/ui/components"
	"github.com/abhisek/deutschpro/internal/ui/layout"
	"github.com/abhisek/deutschpro/internal/ui/theme"
)

const verifyTimeout = 15 * time.Second

// Credentials manages the API key used for the tutor.
type Credentials interface {
	Readiness() tutor.Readiness
	SelectCredential(ctx context.Context, key string) (tutor.Readiness, error)
	ForgetCredential(ctx context.Context) (tutor.Readiness, error)
	CredentialHint() string
}

// ReadinessChangedMsg is sent to the screen below after the connect screen
// closes with a verified credential.
type ReadinessChangedMsg struct {
	Readiness tutor.Readiness
}

type resultMsg struct {
	Readiness tutor.Readiness
	Forgot    bool
	Err       error
}

// ConnectScreen lets the learner enter or forget an API key.
type ConnectScreen struct {
	creds  Credentials
	input  components.TextInput
	busy   bool
	status string
	failed bool
}

var _ screen.Screen = (*ConnectScreen)(nil)
var _ screen.KeyHintProvider = (*ConnectScreen)(nil)

// New creates a ConnectScreen.
func New(creds Credentials) *ConnectScreen {
	return &ConnectScreen{
		creds: creds,
		input: components.NewTextInput("Dán API Key vào đây", true, 200),
	}
}

func (s *ConnectScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ConnectScreen) Title() string {
	return "API Key"
}

func (s *ConnectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Kết nối"},
		{Key: "Ctrl+D", Description: "Xóa key đã lưu"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *ConnectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		return s.handleResult(msg)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "ctrl+d":
			return s, s.forget()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ConnectScreen) submit() tea.Cmd {
	key := s.input.Value()
	if key == "" {
		s.status, s.failed = "Hãy nhập API Key.", true
		return nil
	}
	s.busy = true
	s.status, s.failed = "Đang kiểm tra...", false
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
		defer cancel()
		r, err := s.creds.SelectCredential(ctx, key)
		return resultMsg{Readiness: r, Err: err}
	}
}

func (s *ConnectScreen) forget() tea.Cmd {
	s.busy = true
	return func() tea.Msg {
		r, err := s.creds.ForgetCredential(context.Background())
		return resultMsg{Readiness: r, Forgot: true, Err: err}
	}
}

func (s *ConnectScreen) handleResult(msg resultMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	switch {
	case msg.Err != nil:
		s.status, s.failed = fmt.Sprintf("Không dùng được key này: %v", msg.Err), true
		return s, nil
	case msg.Forgot:
		s.status, s.failed = "Đã xóa key đã lưu.", false
		return s, nil
	case msg.Readiness != tutor.ReadinessReady:
		s.status, s.failed = "Key chưa sẵn sàng. Hãy thử key khác.", true
		return s, nil
	}

	s.input.Reset()
	return s, tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return ReadinessChangedMsg{Readiness: msg.Readiness} },
	)
}

func (s *ConnectScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	state := components.Dim("Chưa có API Key")
	switch s.creds.Readiness() {
	case tutor.ReadinessReady:
		state = theme.Correct.Render("Đã kết nối") + components.Dim("  "+s.creds.CredentialHint())
	case tutor.ReadinessChecking:
		state = components.Dim("Đang kiểm tra...")
	}

	body := "Hans dùng một dịch vụ AI bên ngoài. Dán API Key của bạn để trò chuyện, nhận giải thích và bài học mỗi ngày.\n" +
		"Key được lưu trong cơ sở dữ liệu cục bộ.\n\n" +
		"Trạng thái: " + state + "\n\n" +
		s.input.View()

	if s.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Secondary)
		if s.failed {
			style = theme.Incorrect
		}
		body += "\n\n" + style.Width(cw-4).Render(s.status)
	}

	return "\n" + components.Centered(components.Panel("Kết nối API Key", body, cw, theme.Primary), width)
}
