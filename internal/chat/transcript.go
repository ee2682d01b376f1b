// Package chat holds the in-memory tutor conversation.
package chat

import (
	"errors"
	"strings"
)

// Role identifies who wrote a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

var (
	// ErrEmpty is returned when the user sends blank text.
	ErrEmpty = errors.New("message is empty")

	// ErrPending is returned while an earlier send has not resolved.
	ErrPending = errors.New("a reply is still pending")
)

// Message is one transcript entry. Failed marks inline error notices,
// which are shown but never sent back to the model.
type Message struct {
	Role   Role
	Text   string
	Audio  string // optional path to synthesized speech
	Failed bool
}

// Transcript is an append-only conversation with a single in-flight send.
// It is not safe for concurrent use; the UI event loop owns it.
type Transcript struct {
	messages []Message
	pending  bool
}

// Begin appends the user's message and marks a send as pending. It returns
// the trimmed text and the history that preceded it.
func (t *Transcript) Begin(text string) (string, []Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil, ErrEmpty
	}
	if t.pending {
		return "", nil, ErrPending
	}

	history := t.history()
	t.messages = append(t.messages, Message{Role: RoleUser, Text: text})
	t.pending = true
	return text, history, nil
}

// history returns the turns sent to the model. Failed notices and the
// unanswered user turns before them are left out.
func (t *Transcript) history() []Message {
	out := make([]Message, 0, len(t.messages))
	for _, m := range t.messages {
		if m.Failed {
			if n := len(out); n > 0 && out[n-1].Role == RoleUser {
				out = out[:n-1]
			}
			continue
		}
		out = append(out, m)
	}
	return out
}

// Resolve appends the model reply and clears the pending flag.
func (t *Transcript) Resolve(reply string) {
	t.messages = append(t.messages, Message{Role: RoleModel, Text: reply})
	t.pending = false
}

// Fail appends an inline notice and clears the pending flag.
func (t *Transcript) Fail(notice string) {
	t.messages = append(t.messages, Message{Role: RoleModel, Text: notice, Failed: true})
	t.pending = false
}

// AttachAudio sets the audio path on the most recent model reply.
func (t *Transcript) AttachAudio(path string) bool {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleModel && !t.messages[i].Failed {
			t.messages[i].Audio = path
			return true
		}
	}
	return false
}

// Pending reports whether a send is in flight.
func (t *Transcript) Pending() bool {
	return t.pending
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.messages...)
}

func (t *Transcript) Len() int {
	return len(t.messages)
}

// Clear empties the transcript. It is refused while a send is pending.
func (t *Transcript) Clear() error {
	if t.pending {
		return ErrPending
	}
	t.messages = nil
	return nil
}
