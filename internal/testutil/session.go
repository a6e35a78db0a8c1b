package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/dennisdenk/vergabe.ai/internal/llm"
)

// SentMessage is one message a FakeSession received.
type SentMessage struct {
	Role    llm.Role
	Content string
	Plain   bool // sent via SendMessage rather than SendRoleMessage
}

// FakeSession is an llm.Session that answers from a script. Replies for
// FILL turns are looked up by label in Fills; every other message gets
// Default. Unscripted FILL labels get Default too.
type FakeSession struct {
	Fills   map[string][]string
	Default string

	// FailOn makes the Nth message (1-based) return Err.
	FailOn int
	Err    error

	Sent []SentMessage
}

// NewFakeSession returns a session that acknowledges everything with OK.
func NewFakeSession() *FakeSession {
	return &FakeSession{Fills: map[string][]string{}, Default: "OK"}
}

// OnFill queues replies for FILL turns carrying label, consumed in order.
func (s *FakeSession) OnFill(label string, replies ...string) *FakeSession {
	s.Fills[label] = append(s.Fills[label], replies...)
	return s
}

func (s *FakeSession) SendMessage(ctx context.Context, content string) (*llm.Reply, error) {
	return s.send(ctx, llm.RoleUser, content, true)
}

func (s *FakeSession) SendRoleMessage(ctx context.Context, role llm.Role, content string) (*llm.Reply, error) {
	return s.send(ctx, role, content, false)
}

func (s *FakeSession) send(ctx context.Context, role llm.Role, content string, plain bool) (*llm.Reply, error) {
	s.Sent = append(s.Sent, SentMessage{Role: role, Content: content, Plain: plain})

	if s.FailOn > 0 && len(s.Sent) == s.FailOn {
		if s.Err == nil {
			return nil, fmt.Errorf("fake session: message %d failed", s.FailOn)
		}
		return nil, s.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if label, ok := strings.CutPrefix(content, "FILL "); ok {
		if queued := s.Fills[label]; len(queued) > 0 {
			s.Fills[label] = queued[1:]
			return &llm.Reply{Content: queued[0], Model: "fake"}, nil
		}
	}
	return &llm.Reply{Content: s.Default, Model: "fake"}, nil
}

// Contents returns the content of every sent message, in order.
func (s *FakeSession) Contents() []string {
	out := make([]string, len(s.Sent))
	for i, m := range s.Sent {
		out[i] = m.Content
	}
	return out
}

// FillLabels returns the labels of every FILL turn, in order.
func (s *FakeSession) FillLabels() []string {
	var out []string
	for _, m := range s.Sent {
		if label, ok := strings.CutPrefix(m.Content, "FILL "); ok {
			out = append(out, label)
		}
	}
	return out
}
