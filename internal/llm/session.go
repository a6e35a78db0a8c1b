package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// Role tags a message in the conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of conversation history.
type Message struct {
	Role    Role
	Content string
}

// Reply is the assistant's answer to one sent message.
type Reply struct {
	Content   string
	Model     string
	LatencyMs int64
}

// Session is a stateful conversation with an assistant. History is kept
// by the session; callers only see the latest reply. A Session is not safe
// for concurrent use: turns must be sent one at a time.
type Session interface {
	// SendRoleMessage appends a message with the given role and returns
	// the assistant's reply to the whole conversation so far.
	SendRoleMessage(ctx context.Context, role Role, content string) (*Reply, error)

	// SendMessage is SendRoleMessage with RoleUser.
	SendMessage(ctx context.Context, content string) (*Reply, error)
}

// Completer is a stateless backend: full history in, next reply out.
type Completer interface {
	Complete(ctx context.Context, history []Message) (*Reply, error)
}

// Conversation implements Session on top of a Completer, retaining history
// and applying per-attempt timeouts and retries.
type Conversation struct {
	cfg       Config
	completer Completer
	observer  Observer
	history   []Message
	turns     int
}

// NewConversation creates an empty conversation backed by completer.
func NewConversation(completer Completer, cfg Config, observer Observer) *Conversation {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Conversation{
		cfg:       cfg,
		completer: completer,
		observer:  observer,
	}
}

func (c *Conversation) SendMessage(ctx context.Context, content string) (*Reply, error) {
	return c.SendRoleMessage(ctx, RoleUser, content)
}

func (c *Conversation) SendRoleMessage(ctx context.Context, role Role, content string) (*Reply, error) {
	start := time.Now()
	c.turns++

	c.history = append(c.history, Message{Role: role, Content: content})

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	tried := 0

	for i := 0; i < attempts; i++ {
		tried++
		reply, err := c.attempt(ctx)
		if err == nil {
			reply.LatencyMs = time.Since(start).Milliseconds()
			c.history = append(c.history, Message{Role: RoleAssistant, Content: reply.Content})
			c.observe(role, tried, reply.LatencyMs, nil)
			return reply, nil
		}
		lastErr = err

		// Don't retry once the caller gave up.
		if ctx.Err() != nil {
			break
		}
	}

	// The failed message must not linger in history.
	c.history = c.history[:len(c.history)-1]

	err := classify(ctx, lastErr)
	c.observe(role, tried, time.Since(start).Milliseconds(), err)
	return nil, err
}

// History returns a copy of the conversation so far.
func (c *Conversation) History() []Message {
	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Conversation) attempt(ctx context.Context) (*Reply, error) {
	if c.cfg.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout())
		defer cancel()
	}
	return c.completer.Complete(ctx, c.history)
}

func (c *Conversation) observe(role Role, attempts int, latency int64, err error) {
	c.observer.OnCallComplete(CallEvent{
		Provider:  c.cfg.Provider,
		Model:     c.cfg.ModelName(),
		Role:      role,
		Turn:      c.turns,
		Attempts:  attempts,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("assistant request cancelled: %w", ctx.Err())
	case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case isConnectionError(err):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNoChoices):
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}
