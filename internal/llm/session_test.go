package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCompleter replays canned results and records every history it saw.
type scriptedCompleter struct {
	results []scriptedResult
	seen    [][]Message
}

type scriptedResult struct {
	content string
	err     error
	delay   time.Duration
}

func (s *scriptedCompleter) Complete(ctx context.Context, history []Message) (*Reply, error) {
	snapshot := make([]Message, len(history))
	copy(snapshot, history)
	s.seen = append(s.seen, snapshot)

	if len(s.results) == 0 {
		return nil, errors.New("script exhausted")
	}
	r := s.results[0]
	s.results = s.results[1:]

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return &Reply{Content: r.content, Model: "scripted"}, nil
}

type captureObserver struct {
	events []CallEvent
}

func (c *captureObserver) OnCallComplete(e CallEvent) { c.events = append(c.events, e) }

func testSessionConfig() Config {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 1000
	cfg.MaxRetries = 1
	return cfg
}

func TestConversation_RetainsHistory(t *testing.T) {
	comp := &scriptedCompleter{results: []scriptedResult{{content: "OK"}, {content: "OK"}, {content: "ENTER Hans Huber"}}}
	conv := NewConversation(comp, testSessionConfig(), nil)
	ctx := context.Background()

	_, err := conv.SendRoleMessage(ctx, RoleSystem, "rules")
	require.NoError(t, err)
	_, err = conv.SendRoleMessage(ctx, RoleUser, "INFO ceo Hans Huber")
	require.NoError(t, err)
	reply, err := conv.SendMessage(ctx, "FILL ceo")
	require.NoError(t, err)
	assert.Equal(t, "ENTER Hans Huber", reply.Content)

	require.Len(t, comp.seen, 3)
	assert.Equal(t, []Message{
		{Role: RoleSystem, Content: "rules"},
		{Role: RoleAssistant, Content: "OK"},
		{Role: RoleUser, Content: "INFO ceo Hans Huber"},
		{Role: RoleAssistant, Content: "OK"},
		{Role: RoleUser, Content: "FILL ceo"},
	}, comp.seen[2])

	assert.Len(t, conv.History(), 6)
}

func TestConversation_RetryOnTransientError(t *testing.T) {
	comp := &scriptedCompleter{results: []scriptedResult{{err: errors.New("status 500")}, {content: "OK"}}}
	obs := &captureObserver{}
	conv := NewConversation(comp, testSessionConfig(), obs)

	reply, err := conv.SendMessage(context.Background(), "INFO a b")
	require.NoError(t, err)
	assert.Equal(t, "OK", reply.Content)
	assert.Len(t, comp.seen, 2)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 2, obs.events[0].Attempts)
	assert.Equal(t, RoleUser, obs.events[0].Role)
}

func TestConversation_RetryExhaustedRollsBackHistory(t *testing.T) {
	comp := &scriptedCompleter{results: []scriptedResult{{err: errors.New("boom")}, {err: errors.New("boom")}}}
	obs := &captureObserver{}
	conv := NewConversation(comp, testSessionConfig(), obs)

	_, err := conv.SendMessage(context.Background(), "FILL ceo")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Empty(t, conv.History())

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "UNKNOWN", obs.events[0].ErrorCode)
}

func TestConversation_TimeoutPerAttempt(t *testing.T) {
	comp := &scriptedCompleter{results: []scriptedResult{{delay: 500 * time.Millisecond, content: "late"}, {content: "OK"}}}
	cfg := testSessionConfig()
	cfg.TimeoutMs = 50
	conv := NewConversation(comp, cfg, nil)

	reply, err := conv.SendMessage(context.Background(), "INFO a b")
	require.NoError(t, err)
	assert.Equal(t, "OK", reply.Content)
}

func TestConversation_TimeoutExhausted(t *testing.T) {
	comp := &scriptedCompleter{results: []scriptedResult{{delay: time.Second}}}
	cfg := testSessionConfig()
	cfg.TimeoutMs = 20
	cfg.MaxRetries = 0
	conv := NewConversation(comp, cfg, nil)

	_, err := conv.SendMessage(context.Background(), "FILL ceo")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestConversation_CancelledContextNotRetried(t *testing.T) {
	comp := &scriptedCompleter{results: []scriptedResult{{err: errors.New("boom")}, {content: "OK"}}}
	conv := NewConversation(comp, testSessionConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.SendMessage(ctx, "FILL ceo")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, comp.seen, 1)
}

func TestNewCompleter_UnknownProvider(t *testing.T) {
	_, err := NewCompleter(context.Background(), Config{Provider: "claude"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewCompleter_MissingKey(t *testing.T) {
	_, err := NewCompleter(context.Background(), Config{Provider: ProviderOpenAI})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewCompleter(context.Background(), Config{Provider: ProviderGemini})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
