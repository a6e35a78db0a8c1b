package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestOpenAICompleter_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "FILL ceo", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": "ENTER Hans Huber"},
				"finish_reason": "stop",
			}},
		})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.Endpoint = srv.URL + "/v1"

	comp, err := NewOpenAICompleter(cfg)
	require.NoError(t, err)

	reply, err := comp.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "rules"},
		{Role: RoleUser, Content: "FILL ceo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ENTER Hans Huber", reply.Content)
	assert.Equal(t, "gpt-4o-mini", reply.Model)
}

func TestOpenAICompleter_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","model":"gpt-4o-mini","choices":[]}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.Endpoint = srv.URL + "/v1"

	comp, err := NewOpenAICompleter(cfg)
	require.NoError(t, err)

	_, err = comp.Complete(context.Background(), []Message{{Role: RoleUser, Content: "FILL ceo"}})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestOllamaCompleter_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 3)
		assert.Equal(t, "assistant", req.Messages[1].Role)

		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   "llama3.2",
			Message: ollamaMessage{Role: "assistant", Content: "MISSING gruendungsjahr Jahr"},
			Done:    true,
		})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Endpoint = srv.URL

	reply, err := NewOllamaCompleter(cfg).Complete(context.Background(), []Message{
		{Role: RoleUser, Content: "INFO ceo Hans Huber"},
		{Role: RoleAssistant, Content: "OK"},
		{Role: RoleUser, Content: "FILL Gründungsjahr"},
	})
	require.NoError(t, err)
	assert.Equal(t, "MISSING gruendungsjahr Jahr", reply.Content)
	assert.Equal(t, "llama3.2", reply.Model)
}

func TestOllamaCompleter_BearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Role: "assistant", Content: "OK"}})
	}))
	defer srv.Close()

	cfg := Config{Provider: ProviderOllama, Endpoint: srv.URL, APIKey: "secret"}
	reply, err := NewOllamaCompleter(cfg).Complete(context.Background(), []Message{{Role: RoleUser, Content: "INFO a b"}})
	require.NoError(t, err)
	assert.Equal(t, "OK", reply.Content)
}

func TestOllamaCompleter_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	cfg := Config{Provider: ProviderOllama, Endpoint: srv.URL}
	_, err := NewOllamaCompleter(cfg).Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestSession_OllamaUnavailable(t *testing.T) {
	cfg := Config{Provider: ProviderOllama, Endpoint: "http://127.0.0.1:1", TimeoutMs: 1000}

	conv, err := NewSession(context.Background(), cfg, NoopObserver{})
	require.NoError(t, err)

	_, err = conv.SendMessage(context.Background(), "INFO a b")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSession_OpenAIRoundTripsThroughHTTP(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req struct {
			Messages []map[string]string `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Each call carries the full history: 1, 3, 5 messages.
		assert.Len(t, req.Messages, 2*calls-1)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-4o-mini",
			"choices": []map[string]any{{
				"message": map[string]string{"role": "assistant", "content": "OK"},
			}},
		})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.Endpoint = srv.URL + "/v1"

	conv, err := NewSession(context.Background(), cfg, NoopObserver{})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = conv.SendRoleMessage(ctx, RoleSystem, "rules")
	require.NoError(t, err)
	_, err = conv.SendRoleMessage(ctx, RoleUser, "INFO a b")
	require.NoError(t, err)
	_, err = conv.SendMessage(ctx, "FILL a")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestGeminiContents(t *testing.T) {
	system, contents := geminiContents([]Message{
		{Role: RoleSystem, Content: "rules"},
		{Role: RoleAssistant, Content: ""},
		{Role: RoleUser, Content: "INFO ceo Hans Huber"},
		{Role: RoleAssistant, Content: "OK"},
		{Role: RoleUser, Content: "FILL ceo"},
	})

	assert.Equal(t, "rules", system)
	require.Len(t, contents, 3)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, "FILL ceo", contents[2].Parts[0].Text)
}
