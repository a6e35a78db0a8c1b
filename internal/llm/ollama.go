package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const defaultOllamaEndpoint = "http://localhost:11434"

// ollamaCompleter talks to the Ollama chat API.
type ollamaCompleter struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	http        *http.Client
}

// NewOllamaCompleter creates a Completer that talks to an Ollama instance.
// The API key is optional and sent as a bearer token when set, for
// instances behind an authenticating proxy.
func NewOllamaCompleter(cfg Config) Completer {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultOllamaEndpoint
	}
	return &ollamaCompleter{
		endpoint:    endpoint,
		apiKey:      cfg.APIKey,
		model:       cfg.ModelName(),
		temperature: cfg.Temperature,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// ollamaChatRequest is the JSON body sent to POST /api/chat.
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
}

// ollamaChatResponse is the JSON body returned by POST /api/chat (non-streaming).
type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

func (c *ollamaCompleter) Complete(ctx context.Context, history []Message) (*Reply, error) {
	body := ollamaChatRequest{
		Model:    c.model,
		Messages: make([]ollamaMessage, len(history)),
		Stream:   false,
		Options:  ollamaOptions{Temperature: c.temperature},
	}
	for i, m := range history {
		body.Messages[i] = ollamaMessage{Role: string(m.Role), Content: m.Content}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.endpoint + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.Message.Role == "" && resp.Message.Content == "" {
		return nil, ErrNoChoices
	}

	return &Reply{
		Content: resp.Message.Content,
		Model:   resp.Model,
	}, nil
}
