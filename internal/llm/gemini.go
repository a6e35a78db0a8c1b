package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiCompleter talks to the Gemini API. Gemini takes system text as
// request configuration rather than as a turn, so system messages are
// folded into SystemInstruction.
type geminiCompleter struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiCompleter creates a Completer backed by the Google GenAI SDK.
func NewGeminiCompleter(ctx context.Context, cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &geminiCompleter{
		client:      client,
		model:       cfg.ModelName(),
		temperature: float32(cfg.Temperature),
	}, nil
}

func (c *geminiCompleter) Complete(ctx context.Context, history []Message) (*Reply, error) {
	system, contents := geminiContents(history)

	// Nothing to answer yet; a system-only history is acknowledged locally.
	if len(contents) == 0 {
		return &Reply{Model: c.model}, nil
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoChoices
	}

	return &Reply{
		Content: resp.Text(),
		Model:   c.model,
	}, nil
}

// geminiContents splits history into the joined system instruction and the
// user/model turns. Empty model turns, left by local acknowledgements, are
// dropped.
func geminiContents(history []Message) (string, []*genai.Content) {
	var system []string
	var contents []*genai.Content

	for _, m := range history {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			if m.Content == "" {
				continue
			}
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	return strings.Join(system, "\n\n"), contents
}
