package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// openAICompleter talks to the OpenAI chat completions API, or any
// endpoint compatible with it.
type openAICompleter struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAICompleter creates a Completer backed by go-openai.
func NewOpenAICompleter(cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = cfg.Endpoint
	}

	return &openAICompleter{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.ModelName(),
		temperature: float32(cfg.Temperature),
	}, nil
}

func (c *openAICompleter) Complete(ctx context.Context, history []Message) (*Reply, error) {
	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, m := range history {
		messages[i] = openai.ChatCompletionMessage{
			Role:    openAIRole(m.Role),
			Content: m.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	return &Reply{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
	}, nil
}

func openAIRole(r Role) string {
	switch r {
	case RoleSystem:
		return openai.ChatMessageRoleSystem
	case RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
