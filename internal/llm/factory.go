package llm

import (
	"context"
	"fmt"
)

// NewCompleter builds the backend named by cfg.Provider.
func NewCompleter(ctx context.Context, cfg Config) (Completer, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAICompleter(cfg)
	case ProviderOllama:
		return NewOllamaCompleter(cfg), nil
	case ProviderGemini:
		return NewGeminiCompleter(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// NewSession builds a fresh conversation against the configured backend.
func NewSession(ctx context.Context, cfg Config, observer Observer) (*Conversation, error) {
	completer, err := NewCompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewConversation(completer, cfg, observer), nil
}
