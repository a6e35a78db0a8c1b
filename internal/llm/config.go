package llm

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names an assistant backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// Providers lists every supported backend in display order.
var Providers = []Provider{ProviderOpenAI, ProviderOllama, ProviderGemini}

var defaultModels = map[Provider]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llama3.2",
	ProviderGemini: "gemini-2.0-flash",
}

// Config holds all configuration for the assistant session.
type Config struct {
	Provider    Provider
	APIKey      string // taken from the command line, never from the environment
	Endpoint    string // empty uses the backend's default
	Model       string // empty uses the backend's default
	Temperature float64
	TimeoutMs   int
	MaxRetries  int
	LogCalls    bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderOpenAI,
		Temperature: 0.2,
		TimeoutMs:   60000,
		MaxRetries:  2,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("VERGABE_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
	}
	if v := os.Getenv("VERGABE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("VERGABE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("VERGABE_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("VERGABE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("VERGABE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("VERGABE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// ModelName returns the configured model, or the provider default.
func (c Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// Timeout returns the per-attempt deadline for one round trip.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Valid reports whether the provider is one this package can build.
func (p Provider) Valid() bool {
	_, ok := defaultModels[p]
	return ok
}
