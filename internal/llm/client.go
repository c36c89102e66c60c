package llm

import (
	"context"
	"errors"
)

// ErrNoAPIKey is returned when a provider is selected without credentials.
var ErrNoAPIKey = errors.New("API key is required")

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates plain text using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates a JSON document using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the provider model used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates the client for config.Provider
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}
