// Package llm wraps the language model providers behind the writing assistant.
// Callers pick a tier; the configured provider maps it to a concrete model.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the capability level a task needs
type ModelTier string

const (
	// TierLite is for mechanical edits: grammar fixes, skill lists
	TierLite ModelTier = "lite"
	// TierStandard is for drafting: summaries, bullet rewrites, tone changes
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// Supported providers
const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.4,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o",
		},
		Temperature: 0.4,
	}
}

// ConfigFor returns the default configuration of a provider.
func ConfigFor(p Provider) *Config {
	if p == ProviderOpenAI {
		return DefaultOpenAIConfig()
	}
	return DefaultGeminiConfig()
}

// ParseProvider parses a provider name; "" means Gemini.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q (expected gemini or openai)", s)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model assigned to tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
