// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/llm"
)

// Config is the application configuration. It can be loaded from a JSON file
// or the environment; empty fields fall back to Defaults.
type Config struct {
	// Server
	Port            int    `json:"port,omitempty"`
	PreviewStoreURL string `json:"preview_store_url,omitempty"` // redis:// or postgres://; empty keeps previews in memory
	PreviewTTL      string `json:"preview_ttl,omitempty"`       // Go duration, e.g. "24h"

	// Writing assistant
	LLMProvider  string `json:"llm_provider,omitempty"` // gemini or openai
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	OpenAIAPIKey string `json:"openai_api_key,omitempty"`

	// Form controller
	EndDatePolicy    string `json:"end_date_policy,omitempty"` // required or optional
	AssistBaseURL    string `json:"assist_base_url,omitempty"`
	BatchConcurrency int    `json:"batch_concurrency,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"` // console or json
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:             8080,
		PreviewTTL:       "24h",
		LLMProvider:      string(llm.ProviderGemini),
		EndDatePolicy:    string(form.EndDateOptional),
		AssistBaseURL:    "http://localhost:8080",
		BatchConcurrency: 1,
		LogLevel:         "info",
		LogFormat:        "console",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables
// leave the field empty so a later merge can fill it.
func FromEnv() *Config {
	return &Config{
		Port:             envInt("PORT"),
		PreviewStoreURL:  os.Getenv("PREVIEW_STORE_URL"),
		PreviewTTL:       os.Getenv("PREVIEW_TTL"),
		LLMProvider:      os.Getenv("LLM_PROVIDER"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		EndDatePolicy:    os.Getenv("END_DATE_POLICY"),
		AssistBaseURL:    os.Getenv("ASSIST_BASE_URL"),
		BatchConcurrency: envInt("BATCH_CONCURRENCY"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
	}
}

// Load builds the effective configuration: environment first, then the JSON
// file at path (if any), then Defaults.
func Load(path string) (Config, error) {
	cfg := *FromEnv()
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*file)
	}
	cfg = cfg.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envInt(key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return 0
	}
	return n
}

// Validate checks that the configuration has valid values. Empty fields are
// accepted; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}
	if c.PreviewTTL != "" {
		if _, err := time.ParseDuration(c.PreviewTTL); err != nil {
			return fmt.Errorf("config error: invalid 'preview_ttl': %w", err)
		}
	}
	if c.LLMProvider != "" {
		if _, err := llm.ParseProvider(c.LLMProvider); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.EndDatePolicy != "" {
		if _, err := form.ParseEndDatePolicy(c.EndDatePolicy); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be console or json")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.PreviewStoreURL == "" {
		result.PreviewStoreURL = defaults.PreviewStoreURL
	}
	if result.PreviewTTL == "" {
		result.PreviewTTL = defaults.PreviewTTL
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.EndDatePolicy == "" {
		result.EndDatePolicy = defaults.EndDatePolicy
	}
	if result.AssistBaseURL == "" {
		result.AssistBaseURL = defaults.AssistBaseURL
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	return result
}

// FormOptions returns the form controller options. An invalid policy falls
// back to the form package default.
func (c *Config) FormOptions() *form.Options {
	opts := form.DefaultOptions()
	if p, err := form.ParseEndDatePolicy(c.EndDatePolicy); err == nil {
		opts.EndDatePolicy = p
	}
	return opts
}

// TTL returns the preview TTL, or zero when unset or invalid.
func (c *Config) TTL() time.Duration {
	d, err := time.ParseDuration(c.PreviewTTL)
	if err != nil {
		return 0
	}
	return d
}

// LLM returns the provider config and API key for the configured provider.
func (c *Config) LLM() (*llm.Config, string, error) {
	provider, err := llm.ParseProvider(c.LLMProvider)
	if err != nil {
		return nil, "", err
	}
	key := c.GeminiAPIKey
	if provider == llm.ProviderOpenAI {
		key = c.OpenAIAPIKey
	}
	return llm.ConfigFor(provider), key, nil
}
