package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
}

func TestConfigFor(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", ConfigFor(ProviderOpenAI).GetModel(TierLite))
	assert.Equal(t, ProviderGemini, ConfigFor("").Provider)
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider(" OpenAI ")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p)

	p, err = ParseProvider("")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)

	_, err = ParseProvider("anthropic")
	assert.Error(t, err)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierLite: "fallback-model"},
	}
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	custom := config.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "custom-model", custom.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", custom.GetModel(TierLite))
	assert.Equal(t, config.Temperature, custom.Temperature)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(t.Context(), DefaultOpenAIConfig(), "")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewClient(t.Context(), DefaultGeminiConfig(), "")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
