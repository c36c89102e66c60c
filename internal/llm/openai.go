package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// OpenAIClient implements Client for the OpenAI chat completions API
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client. opts are appended after the API key.
func NewOpenAIClient(config *Config, apiKey string, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIClient{client: &client, config: config}, nil
}

// GenerateContent generates plain text
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	params, err := c.params(prompt, tier)
	if err != nil {
		return "", err
	}
	return c.complete(ctx, params)
}

// GenerateJSON generates a JSON object
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	params, err := c.params(prompt, tier)
	if err != nil {
		return "", err
	}
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONObject: &openai.ResponseFormatJSONObjectParam{
			Type: constant.JSONObject("json_object"),
		},
	}

	text, err := c.complete(ctx, params)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client is shared.
func (c *OpenAIClient) Close() error {
	return nil
}

func (c *OpenAIClient) params(prompt string, tier ModelTier) (openai.ChatCompletionNewParams, error) {
	model := c.config.GetModel(tier)
	if model == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("no model configured for tier %s", tier)
	}
	return openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(model),
		Temperature: openai.Float(float64(c.config.Temperature)),
	}, nil
}

func (c *OpenAIClient) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return completion.Choices[0].Message.Content, nil
}
