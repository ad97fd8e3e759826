package assistant

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	defaultGeminiModel   = "gemini-2.5-flash"
)

// GeminiClient drives Google's Gemini API through its OpenAI-compatible
// endpoint. Calls are one-shot: no conversation state is kept between them.
type GeminiClient struct {
	client *openai.Client
	model  string
}

// NewGeminiClient creates a Gemini client. Empty baseURL and model select the
// defaults.
func NewGeminiClient(apiKey, baseURL, model string) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if model == "" {
		model = defaultGeminiModel
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &GeminiClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// GenerateReply sends the system instruction plus the verbatim user question
// and returns the model's text unmodified. No retries; the caller surfaces a
// failure as the generic request error.
func (c *GeminiClient) GenerateReply(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return resp.Choices[0].Message.Content, nil
}
