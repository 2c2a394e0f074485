package research

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	DeepSeekModel   = "deepseek-chat"
)

// DeepSeekLLM talks to DeepSeek through its OpenAI-compatible API.
type DeepSeekLLM struct {
	client *openai.Client
	model  string
}

// NewDeepSeekLLM creates a client. Empty baseURL and model use the defaults.
func NewDeepSeekLLM(apiKey, baseURL, model string) *DeepSeekLLM {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DeepSeekBaseURL
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DeepSeekModel
	}
	return &DeepSeekLLM{client: openai.NewClientWithConfig(cfg), model: model}
}

func (d *DeepSeekLLM) Name() string { return "deepseek" }

func (d *DeepSeekLLM) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("deepseek completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("deepseek completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
