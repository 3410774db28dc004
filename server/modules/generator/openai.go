package generator

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

var OpenAIModels = []string{
	"gpt-4",
	"gpt-4-turbo",
	"gpt-3.5-turbo",
}

const (
	openAITemperature = 0.7
	openAIMaxTokens   = 2000
)

type openAIBackend struct {
	client *openai.Client
}

// NewOpenAIGenerator talks to the chat completions API. baseURL may be empty.
func NewOpenAIGenerator(apiKey, baseURL, model string) *RemoteGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	backend := &openAIBackend{client: openai.NewClientWithConfig(cfg)}
	return NewRemoteGenerator(ProviderOpenAI, backend, model, OpenAIModels, OpenAIModels[1])
}

func (b *openAIBackend) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: openAITemperature,
		MaxTokens:   openAIMaxTokens,
	})
	if err != nil {
		return "", errors.Wrap(err, "openai chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
