package generator

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

var GeminiModels = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash",
}

type geminiBackend struct {
	client *genai.Client
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*RemoteGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GenAI client")
	}

	backend := &geminiBackend{client: client}
	return NewRemoteGenerator(ProviderGemini, backend, model, GeminiModels, GeminiModels[1]), nil
}

func (b *geminiBackend) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := b.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   2000,
	})
	if err != nil {
		return "", errors.Wrap(err, "gemini generate content")
	}
	return resp.Text(), nil
}
