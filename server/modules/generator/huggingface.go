package generator

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/huggingface"
)

var HuggingFaceModels = []string{
	"microsoft/DialoGPT-small",
	"distilgpt2",
	"gpt2",
	"microsoft/DialoGPT-medium",
}

const (
	huggingFaceTemperature  = 0.7
	huggingFaceMaxNewTokens = 1000
)

type huggingFaceBackend struct {
	token string
	url   string
}

// NewHuggingFaceGenerator uses the text generation inference API. The alternate is
// the first supported model, so the default model never falls back.
func NewHuggingFaceGenerator(token, url, model string) *RemoteGenerator {
	backend := &huggingFaceBackend{token: token, url: url}
	return NewRemoteGenerator(ProviderHuggingFace, backend, model, HuggingFaceModels, HuggingFaceModels[0])
}

func (b *huggingFaceBackend) Complete(ctx context.Context, model, prompt string) (string, error) {
	opts := []huggingface.Option{
		huggingface.WithToken(b.token),
		huggingface.WithModel(model),
	}
	if b.url != "" {
		opts = append(opts, huggingface.WithURL(b.url))
	}

	llm, err := huggingface.New(opts...)
	if err != nil {
		return "", errors.Wrap(err, "huggingface client")
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt,
		llms.WithModel(model),
		llms.WithMaxTokens(huggingFaceMaxNewTokens),
		llms.WithTemperature(huggingFaceTemperature),
	)
	if err != nil {
		return "", errors.Wrap(err, "huggingface text generation")
	}
	return text, nil
}
