// Package generator turns user stories into test cases with a language model.
//
// Every backend shares the same pipeline: BuildPrompt renders the request,
// the backend returns raw text, ParseResponse decodes and enriches it and
// Validate rejects batches with missing required fields. Remote backends get
// one retry on an alternate model; the mock backend works offline.
package generator

import (
	"context"

	"github.com/pkg/errors"
)

const (
	ProviderOpenAI      = "openai"
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderMock        = "mock"
)

var ErrUnsupportedModel = errors.New("unsupported model")

// Generator produces validated test cases for a user story.
type Generator interface {
	Generate(ctx context.Context, userStory, testType, complexity string, count int) ([]GeneratedTestCase, error)
	// Name is the provider name, e.g. "openai".
	Name() string
	Model() string
	SupportedModels() []string
	SetModel(name string) error
}

// Backend is the transport to a model service.
type Backend interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, model, prompt string) (string, error)

func (f BackendFunc) Complete(ctx context.Context, model, prompt string) (string, error) {
	return f(ctx, model, prompt)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
