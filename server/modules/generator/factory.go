package generator

import (
	"context"

	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/logger"
	"github.com/pkg/errors"
)

var ErrUnknownProvider = errors.New("unknown AI provider")

// New builds the generator selected by cfg.Provider. Without a provider the
// first backend with a key wins, and the mock is used when there is none.
func New(ctx context.Context, cfg conf.AIConfig) (Generator, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = detectProvider(cfg)
	}

	var (
		g   Generator
		err error
	)
	switch provider {
	case ProviderOpenAI:
		g = NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	case ProviderHuggingFace:
		g = NewHuggingFaceGenerator(cfg.HuggingFaceKey, cfg.HuggingFaceURL, cfg.HuggingFaceModel)
	case ProviderGemini:
		g, err = NewGeminiGenerator(ctx, cfg.GeminiKey, cfg.GeminiModel)
	case ProviderMock:
		g = NewMockGenerator(cfg.MockDelay.Duration)
	default:
		return nil, errors.Wrap(ErrUnknownProvider, provider)
	}
	if err != nil {
		return nil, err
	}

	logger.AppLog.Infof("AI provider: %v, model: %v", g.Name(), g.Model())
	return g, nil
}

func detectProvider(cfg conf.AIConfig) string {
	switch {
	case cfg.OpenAIKey != "":
		return ProviderOpenAI
	case cfg.HuggingFaceKey != "":
		return ProviderHuggingFace
	case cfg.GeminiKey != "":
		return ProviderGemini
	default:
		return ProviderMock
	}
}
