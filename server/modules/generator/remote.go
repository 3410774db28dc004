package generator

import (
	"context"
	"sync"
	"time"

	"github.com/casegen/casegen/server/logger"
	"github.com/casegen/casegen/server/modules/metrics"
	"github.com/pkg/errors"
)

// RemoteGenerator runs the pipeline against a Backend and retries once on an
// alternate model.
type RemoteGenerator struct {
	name      string
	backend   Backend
	supported []string
	alternate string

	mu    sync.RWMutex
	model string
}

// NewRemoteGenerator uses model as the active model. An empty or unsupported model
// selects supported[0].
func NewRemoteGenerator(name string, backend Backend, model string, supported []string, alternate string) *RemoteGenerator {
	if len(supported) != 0 && !contains(supported, model) {
		if model != "" {
			logger.AppLog.Warnf("model %v is not supported by %v, using %v", model, name, supported[0])
		}
		model = supported[0]
	}
	return &RemoteGenerator{
		name:      name,
		backend:   backend,
		supported: supported,
		alternate: alternate,
		model:     model,
	}
}

func (g *RemoteGenerator) Name() string {
	return g.name
}

func (g *RemoteGenerator) Model() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.model
}

func (g *RemoteGenerator) SupportedModels() []string {
	res := make([]string, len(g.supported))
	copy(res, g.supported)
	return res
}

func (g *RemoteGenerator) SetModel(name string) error {
	if !contains(g.supported, name) {
		logger.AppLog.Warnf("model %v is not supported by %v, keeping %v", name, g.name, g.Model())
		return errors.Wrap(ErrUnsupportedModel, name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.model = name
	return nil
}

// candidates is the active model followed by the alternate, if it differs.
func (g *RemoteGenerator) candidates() []string {
	active := g.Model()
	if g.alternate == "" || g.alternate == active {
		return []string{active}
	}
	return []string{active, g.alternate}
}

// Generate tries the active model and then, on any failure, the alternate model once.
// Malformed and invalid answers fall back the same way transport errors do.
func (g *RemoteGenerator) Generate(ctx context.Context, userStory, testType, complexity string, count int) ([]GeneratedTestCase, error) {
	testType, complexity, count = withDefaults(testType, complexity, count)
	prompt := BuildPrompt(userStory, testType, complexity, count)

	var lastErr error
	models := g.candidates()
	for i, model := range models {
		if i != 0 {
			if err := ctx.Err(); err != nil {
				lastErr = err
				break
			}
			logger.AppLog.Infof("%v: trying fallback model %v", g.name, model)
			metrics.GenerationFallbacks.WithLabelValues(g.name, models[i-1], model).Inc()
		}

		cases, err := g.attempt(ctx, model, prompt, userStory, testType)
		if err == nil {
			metrics.GeneratedTestCases.WithLabelValues(g.name, testType).Add(float64(len(cases)))
			return cases, nil
		}
		logger.AppLog.Errorf("%v API error with model %v: %+v", g.name, model, err)
		lastErr = err
	}

	return nil, errors.Wrap(lastErr, "failed to generate test cases")
}

func (g *RemoteGenerator) attempt(ctx context.Context, model, prompt, userStory, testType string) (cases []GeneratedTestCase, err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveAttempt(g.name, model, started, err)
	}()

	raw, err := g.backend.Complete(ctx, model, prompt)
	if err != nil {
		return nil, err
	}

	cases, err = ParseResponse(raw, userStory, testType, model)
	if err != nil {
		return nil, err
	}
	if err := Validate(cases); err != nil {
		return nil, err
	}
	return cases, nil
}
