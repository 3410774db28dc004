package generator

import (
	"context"
	"testing"
	"time"

	"github.com/casegen/casegen/server/conf"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGenerator_Generate(t *testing.T) {
	g := NewMockGenerator(0)
	const story = "As a shopper, I want to pay with a saved card"

	for _, testType := range []string{TypeFunctional, TypeEdge, TypeNegative} {
		cases, err := g.Generate(context.Background(), story, testType, "medium", 3)
		require.NoError(t, err, testType)
		require.Len(t, cases, 3, testType)

		for _, c := range cases {
			assert.Equal(t, testType, c.TestType)
			assert.Equal(t, story, c.UserStory)
			assert.Equal(t, MockModel, c.AIModel)
			assert.True(t, c.AIGenerated)
			assert.Equal(t, StatusNotStarted, c.Status)
			assert.Contains(t, c.Tags, ProvenanceTag)
			assert.NotEmpty(t, c.Steps)
		}
	}
}

func TestMockGenerator_Deterministic(t *testing.T) {
	g := NewMockGenerator(0)
	a, err := g.Generate(context.Background(), "story", TypeEdge, "", 2)
	require.NoError(t, err)
	b, err := g.Generate(context.Background(), "story", TypeEdge, "", 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 60, a[0].EstimatedTime)
}

func TestMockGenerator_DefaultsAndUnknownType(t *testing.T) {
	g := NewMockGenerator(0)
	cases, err := g.Generate(context.Background(), "story", "performance", "", 0)
	require.NoError(t, err)
	assert.Len(t, cases, DefaultCount)
	assert.Equal(t, "performance", cases[0].TestType)
	assert.Contains(t, cases[0].Title, "Functional Test 1")
}

func TestMockGenerator_Delay(t *testing.T) {
	g := NewMockGenerator(50 * time.Millisecond)
	started := time.Now()
	_, err := g.Generate(context.Background(), "story", TypeFunctional, "", 1)
	require.NoError(t, err)
	assert.True(t, time.Since(started) >= 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g.Delay = time.Hour
	_, err = g.Generate(ctx, "story", TypeFunctional, "", 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMockGenerator_SingleModel(t *testing.T) {
	g := NewMockGenerator(0)
	assert.Equal(t, []string{MockModel}, g.SupportedModels())
	assert.NoError(t, g.SetModel(MockModel))
	assert.True(t, errors.Is(g.SetModel("gpt-4"), ErrUnsupportedModel))
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	g, err := New(ctx, conf.AIConfig{})
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, g.Name())

	g, err = New(ctx, conf.AIConfig{OpenAIKey: "k", OpenAIModel: "gpt-3.5-turbo"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, g.Name())
	assert.Equal(t, "gpt-3.5-turbo", g.Model())

	g, err = New(ctx, conf.AIConfig{HuggingFaceKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, ProviderHuggingFace, g.Name())

	g, err = New(ctx, conf.AIConfig{Provider: ProviderMock, OpenAIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, g.Name())

	_, err = New(ctx, conf.AIConfig{Provider: ProviderGemini})
	assert.Error(t, err)

	_, err = New(ctx, conf.AIConfig{Provider: "watson"})
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}
