package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/casegen/casegen/server/modules/metrics"
	"github.com/pkg/errors"
)

const MockModel = "mock-ai-service"

// MockGenerator returns canned test cases after an artificial delay. It needs no
// network and has a single model, so it never falls back.
type MockGenerator struct {
	Delay time.Duration
}

func NewMockGenerator(delay time.Duration) *MockGenerator {
	return &MockGenerator{Delay: delay}
}

func (g *MockGenerator) Name() string {
	return ProviderMock
}

func (g *MockGenerator) Model() string {
	return MockModel
}

func (g *MockGenerator) SupportedModels() []string {
	return []string{MockModel}
}

func (g *MockGenerator) SetModel(name string) error {
	if name != MockModel {
		return errors.Wrap(ErrUnsupportedModel, name)
	}
	return nil
}

func (g *MockGenerator) Generate(ctx context.Context, userStory, testType, complexity string, count int) (cases []GeneratedTestCase, err error) {
	testType, _, count = withDefaults(testType, complexity, count)

	started := time.Now()
	defer func() {
		metrics.ObserveAttempt(ProviderMock, MockModel, started, err)
	}()

	if g.Delay > 0 {
		t := time.NewTimer(g.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "failed to generate test cases")
		}
	}

	cases = make([]GeneratedTestCase, count)
	for i := range cases {
		cases[i] = cannedTestCase(testType, userStory, i+1)
	}
	enrich(cases, userStory, testType, MockModel)

	if err := Validate(cases); err != nil {
		return nil, errors.Wrap(err, "failed to generate test cases")
	}
	metrics.GeneratedTestCases.WithLabelValues(ProviderMock, testType).Add(float64(len(cases)))
	return cases, nil
}

func cannedTestCase(testType, userStory string, n int) GeneratedTestCase {
	switch testType {
	case TypeEdge:
		return GeneratedTestCase{
			Title:       fmt.Sprintf("Edge Case %v - Boundary condition testing", n),
			Description: "Test boundary conditions for: " + userStory,
			Steps: []Step{
				{StepNumber: 1, Action: "Set up extreme input values", ExpectedResult: "System handles boundary values correctly"},
				{StepNumber: 2, Action: "Execute with limit conditions", ExpectedResult: "System behaves as expected at limits"},
			},
			Preconditions:  []string{"System is in normal state"},
			ExpectedOutput: "Proper handling of edge cases",
			Priority:       PriorityHigh,
			TestData:       "Boundary value data sets",
			Tags:           []string{ProvenanceTag, TypeEdge, "boundary"},
			Complexity:     ComplexityComplex,
		}
	case TypeNegative:
		return GeneratedTestCase{
			Title:       fmt.Sprintf("Negative Test %v - Error condition testing", n),
			Description: "Test error handling for: " + userStory,
			Steps: []Step{
				{StepNumber: 1, Action: "Provide invalid input data", ExpectedResult: "System detects and handles invalid input"},
				{StepNumber: 2, Action: "Attempt invalid operations", ExpectedResult: "System prevents invalid operations gracefully"},
			},
			Preconditions:  []string{"System is operational"},
			ExpectedOutput: "Proper error messages and handling",
			Priority:       PriorityMedium,
			TestData:       "Invalid input data samples",
			Tags:           []string{ProvenanceTag, TypeNegative, "error-handling"},
			Complexity:     ComplexityMedium,
		}
	default:
		return GeneratedTestCase{
			Title:       fmt.Sprintf("Functional Test %v - %v...", n, truncate(userStory, 30)),
			Description: "Test the main functionality described in: " + userStory,
			Steps: []Step{
				{StepNumber: 1, Action: "Navigate to the application", ExpectedResult: "Application loads successfully"},
				{StepNumber: 2, Action: "Perform the main action", ExpectedResult: "Action completes as expected"},
				{StepNumber: 3, Action: "Verify the results", ExpectedResult: "Results match expected outcome"},
			},
			Preconditions:  []string{"System is available", "User has necessary permissions"},
			ExpectedOutput: "Successful completion of the user story functionality",
			Priority:       PriorityHigh,
			TestData:       "Sample test data for validation",
			Tags:           []string{ProvenanceTag, TypeFunctional, "automated"},
			Complexity:     ComplexityMedium,
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
