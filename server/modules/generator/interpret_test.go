package generator

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginCase = `[{
	"title": "Test Login Functionality",
	"description": "Test user login with valid credentials",
	"steps": [
		{"stepNumber": 1, "action": "Navigate to login page", "expectedResult": "Login page loads successfully"},
		{"stepNumber": 2, "action": "Enter valid email and password", "expectedResult": "Credentials are accepted"}
	],
	"expectedOutput": "User should be logged in successfully",
	"priority": "high",
	"testData": "Valid email: test@example.com, password: Password123"
}]`

func TestParseResponse(t *testing.T) {
	cases, err := ParseResponse(loginCase, "story", TypeFunctional, "gpt-4")
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, "Test Login Functionality", c.Title)
	assert.Equal(t, "story", c.UserStory)
	assert.Equal(t, TypeFunctional, c.TestType)
	assert.True(t, c.AIGenerated)
	assert.Equal(t, "gpt-4", c.AIModel)
	assert.Equal(t, StatusNotStarted, c.Status)
	assert.Equal(t, PriorityHigh, c.Priority)
	assert.Equal(t, []string{ProvenanceTag, TypeFunctional}, c.Tags)
	assert.Equal(t, []string{}, c.Preconditions)
	assert.Equal(t, []string{}, c.Postconditions)
	assert.Equal(t, 30, c.EstimatedTime)
	assert.Equal(t, Text("Valid email: test@example.com, password: Password123"), c.TestData)
	assert.Len(t, c.Steps, 2)

	require.NoError(t, Validate(cases))
}

func TestParseResponse_Fenced(t *testing.T) {
	plain, err := ParseResponse(loginCase, "story", TypeEdge, "gpt-4")
	require.NoError(t, err)

	for _, raw := range []string{
		"```json\n" + loginCase + "\n```",
		"```JSON\n" + loginCase + "```",
		"  ```\n" + loginCase + "\n```  \n",
	} {
		fenced, err := ParseResponse(raw, "story", TypeEdge, "gpt-4")
		require.NoError(t, err, raw)
		assert.Equal(t, plain, fenced)
	}
}

func TestParseResponse_InvalidFormat(t *testing.T) {
	inputs := []string{
		"not json",
		`{"title": "object instead of array"}`,
		"null",
		"42",
		"",
		`[{"title": "t", "steps": 42}]`,
	}

	for _, in := range inputs {
		_, err := ParseResponse(in, "story", TypeFunctional, "gpt-4")
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidResponse), "input %q: %v", in, err)
	}
}

func TestParseResponse_EmptyArray(t *testing.T) {
	cases, err := ParseResponse("[]", "story", TypeFunctional, "gpt-4")
	require.NoError(t, err)
	assert.Empty(t, cases)
	assert.NoError(t, Validate(cases))
}

func TestParseResponse_NonObjectElementsAreKept(t *testing.T) {
	cases, err := ParseResponse(`[1, null, {"title": "T"}]`, "story", TypeNegative, "m")
	require.NoError(t, err)
	require.Len(t, cases, 3)
	assert.Equal(t, "T", cases[2].Title)
	for _, c := range cases {
		assert.True(t, c.AIGenerated)
		assert.Equal(t, TypeNegative, c.TestType)
	}
	assert.Error(t, Validate(cases))
}

func TestParseResponse_Defaults(t *testing.T) {
	raw := `[
		{"title": "a", "complexity": "complex", "tags": [], "priority": "low", "preconditions": ["logged in"]},
		{"title": "b", "complexity": "simple", "userStory": "model story", "testType": "other", "aiGenerated": false, "status": "passed"},
		{"title": "c", "complexity": "weird"}
	]`
	cases, err := ParseResponse(raw, "story", TypeEdge, "m")
	require.NoError(t, err)

	assert.Equal(t, 60, cases[0].EstimatedTime)
	assert.Equal(t, []string{}, cases[0].Tags)
	assert.Equal(t, PriorityLow, cases[0].Priority)
	assert.Equal(t, []string{"logged in"}, cases[0].Preconditions)
	assert.Equal(t, []Step{}, cases[0].Steps)

	assert.Equal(t, 15, cases[1].EstimatedTime)
	assert.Equal(t, "story", cases[1].UserStory)
	assert.Equal(t, TypeEdge, cases[1].TestType)
	assert.True(t, cases[1].AIGenerated)
	assert.Equal(t, StatusNotStarted, cases[1].Status)
	assert.Equal(t, PriorityMedium, cases[1].Priority)

	assert.Equal(t, 30, cases[2].EstimatedTime)
}

func TestParseResponse_LenientFields(t *testing.T) {
	raw := `[{
		"title": "t",
		"steps": ["open the page", {"action": "click", "expectedResult": "ok"}, {"stepNumber": 7, "action": "x"}],
		"testData": {"email": "a@example.com"}
	}]`
	cases, err := ParseResponse(raw, "story", TypeFunctional, "m")
	require.NoError(t, err)

	steps := cases[0].Steps
	require.Len(t, steps, 3)
	assert.Equal(t, Step{StepNumber: 1, Action: "open the page"}, steps[0])
	assert.Equal(t, Step{StepNumber: 2, Action: "click", ExpectedResult: "ok"}, steps[1])
	assert.Equal(t, 7, steps[2].StepNumber)
	assert.Equal(t, Text(`{"email":"a@example.com"}`), cases[0].TestData)
}

func TestParseResponse_LooselyTypedFields(t *testing.T) {
	raw := `[{
		"title": 42,
		"description": null,
		"steps": [{"stepNumber": "3", "action": "submit", "expectedResult": {"status": 200}}, {"stepNumber": "first", "action": "b"}],
		"expectedOutput": {"status": 200},
		"preconditions": "user logged in",
		"postconditions": "",
		"tags": "smoke",
		"priority": "high",
		"estimatedTime": "5"
	}]`
	cases, err := ParseResponse(raw, "story", TypeFunctional, "m")
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, "42", c.Title)
	assert.Equal(t, "", c.Description)
	assert.Equal(t, `{"status":200}`, c.ExpectedOutput)
	assert.Equal(t, []string{"user logged in"}, c.Preconditions)
	assert.Equal(t, []string{}, c.Postconditions)
	assert.Equal(t, []string{"smoke"}, c.Tags)
	assert.Equal(t, []Step{
		{StepNumber: 3, Action: "submit", ExpectedResult: `{"status":200}`},
		{StepNumber: 2, Action: "b"},
	}, c.Steps)
	assert.Equal(t, 30, c.EstimatedTime)
	assert.NoError(t, Validate(cases))
}

func TestParseResponse_SingleStep(t *testing.T) {
	cases, err := ParseResponse(`[{"title": "t", "steps": "open the page"}]`, "story", TypeEdge, "m")
	require.NoError(t, err)
	assert.Equal(t, []Step{{StepNumber: 1, Action: "open the page"}}, cases[0].Steps)
}

func TestParseResponse_KeepsUnknownFields(t *testing.T) {
	raw := `[{"title": "t", "severity": "S1", "aiModel": "spoofed"}]`
	cases, err := ParseResponse(raw, "story", TypeFunctional, "gpt-4")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`"S1"`), cases[0].Extra["severity"])

	b, err := json.Marshal(cases[0])
	require.NoError(t, err)

	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "S1", out["severity"])
	assert.Equal(t, "gpt-4", out["aiModel"])
	assert.Equal(t, true, out["aiGenerated"])
}

func TestParseResponse_PreservesOrder(t *testing.T) {
	cases, err := ParseResponse(`[{"title":"1"},{"title":"2"},{"title":"3"}]`, "s", TypeFunctional, "m")
	require.NoError(t, err)
	for i, c := range cases {
		assert.Equal(t, string(rune('1'+i)), c.Title)
	}
}

func TestEstimateTime(t *testing.T) {
	expected := map[string]int{
		"simple":        15,
		"medium":        30,
		"complex":       60,
		"anything-else": 30,
		"":              30,
	}
	for complexity, minutes := range expected {
		assert.Equal(t, minutes, EstimateTime(complexity), complexity)
	}
}

func TestRoundTripValidCases(t *testing.T) {
	source := []map[string]interface{}{
		{
			"title":          "one",
			"expectedOutput": "ok",
			"steps":          []map[string]interface{}{{"stepNumber": 1, "action": "a", "expectedResult": "b"}},
		},
		{
			"title":          "two",
			"expectedOutput": "ok",
			"steps":          []string{"do it"},
			"priority":       "low",
		},
	}
	b, err := json.Marshal(source)
	require.NoError(t, err)

	cases, err := ParseResponse(string(b), "story", TypeFunctional, "m")
	require.NoError(t, err)
	require.NoError(t, Validate(cases))
	assert.Len(t, cases, len(source))
	for _, c := range cases {
		assert.True(t, c.AIGenerated)
	}
}
