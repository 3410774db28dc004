package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	const story = "As a user, I want to login to my account"

	cases := []struct {
		testType   string
		complexity string
		count      int
		contains   []string
	}{
		{TypeFunctional, "medium", 3, []string{"3 comprehensive functional test cases", story, "Complexity level: medium"}},
		{TypeEdge, "complex", 2, []string{"2 edge case test scenarios", story, "Complexity: complex"}},
		{TypeNegative, "simple", 1, []string{"1 negative test cases", story, "Complexity: simple"}},
		{"unknown-type", "medium", 3, []string{"functional test cases", story, "3"}},
		{"", "", 0, []string{"5 comprehensive functional test cases", "Complexity level: medium"}},
	}

	for i, c := range cases {
		prompt := BuildPrompt(story, c.testType, c.complexity, c.count)
		for _, s := range c.contains {
			assert.Contains(t, prompt, s, "case #%v", i)
		}
	}
}

func TestBuildPrompt_UnknownTypeUsesFunctionalTemplate(t *testing.T) {
	assert.Equal(t,
		BuildPrompt("story", TypeFunctional, "medium", 3),
		BuildPrompt("story", "unknown-type", "medium", 3))
}

func TestBuildPrompt_StoryIsNotEscaped(t *testing.T) {
	const story = `He said "drop table" <b>now</b> %v`
	assert.Contains(t, BuildPrompt(story, TypeEdge, "medium", 1), story)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	assert.Equal(t,
		BuildPrompt("story", TypeNegative, "complex", 4),
		BuildPrompt("story", TypeNegative, "complex", 4))
}
