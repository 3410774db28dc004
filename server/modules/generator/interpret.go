package generator

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/casegen/casegen/server/conf"
	"github.com/pkg/errors"
)

var (
	ErrInvalidResponse = errors.New("invalid response format from AI service")

	leadingFence  = regexp.MustCompile("^```(?i:json)?[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\r?\n?```$")

	estimatedMinutes = map[string]int{
		ComplexitySimple:  15,
		ComplexityMedium:  30,
		ComplexityComplex: 60,
	}
)

// EstimateTime maps a complexity hint to minutes. Unknown hints count as medium.
func EstimateTime(complexity string) int {
	if m, ok := estimatedMinutes[complexity]; ok {
		return m
	}
	return estimatedMinutes[ComplexityMedium]
}

// ParseResponse decodes the raw model answer into test cases and fills in the
// metadata this service owns. It does not validate required fields.
func ParseResponse(raw, userStory, testType, aiModel string) ([]GeneratedTestCase, error) {
	text := stripFence(raw)

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, errors.Wrap(ErrInvalidResponse, err.Error())
	}
	if elements == nil {
		// "null" decodes into a nil slice without error
		return nil, errors.Wrap(ErrInvalidResponse, "expected array of test cases")
	}

	cases := make([]GeneratedTestCase, len(elements))
	for i, e := range elements {
		if !isObject(e) {
			// not an object: nothing to copy, validation reports the missing fields
			continue
		}
		if err := json.Unmarshal(e, &cases[i]); err != nil {
			return nil, errors.Wrapf(ErrInvalidResponse, "test case %v: %v", i+1, err)
		}
	}

	enrich(cases, userStory, testType, aiModel)
	return cases, nil
}

func enrich(cases []GeneratedTestCase, userStory, testType, aiModel string) {
	for i := range cases {
		c := &cases[i]
		c.UserStory = userStory
		c.TestType = testType
		c.AIGenerated = true
		c.AIModel = aiModel
		c.Status = StatusNotStarted

		if c.Steps == nil {
			c.Steps = []Step{}
		}
		for j := range c.Steps {
			if c.Steps[j].StepNumber == 0 {
				c.Steps[j].StepNumber = j + 1
			}
		}
		if c.Preconditions == nil {
			c.Preconditions = []string{}
		}
		if c.Postconditions == nil {
			c.Postconditions = []string{}
		}
		if c.Tags == nil {
			c.Tags = []string{ProvenanceTag, testType}
		}
		if c.Priority == "" {
			c.Priority = PriorityMedium
		}

		c.EstimatedTime = EstimateTime(conf.DefaultString(c.Complexity, ComplexityMedium))
	}
}

func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) != 0 && t[0] == '{'
}
