package generator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	TypeFunctional = "functional"
	TypeEdge       = "edge"
	TypeNegative   = "negative"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	ComplexitySimple  = "simple"
	ComplexityMedium  = "medium"
	ComplexityComplex = "complex"

	// StatusNotStarted is the wire value of the "not started" status.
	StatusNotStarted = "not_started"

	ProvenanceTag = "ai-generated"
)

// GeneratedTestCase is a test case produced by a model and not yet saved.
type GeneratedTestCase struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Steps          []Step   `json:"steps"`
	Preconditions  []string `json:"preconditions"`
	Postconditions []string `json:"postconditions"`
	ExpectedOutput string   `json:"expectedOutput"`
	TestData       Text     `json:"testData,omitempty"`
	Priority       string   `json:"priority"`
	Tags           []string `json:"tags"`
	Complexity     string   `json:"complexity,omitempty"`
	UserStory      string   `json:"userStory"`
	TestType       string   `json:"testType"`
	AIGenerated    bool     `json:"aiGenerated"`
	AIModel        string   `json:"aiModel"`
	Status         string   `json:"status"`
	EstimatedTime  int      `json:"estimatedTime"`

	// Extra holds the fields returned by the model that have no typed counterpart.
	Extra map[string]json.RawMessage `json:"-"`
}

var knownFields = []string{
	"title", "description", "steps", "preconditions", "postconditions",
	"expectedOutput", "testData", "priority", "tags", "complexity",
	"userStory", "testType", "aiGenerated", "aiModel", "status", "estimatedTime",
}

type Step struct {
	StepNumber     int    `json:"stepNumber"`
	Action         string `json:"action"`
	ExpectedResult string `json:"expectedResult"`
}

// Text is a string field that also accepts non-string JSON, kept as compact JSON text.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = ""
		return nil
	}

	buf := &bytes.Buffer{}
	if err := json.Compact(buf, data); err != nil {
		return err
	}
	*t = Text(buf.String())
	return nil
}

// number accepts a JSON number or a numeric string. Anything else reads as 0.
type number int

func (n *number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = number(f)
		return nil
	}

	*n = 0
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = number(v)
		}
	}
	return nil
}

// textList accepts an array or a single value, which becomes a one element list.
type textList []string

func (l *textList) UnmarshalJSON(data []byte) error {
	var items []Text
	if err := json.Unmarshal(data, &items); err == nil {
		if items == nil {
			*l = nil
			return nil
		}
		res := make(textList, len(items))
		for i, v := range items {
			res[i] = string(v)
		}
		*l = res
		return nil
	}

	var one Text
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = textList{}
	if one != "" {
		*l = textList{string(one)}
	}
	return nil
}

// stepList accepts an array of steps or a single step.
type stepList []Step

func (l *stepList) UnmarshalJSON(data []byte) error {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err == nil {
		*l = steps
		return nil
	}

	var one Step
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = stepList{one}
	return nil
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var action string
	if err := json.Unmarshal(data, &action); err == nil {
		*s = Step{Action: action}
		return nil
	}

	w := struct {
		StepNumber     number `json:"stepNumber"`
		Action         Text   `json:"action"`
		ExpectedResult Text   `json:"expectedResult"`
	}{}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Step{
		StepNumber:     int(w.StepNumber),
		Action:         string(w.Action),
		ExpectedResult: string(w.ExpectedResult),
	}
	return nil
}

// wireTestCase mirrors GeneratedTestCase with types that take whatever JSON a model returns.
type wireTestCase struct {
	Title          Text     `json:"title"`
	Description    Text     `json:"description"`
	Steps          stepList `json:"steps"`
	Preconditions  textList `json:"preconditions"`
	Postconditions textList `json:"postconditions"`
	ExpectedOutput Text     `json:"expectedOutput"`
	TestData       Text     `json:"testData"`
	Priority       Text     `json:"priority"`
	Tags           textList `json:"tags"`
	Complexity     Text     `json:"complexity"`
	UserStory      Text     `json:"userStory"`
	TestType       Text     `json:"testType"`
	AIGenerated    Text     `json:"aiGenerated"`
	AIModel        Text     `json:"aiModel"`
	Status         Text     `json:"status"`
	EstimatedTime  number   `json:"estimatedTime"`
}

func (c *GeneratedTestCase) UnmarshalJSON(data []byte) error {
	w := wireTestCase{}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	all := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range knownFields {
		delete(all, k)
	}

	*c = GeneratedTestCase{
		Title:          string(w.Title),
		Description:    string(w.Description),
		Steps:          []Step(w.Steps),
		Preconditions:  []string(w.Preconditions),
		Postconditions: []string(w.Postconditions),
		ExpectedOutput: string(w.ExpectedOutput),
		TestData:       w.TestData,
		Priority:       string(w.Priority),
		Tags:           []string(w.Tags),
		Complexity:     string(w.Complexity),
		UserStory:      string(w.UserStory),
		TestType:       string(w.TestType),
		AIGenerated:    w.AIGenerated == "true",
		AIModel:        string(w.AIModel),
		Status:         string(w.Status),
		EstimatedTime:  int(w.EstimatedTime),
	}
	if len(all) != 0 {
		c.Extra = all
	}
	return nil
}

func (c GeneratedTestCase) MarshalJSON() ([]byte, error) {
	type plain GeneratedTestCase
	b, err := json.Marshal(plain(c))
	if err != nil || len(c.Extra) == 0 {
		return b, err
	}

	merged := make(map[string]json.RawMessage, len(knownFields)+len(c.Extra))
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
