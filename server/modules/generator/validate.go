package generator

import (
	"fmt"
	"strings"
)

// ValidationError lists every missing required field across a batch.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Validate checks title, expectedOutput and steps of every case and reports all
// problems at once. An empty batch is valid.
func Validate(cases []GeneratedTestCase) error {
	messages := make([]string, 0)
	for i, c := range cases {
		n := i + 1
		if c.Title == "" {
			messages = append(messages, fmt.Sprintf("Test case %v: Title is required", n))
		}
		if c.ExpectedOutput == "" {
			messages = append(messages, fmt.Sprintf("Test case %v: Expected output is required", n))
		}
		if len(c.Steps) == 0 {
			messages = append(messages, fmt.Sprintf("Test case %v: At least one test step is required", n))
		}
	}

	if len(messages) != 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}
