package generator

import "fmt"

const (
	DefaultCount = 5

	// SystemInstruction frames chat style backends.
	SystemInstruction = "You are a senior QA engineer with expertise in creating comprehensive test cases. " +
		"Generate test cases in JSON format that can be easily parsed and imported into test management systems."
)

// %[1]v count, %[2]v user story, %[3]v complexity
const (
	functionalTemplate = `Generate %[1]v comprehensive functional test cases for the following user story.
Consider different scenarios, inputs, and expected outcomes. Format the response as a JSON array of test cases.

User Story: "%[2]v"

Each test case should include:
- title: Descriptive title
- description: Detailed description of what is being tested
- steps: Array of step objects with stepNumber, action, and expectedResult
- preconditions: Array of prerequisites
- expectedOutput: Expected result
- priority: high/medium/low
- testData: Required test data

Complexity level: %[3]v

Return only valid JSON, no additional text.`

	edgeTemplate = `Generate %[1]v edge case test scenarios for the following user story.
Focus on boundary conditions, extreme values, and unusual scenarios. Format as JSON array.

User Story: "%[2]v"

Each edge case should include:
- title: Descriptive title indicating it's an edge case
- description: Explanation of the edge condition
- steps: Test steps
- expectedOutput: What should happen in this edge case
- priority: Typically high for edge cases

Complexity: %[3]v

Return only valid JSON.`

	negativeTemplate = `Generate %[1]v negative test cases for the following user story.
Focus on invalid inputs, error conditions, and failure scenarios. Format as JSON array.

User Story: "%[2]v"

Each negative test case should include:
- title: Descriptive title indicating negative scenario
- description: What invalid condition is being tested
- steps: Steps to reproduce the negative scenario
- expectedOutput: Expected error message or behavior
- priority: Usually medium to high

Complexity: %[3]v

Return only valid JSON.`
)

var promptTemplates = map[string]string{
	TypeFunctional: functionalTemplate,
	TypeEdge:       edgeTemplate,
	TypeNegative:   negativeTemplate,
}

// BuildPrompt renders the template for testType. Unknown types use the functional template.
// The user story is inserted as is.
func BuildPrompt(userStory, testType, complexity string, count int) string {
	testType, complexity, count = withDefaults(testType, complexity, count)

	tmpl, ok := promptTemplates[testType]
	if !ok {
		tmpl = functionalTemplate
	}
	return fmt.Sprintf(tmpl, count, userStory, complexity)
}

func withDefaults(testType, complexity string, count int) (string, string, int) {
	if testType == "" {
		testType = TypeFunctional
	}
	if complexity == "" {
		complexity = ComplexityMedium
	}
	if count <= 0 {
		count = DefaultCount
	}
	return testType, complexity, count
}
