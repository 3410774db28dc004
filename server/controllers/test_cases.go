package controllers

import (
	"fmt"
	"net/http"

	"github.com/casegen/casegen/server/logger"
	"github.com/casegen/casegen/server/models"
	"github.com/casegen/casegen/server/modules/generator"
	"github.com/labstack/echo/v4"
)

type testCaseRequest struct {
	Title          string            `json:"title" validate:"required"`
	Description    string            `json:"description" validate:"required"`
	UserStory      string            `json:"userStory"`
	TestType       string            `json:"testType" validate:"omitempty,oneof=functional edge negative regression performance"`
	Priority       string            `json:"priority" validate:"omitempty,oneof=high medium low"`
	Steps          []models.TestStep `json:"steps" validate:"required,min=1,dive"`
	Preconditions  []string          `json:"preconditions"`
	Postconditions []string          `json:"postconditions"`
	Tags           []string          `json:"tags"`
	TestData       generator.Text    `json:"testData"`
	ExpectedOutput string            `json:"expectedOutput" validate:"required"`
	AssignedToID   *uint             `json:"assignedToID"`
	Project        string            `json:"project"`
	AIGenerated    bool              `json:"aiGenerated"`
	AIModel        string            `json:"aiModel"`
	AIPrompt       string            `json:"aiPrompt"`
	Complexity     string            `json:"complexity" validate:"omitempty,oneof=simple medium complex"`
	EstimatedTime  int               `json:"estimatedTime" validate:"min=0"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=not_started in_progress passed failed blocked"`
}

type commentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

var errTestCaseNotFound = echo.NewHTTPError(http.StatusNotFound, "Test case not found")

func NewTestCase(c echo.Context) error {
	req := testCaseRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{"Invalid test case", validationMessages(err)})
	}
	if !isExistingAssignee(req.AssignedToID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{"Assignee not found"})
	}

	s := getSession(c)
	testCase := &models.TestCase{
		Title:          req.Title,
		Description:    req.Description,
		UserStory:      req.UserStory,
		TestType:       req.TestType,
		Priority:       req.Priority,
		Steps:          req.Steps,
		Preconditions:  req.Preconditions,
		Postconditions: req.Postconditions,
		Tags:           req.Tags,
		TestData:       string(req.TestData),
		ExpectedOutput: req.ExpectedOutput,
		CreatedByID:    s.UserID,
		AssignedToID:   req.AssignedToID,
		Project:        req.Project,
		AIGenerated:    req.AIGenerated,
		AIModel:        req.AIModel,
		AIPrompt:       req.AIPrompt,
		Complexity:     req.Complexity,
		EstimatedTime:  req.EstimatedTime,
	}
	if err := models.NewTestCase(testCase); err != nil {
		logger.AppLog.Errorf("create test case error: %+v", err)
		return c.JSON(http.StatusInternalServerError, detailedErrorResponse{"Error creating test case", err.Error()})
	}
	testCase.FetchAssignee()
	return c.JSON(http.StatusCreated, testCase)
}

// NewTestCases saves a batch of generated test cases. The batch is rejected as a whole
// when any element misses a required field.
func NewTestCases(c echo.Context) error {
	generated := make([]generator.GeneratedTestCase, 0)
	if err := (&echo.DefaultBinder{}).BindBody(c, &generated); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
	}
	if len(generated) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{"No test cases to save"})
	}
	if err := generator.Validate(generated); err != nil {
		verr := err.(*generator.ValidationError)
		return c.JSON(http.StatusBadRequest, validationErrorResponse{"Invalid test cases", verr.Messages})
	}
	for i, g := range generated {
		if g.TestType != "" && !models.IsValidTestType(g.TestType) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{fmt.Sprintf("Test case %v: Invalid test type %q", i+1, g.TestType)})
		}
		if g.Priority != "" && !models.IsValidPriority(g.Priority) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{fmt.Sprintf("Test case %v: Invalid priority %q", i+1, g.Priority)})
		}
	}

	s := getSession(c)
	cases := make([]*models.TestCase, len(generated))
	for i := range generated {
		cases[i] = models.NewTestCaseFromGenerated(s.UserID, &generated[i])
	}
	if err := models.NewTestCases(cases); err != nil {
		logger.AppLog.Errorf("bulk create error: %+v", err)
		return c.JSON(http.StatusInternalServerError, detailedErrorResponse{"Error saving test cases", err.Error()})
	}
	return c.JSON(http.StatusCreated, cases)
}

func GetTestCases(c echo.Context) error {
	s := getSession(c)
	filter := models.TestCaseFilter{
		Status:   c.QueryParam("status"),
		TestType: c.QueryParam("testType"),
		Priority: c.QueryParam("priority"),
		Project:  c.QueryParam("project"),
		Tag:      c.QueryParam("tag"),
		Search:   c.QueryParam("search"),
	}

	cases, err := models.GetTestCases(s.UserID, filter)
	if err != nil {
		logger.AppLog.Errorf("list test cases error: %+v", err)
		return c.JSON(http.StatusInternalServerError, detailedErrorResponse{"Error fetching test cases", err.Error()})
	}
	return c.JSON(http.StatusOK, cases)
}

func GetTestCase(c echo.Context) error {
	testCase, err := getOwnTestCase(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, testCase)
}

func UpdateTestCase(c echo.Context) error {
	testCase, err := getOwnTestCase(c)
	if err != nil {
		return err
	}

	req := &models.TestCaseUpdate{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{"Invalid test case", validationMessages(err)})
	}
	if !isExistingAssignee(req.AssignedToID.ID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{"Assignee not found"})
	}

	if err := testCase.Update(req); err != nil {
		logger.AppLog.Errorf("update test case error: %+v", err)
		return c.JSON(http.StatusInternalServerError, detailedErrorResponse{"Error updating test case", err.Error()})
	}

	s := getSession(c)
	updated, err := models.GetTestCase(s.UserID, testCase.ID)
	if err != nil {
		logger.AppLog.Errorf("update test case error: %+v", err)
		return ErrInternalServer
	}
	return c.JSON(http.StatusOK, updated)
}

func UpdateTestCaseStatus(c echo.Context) error {
	testCase, err := getOwnTestCase(c)
	if err != nil {
		return err
	}

	req := statusRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{"Invalid status", validationMessages(err)})
	}

	if err := testCase.UpdateStatus(req.Status); err != nil {
		logger.AppLog.Errorf("update status error: %+v", err)
		return ErrInternalServer
	}
	return c.JSON(http.StatusOK, testCase)
}

func AddComment(c echo.Context) error {
	testCase, err := getOwnTestCase(c)
	if err != nil {
		return err
	}

	req := commentRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{"Invalid comment", validationMessages(err)})
	}

	s := getSession(c)
	_, err = testCase.AddComment(s.UserID, req.Comment)
	switch err {
	case nil:
		return c.JSON(http.StatusCreated, testCase)
	case models.ErrEmptyComment:
		return c.JSON(http.StatusBadRequest, ErrorResponse{"Comment is required"})
	default:
		logger.AppLog.Errorf("add comment error: %+v", err)
		return ErrInternalServer
	}
}

func DeleteTestCase(c echo.Context) error {
	testCase, err := getOwnTestCase(c)
	if err != nil {
		return err
	}

	if err := testCase.Delete(); err != nil {
		logger.AppLog.Errorf("delete test case error: %+v", err)
		return c.JSON(http.StatusInternalServerError, detailedErrorResponse{"Error deleting test case", err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// getOwnTestCase loads the :id record of the session user. Any other record is a 404.
func getOwnTestCase(c echo.Context) (*models.TestCase, error) {
	s := getSession(c)
	testCase, err := models.GetTestCase(s.UserID, c.Param("id"))
	if err != nil {
		return nil, errTestCaseNotFound
	}
	return testCase, nil
}

func isExistingAssignee(id *uint) bool {
	return id == nil || models.GetUser(*id) != nil
}
