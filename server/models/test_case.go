package models

import (
	"strings"
	"time"

	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/modules/generator"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

type TestCase struct {
	ID             string     `gorm:"primary_key;type:varchar(36)" json:"id"`
	TestCaseID     string     `gorm:"-" json:"testCaseId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	UserStory      string     `gorm:"type:text" json:"userStory"`
	TestType       string     `gorm:"not null" json:"testType"`
	Priority       string     `gorm:"not null" json:"priority"`
	Steps          []TestStep `json:"steps"`
	Preconditions  StringList `gorm:"type:text" json:"preconditions"`
	Postconditions StringList `gorm:"type:text" json:"postconditions"`
	Tags           StringList `gorm:"type:text" json:"tags"`
	TestData       string     `gorm:"type:text" json:"testData"`
	ExpectedOutput string     `gorm:"type:text" json:"expectedOutput"`
	ActualOutput   string     `gorm:"type:text" json:"actualOutput"`
	Status         string     `gorm:"not null" json:"status"`
	CreatedByID    uint       `gorm:"not null" json:"createdBy"`
	AssignedToID   *uint      `json:"assignedToID"`
	AssignedTo     *User      `gorm:"-" json:"assignedTo,omitempty"`
	Project        string     `json:"project"`
	AIGenerated    bool       `gorm:"column:ai_generated" json:"aiGenerated"`
	AIModel        string     `gorm:"column:ai_model" json:"aiModel"`
	AIPrompt       string     `gorm:"column:ai_prompt;type:text" json:"aiPrompt,omitempty"`
	Complexity     string     `gorm:"not null" json:"complexity"`
	EstimatedTime  int        `json:"estimatedTime"`
	Comments       []Comment  `json:"comments"`
	Version        int        `gorm:"not null" json:"version"`
}

const (
	StatusNotStarted = generator.StatusNotStarted
	StatusInProgress = "in_progress"
	StatusPassed     = "passed"
	StatusFailed     = "failed"
	StatusBlocked    = "blocked"

	TestTypeRegression  = "regression"
	TestTypePerformance = "performance"
)

var (
	Statuses   = []string{StatusNotStarted, StatusInProgress, StatusPassed, StatusFailed, StatusBlocked}
	TestTypes  = []string{generator.TypeFunctional, generator.TypeEdge, generator.TypeNegative, TestTypeRegression, TestTypePerformance}
	Priorities = []string{generator.PriorityHigh, generator.PriorityMedium, generator.PriorityLow}

	ErrTestCaseNotFound = errors.New("test case not found")
	ErrInvalidStatus    = errors.New("invalid status")
)

// TestCaseFilter narrows GetTestCases. Empty fields match everything.
type TestCaseFilter struct {
	Status   string
	TestType string
	Priority string
	Project  string
	Tag      string
	// Search matches title or description, case-insensitively.
	Search string
}

// TestCaseUpdate holds the fields of a partial update; nil fields are left as they are.
type TestCaseUpdate struct {
	Title          *string     `json:"title" validate:"omitempty,min=1"`
	Description    *string     `json:"description"`
	UserStory      *string     `json:"userStory"`
	TestType       *string     `json:"testType" validate:"omitempty,oneof=functional edge negative regression performance"`
	Priority       *string     `json:"priority" validate:"omitempty,oneof=high medium low"`
	Steps          *[]TestStep `json:"steps" validate:"omitempty,min=1,dive"`
	Preconditions  *[]string   `json:"preconditions"`
	Postconditions *[]string   `json:"postconditions"`
	Tags           *[]string   `json:"tags"`
	TestData       *string     `json:"testData"`
	ExpectedOutput *string     `json:"expectedOutput" validate:"omitempty,min=1"`
	ActualOutput   *string     `json:"actualOutput"`
	Status         *string     `json:"status" validate:"omitempty,oneof=not_started in_progress passed failed blocked"`
	AssignedToID   NullableID  `json:"assignedToID"`
	Project        *string     `json:"project"`
	Complexity     *string     `json:"complexity" validate:"omitempty,oneof=simple medium complex"`
	EstimatedTime  *int        `json:"estimatedTime" validate:"omitempty,min=0"`
}

func (c *TestCase) BeforeCreate(scope *gorm.Scope) error {
	if c.ID != "" {
		return nil
	}
	return scope.SetColumn("ID", uuid.NewString())
}

func (c *TestCase) AfterCreate() error {
	c.TestCaseID = c.DisplayID()
	return nil
}

func (c *TestCase) AfterFind() error {
	c.TestCaseID = c.DisplayID()
	if c.Steps == nil {
		c.Steps = []TestStep{}
	}
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	return nil
}

// DisplayID is the short human readable id, e.g. TC-1A2B3C4D.
func (c *TestCase) DisplayID() string {
	id := c.ID
	if 8 < len(id) {
		id = id[:8]
	}
	return "TC-" + strings.ToUpper(id)
}

// NewTestCaseFromGenerated converts a generator result into an unsaved record owned by userID.
func NewTestCaseFromGenerated(userID uint, g *generator.GeneratedTestCase) *TestCase {
	steps := make([]TestStep, len(g.Steps))
	for i, s := range g.Steps {
		steps[i] = TestStep{StepNumber: s.StepNumber, Action: s.Action, ExpectedResult: s.ExpectedResult}
	}

	return &TestCase{
		Title:          g.Title,
		Description:    g.Description,
		UserStory:      g.UserStory,
		TestType:       g.TestType,
		Priority:       g.Priority,
		Steps:          steps,
		Preconditions:  g.Preconditions,
		Postconditions: g.Postconditions,
		Tags:           g.Tags,
		TestData:       string(g.TestData),
		ExpectedOutput: g.ExpectedOutput,
		Status:         g.Status,
		CreatedByID:    userID,
		AIGenerated:    g.AIGenerated,
		AIModel:        g.AIModel,
		Complexity:     g.Complexity,
		EstimatedTime:  g.EstimatedTime,
	}
}

func NewTestCase(c *TestCase) error {
	c.applyDefaults()
	if err := db.Create(c).Error; err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// NewTestCases inserts all records in one transaction.
func NewTestCases(cases []*TestCase) error {
	tx := db.Begin()
	if err := tx.Error; err != nil {
		return errors.WithStack(err)
	}
	for _, c := range cases {
		c.applyDefaults()
		if err := tx.Create(c).Error; err != nil {
			tx.Rollback()
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(tx.Commit().Error)
}

// GetTestCase returns ErrTestCaseNotFound for records owned by another user.
func GetTestCase(userID uint, id string) (*TestCase, error) {
	c := &TestCase{}
	nf := db.Where("id = ? AND created_by_id = ?", id, userID).
		Preload("Steps", orderSteps).
		Preload("Comments", orderComments).
		First(c).RecordNotFound()
	if nf {
		return nil, ErrTestCaseNotFound
	}

	c.FetchAssignee()
	return c, nil
}

// GetTestCases lists the user's records, newest first.
func GetTestCases(userID uint, f TestCaseFilter) ([]TestCase, error) {
	query := db.Where("created_by_id = ?", userID)
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.TestType != "" {
		query = query.Where("test_type = ?", f.TestType)
	}
	if f.Priority != "" {
		query = query.Where("priority = ?", f.Priority)
	}
	if f.Project != "" {
		query = query.Where("project = ?", f.Project)
	}
	if f.Tag != "" {
		query = query.Where("tags LIKE ?", "%"+f.Tag+"%")
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	found := make([]TestCase, 0)
	err := query.Order("created_at DESC").
		Preload("Steps", orderSteps).
		Preload("Comments", orderComments).
		Find(&found).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cases := found
	if f.Tag != "" {
		// LIKE also matches substrings of other tags
		cases = make([]TestCase, 0, len(found))
		for _, c := range found {
			if c.Tags.Contains(f.Tag) {
				cases = append(cases, c)
			}
		}
	}

	fetchAssignees(cases)
	return cases, nil
}

func (c *TestCase) Update(u *TestCaseUpdate) error {
	attrs := map[string]interface{}{}
	setString := func(column string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			attrs[column] = *src
		}
	}
	setList := func(column string, dst *StringList, src *[]string) {
		if src != nil {
			*dst = StringList(*src)
			attrs[column] = *dst
		}
	}

	setString("title", &c.Title, u.Title)
	setString("description", &c.Description, u.Description)
	setString("user_story", &c.UserStory, u.UserStory)
	setString("test_type", &c.TestType, u.TestType)
	setString("priority", &c.Priority, u.Priority)
	setString("test_data", &c.TestData, u.TestData)
	setString("expected_output", &c.ExpectedOutput, u.ExpectedOutput)
	setString("actual_output", &c.ActualOutput, u.ActualOutput)
	setString("status", &c.Status, u.Status)
	setString("project", &c.Project, u.Project)
	setString("complexity", &c.Complexity, u.Complexity)
	setList("preconditions", &c.Preconditions, u.Preconditions)
	setList("postconditions", &c.Postconditions, u.Postconditions)
	setList("tags", &c.Tags, u.Tags)
	if u.AssignedToID.Set {
		c.AssignedToID = u.AssignedToID.ID
		if u.AssignedToID.ID == nil {
			attrs["assigned_to_id"] = nil
		} else {
			attrs["assigned_to_id"] = *u.AssignedToID.ID
		}
	}
	if u.EstimatedTime != nil {
		c.EstimatedTime = *u.EstimatedTime
		attrs["estimated_time"] = *u.EstimatedTime
	}
	attrs["version"] = gorm.Expr("version + ?", 1)

	tx := db.Begin()
	if err := tx.Error; err != nil {
		return errors.WithStack(err)
	}
	if err := tx.Model(&TestCase{}).Where("id = ?", c.ID).Updates(attrs).Error; err != nil {
		tx.Rollback()
		return errors.WithStack(err)
	}
	err := tx.Table("test_cases").Where("id = ?", c.ID).Select("version").Row().Scan(&c.Version)
	if err != nil {
		tx.Rollback()
		return errors.WithStack(err)
	}
	if u.Steps != nil {
		steps := numberSteps(*u.Steps)
		if err := replaceSteps(tx, c.ID, steps); err != nil {
			tx.Rollback()
			return err
		}
		c.Steps = steps
	}
	if err := tx.Commit().Error; err != nil {
		return errors.WithStack(err)
	}

	c.FetchAssignee()
	return nil
}

func (c *TestCase) UpdateStatus(status string) error {
	if !isOneOf(status, Statuses) {
		return ErrInvalidStatus
	}

	err := db.Model(&TestCase{}).Where("id = ?", c.ID).Update("status", status).Error
	if err != nil {
		return errors.WithStack(err)
	}
	c.Status = status
	return nil
}

func (c *TestCase) Delete() error {
	tx := db.Begin()
	if err := tx.Error; err != nil {
		return errors.WithStack(err)
	}
	if err := tx.Delete(TestStep{}, "test_case_id = ?", c.ID).Error; err != nil {
		tx.Rollback()
		return errors.WithStack(err)
	}
	if err := tx.Delete(Comment{}, "test_case_id = ?", c.ID).Error; err != nil {
		tx.Rollback()
		return errors.WithStack(err)
	}
	if err := tx.Delete(TestCase{}, "id = ?", c.ID).Error; err != nil {
		tx.Rollback()
		return errors.WithStack(err)
	}
	return errors.WithStack(tx.Commit().Error)
}

func (c *TestCase) FetchAssignee() {
	c.AssignedTo = nil
	if c.AssignedToID == nil {
		return
	}
	c.AssignedTo = GetUser(*c.AssignedToID)
}

// AssigneeName is the assignee's full name, or "Unassigned".
func (c *TestCase) AssigneeName() string {
	if c.AssignedTo == nil {
		return "Unassigned"
	}
	return c.AssignedTo.FullName()
}

func (c *TestCase) applyDefaults() {
	c.TestType = conf.DefaultString(c.TestType, generator.TypeFunctional)
	c.Priority = conf.DefaultString(c.Priority, generator.PriorityMedium)
	c.Status = conf.DefaultString(c.Status, StatusNotStarted)
	c.Complexity = conf.DefaultString(c.Complexity, generator.ComplexityMedium)
	if c.Preconditions == nil {
		c.Preconditions = StringList{}
	}
	if c.Postconditions == nil {
		c.Postconditions = StringList{}
	}
	if c.Tags == nil {
		c.Tags = StringList{}
	}
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	if c.Version == 0 {
		c.Version = 1
	}
	c.Steps = numberSteps(c.Steps)
}

func fetchAssignees(cases []TestCase) {
	ids := make([]uint, 0)
	for _, c := range cases {
		if c.AssignedToID != nil {
			ids = append(ids, *c.AssignedToID)
		}
	}

	users := getUsers(ids)
	for i := range cases {
		cases[i].AssignedTo = nil
		if cases[i].AssignedToID == nil {
			continue
		}
		if u, ok := users[*cases[i].AssignedToID]; ok {
			cases[i].AssignedTo = &u
		}
	}
}

func isOneOf(s string, list []string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	return isOneOf(status, Statuses)
}

func IsValidTestType(testType string) bool {
	return isOneOf(testType, TestTypes)
}

func IsValidPriority(priority string) bool {
	return isOneOf(priority, Priorities)
}
