package models

import (
	"sort"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

type TestStep struct {
	ID             uint   `gorm:"primary_key" json:"-"`
	TestCaseID     string `gorm:"not null;index;type:varchar(36)" json:"-"`
	StepNumber     int    `gorm:"not null" json:"stepNumber"`
	Action         string `gorm:"type:text;not null" json:"action" validate:"required"`
	ExpectedResult string `gorm:"type:text" json:"expectedResult"`
}

func orderSteps(db *gorm.DB) *gorm.DB {
	return db.Order("step_number ASC, id ASC")
}

// numberSteps gives unnumbered steps their 1-based position and sorts by step number.
func numberSteps(steps []TestStep) []TestStep {
	res := make([]TestStep, len(steps))
	for i, s := range steps {
		s.ID = 0
		if s.StepNumber == 0 {
			s.StepNumber = i + 1
		}
		res[i] = s
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].StepNumber < res[j].StepNumber
	})
	return res
}

func replaceSteps(tx *gorm.DB, testCaseID string, steps []TestStep) error {
	if err := tx.Delete(TestStep{}, "test_case_id = ?", testCaseID).Error; err != nil {
		return errors.WithStack(err)
	}
	for i := range steps {
		steps[i].TestCaseID = testCaseID
		if err := tx.Create(&steps[i]).Error; err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
