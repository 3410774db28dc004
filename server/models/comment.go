package models

import (
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

type Comment struct {
	ID         uint      `gorm:"primary_key" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	TestCaseID string    `gorm:"not null;index;type:varchar(36)" json:"-"`
	UserID     uint      `gorm:"not null" json:"user"`
	Comment    string    `gorm:"type:text;not null" json:"comment"`
}

var ErrEmptyComment = errors.New("comment is empty")

func orderComments(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

func (c *TestCase) AddComment(userID uint, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := &Comment{
		TestCaseID: c.ID,
		UserID:     userID,
		Comment:    text,
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	c.Comments = append(c.Comments, *comment)
	return comment, nil
}
