package controllers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator plugs go-playground/validator into echo's Context.Validate.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// fieldMessages has the messages shown for required fields of a test case.
var fieldMessages = map[string]string{
	"title":          "Title is required",
	"description":    "Description is required",
	"expectedOutput": "Expected output is required",
	"steps":          "At least one step is required",
	"userStory":      "User story is required",
	"email":          "A valid email is required",
	"password":       "Password must be at least 6 characters",
	"firstName":      "First name is required",
	"lastName":       "Last name is required",
	"status":         "Status is invalid",
	"comment":        "Comment is required",
}

func validationMessages(err error) []string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	res := make([]string, 0, len(errs))
	for _, e := range errs {
		// nested fields such as steps[0].action get the generic message
		if msg, ok := fieldMessages[e.Field()]; ok && strings.Count(e.Namespace(), ".") == 1 {
			res = append(res, msg)
			continue
		}
		res = append(res, e.Namespace()+" is invalid ("+e.Tag()+")")
	}
	return res
}
