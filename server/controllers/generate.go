package controllers

import (
	"context"
	"net/http"

	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/logger"
	"github.com/casegen/casegen/server/modules/generator"
	"github.com/labstack/echo/v4"
)

var gen generator.Generator = generator.NewMockGenerator(0)

// SetGenerator replaces the generator shared by all requests.
func SetGenerator(g generator.Generator) {
	gen = g
}

type generateRequest struct {
	UserStory  string `json:"userStory" validate:"required"`
	TestType   string `json:"testType" validate:"omitempty,oneof=functional edge negative regression performance"`
	Complexity string `json:"complexity" validate:"omitempty,oneof=simple medium complex"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=20"`
}

type modelsResponse struct {
	Provider        string   `json:"provider"`
	Model           string   `json:"model"`
	SupportedModels []string `json:"supportedModels"`
}

func GenerateTestCases(c echo.Context) error {
	req := generateRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{"Invalid generation request", validationMessages(err)})
	}

	ctx := c.Request().Context()
	if timeout := conf.GetConfig().AI.Timeout.Duration; 0 < timeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cases, err := gen.Generate(ctx, req.UserStory, req.TestType, req.Complexity, req.Count)
	if err != nil {
		logger.AppLog.Errorf("generate error: %+v", err)
		return c.JSON(http.StatusInternalServerError, detailedErrorResponse{"Error generating test cases", err.Error()})
	}
	return c.JSON(http.StatusOK, cases)
}

func GetModels(c echo.Context) error {
	return c.JSON(http.StatusOK, modelsResponse{
		Provider:        gen.Name(),
		Model:           gen.Model(),
		SupportedModels: gen.SupportedModels(),
	})
}
