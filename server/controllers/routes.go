package controllers

import (
	"net/http"

	"github.com/casegen/casegen/server/modules/metrics"
	"github.com/labstack/echo/v4"
)

func Routes(e *echo.Echo) {
	e.GET("/health", Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")

	api.POST("/auth/register", RegisterUser)
	api.POST("/auth/login", Login)
	api.DELETE("/auth/logout", Logout)
	api.GET("/auth/profile", GetMyUser)
	api.PUT("/auth/profile", UpdateMyUser)

	api.POST("/test-cases/generate", GenerateTestCases)
	api.GET("/test-cases/models", GetModels)
	api.POST("/test-cases/bulk", NewTestCases)
	api.POST("/test-cases", NewTestCase)
	api.GET("/test-cases", GetTestCases)
	api.GET("/test-cases/:id", GetTestCase)
	api.PUT("/test-cases/:id", UpdateTestCase)
	api.PATCH("/test-cases/:id/status", UpdateTestCaseStatus)
	api.POST("/test-cases/:id/comments", AddComment)
	api.DELETE("/test-cases/:id", DeleteTestCase)

	api.GET("/export/csv", ExportCSV)
	api.GET("/export/excel", ExportExcel)
	api.POST("/export/import/csv", ImportCSV)
}

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "OK", Provider: gen.Name()})
}
