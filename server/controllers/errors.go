package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// detailedErrorResponse carries the cause of a failed operation next to the message.
type detailedErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type validationErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

var ErrInternalServer = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
