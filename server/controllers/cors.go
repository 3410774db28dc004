package controllers

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CORS allows the frontend origin to call the API with a bearer token.
func CORS(frontendURL string) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{frontendURL},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentDisposition, "Date"},
		AllowMethods:  []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
	})
}
