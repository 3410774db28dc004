package controllers

import (
	"net/http"
	"strings"

	"github.com/casegen/casegen/server/models"
	"github.com/labstack/echo/v4"
)

var publicPaths = map[string]bool{
	"/api/auth/register": true,
	"/api/auth/login":    true,
	"/health":            true,
	"/metrics":           true,
}

func CheckLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if publicPaths[c.Path()] || c.Request().Method == http.MethodOptions {
			return next(c)
		}
		// unknown routes answer 404 or 405 without asking for credentials
		if !isRoutable(c) {
			return next(c)
		}

		const bearer = "Bearer"
		auth := c.Request().Header.Get("Authorization")
		values := strings.Split(auth, " ")
		if len(values) < 2 || values[0] != bearer {
			return c.JSON(http.StatusBadRequest, ErrorResponse{"invalid Authorization header"})
		}

		s := models.CheckLogin(values[1])
		if s == nil {
			return c.JSON(http.StatusUnauthorized, responseUnauthorized)
		}

		c.Set("session", *s)

		return next(c)
	}
}

func isRoutable(c echo.Context) bool {
	if c.Path() == "" {
		return false
	}
	method := c.Request().Method
	for _, r := range c.Echo().Routes() {
		if r.Path == c.Path() && r.Method == method {
			return true
		}
	}
	return false
}

func getSession(c echo.Context) *models.UserSession {
	s, ok := c.Get("session").(models.UserSession)
	if ok {
		return &s
	}
	return nil
}
