package controllers

import (
	"net/http"

	"github.com/casegen/casegen/server/logger"
	"github.com/casegen/casegen/server/models"
	"github.com/labstack/echo/v4"
)

type sessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

var responseUnauthorized = ErrorResponse{"Unauthorized"}

func Login(c echo.Context) error {
	r := &sessionRequest{}
	if err := c.Bind(r); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
	}
	if err := c.Validate(r); err != nil {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{"Invalid credentials", validationMessages(err)})
	}

	s, token, err := models.NewSession(r.Email, r.Password)
	if err != nil {
		if err == models.ErrLogin {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{"Invalid email or password"})
		}

		logger.AppLog.Errorf("login error: %+v", err)
		return ErrInternalServer
	}

	return c.JSON(http.StatusOK, sessionResponse{User: s.User, Token: token})
}

func Logout(c echo.Context) error {
	s := getSession(c)
	if s == nil {
		return c.JSON(http.StatusUnauthorized, responseUnauthorized)
	}
	s.Delete()
	return c.NoContent(http.StatusNoContent)
}
