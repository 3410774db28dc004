package controllers

import (
	"net/http"

	"github.com/casegen/casegen/server/logger"
	"github.com/casegen/casegen/server/models"
	"github.com/labstack/echo/v4"
)

type registrationRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	// bcrypt ignores everything after 72 bytes
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func RegisterUser(c echo.Context) error {
	req := registrationRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{"Invalid registration", validationMessages(err)})
	}

	user, err := models.NewUser(req.FirstName, req.LastName, req.Email, req.Password)
	switch err {
	case models.ErrEmailAlreadyExists:
		return c.JSON(http.StatusBadRequest, ErrorResponse{"User already exists"})
	case nil:
		_, token, err := models.NewSessionForUser(user)
		if err != nil {
			logger.AppLog.Errorf("registration error: %+v", err)
			return ErrInternalServer
		}
		return c.JSON(http.StatusCreated, sessionResponse{User: *user, Token: token})
	default:
		logger.AppLog.Errorf("registration error: %+v", err)
		return ErrInternalServer
	}
}
