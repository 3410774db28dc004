package controllers

import (
	"net/http"

	"github.com/casegen/casegen/server/logger"
	"github.com/labstack/echo/v4"
)

type profileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

func GetMyUser(c echo.Context) error {
	s := getSession(c)
	if s == nil {
		return echo.ErrNotFound
	}
	s.FetchUser()
	return c.JSON(http.StatusOK, s.User)
}

func UpdateMyUser(c echo.Context) error {
	s := getSession(c)
	if s == nil {
		return echo.ErrNotFound
	}

	req := profileRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{"Invalid profile", validationMessages(err)})
	}

	s.FetchUser()
	if err := s.User.UpdateProfile(req.FirstName, req.LastName); err != nil {
		logger.AppLog.Errorf("update profile error: %+v", err)
		return ErrInternalServer
	}
	return c.JSON(http.StatusOK, s.User)
}
