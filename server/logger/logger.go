package logger

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// AppLog is replaced by the echo instance logger in main.
var AppLog echo.Logger = log.New("casegen")
