// Package app wires configuration, storage, the generator and the HTTP routes into a server.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/controllers"
	"github.com/casegen/casegen/server/logger"
	"github.com/casegen/casegen/server/models"
	"github.com/casegen/casegen/server/modules/generator"
	"github.com/casegen/casegen/server/modules/metrics"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

// New builds the echo instance for the loaded config. The database must be initialized.
func New(g generator.Generator) *echo.Echo {
	cfg := conf.GetConfig()

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Server.Debug
	if cfg.Server.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}
	logger.AppLog = e.Logger

	controllers.SetGenerator(g)
	e.Validator = controllers.NewValidator()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(controllers.CORS(cfg.Server.FrontendURL))
	e.Use(metrics.Middleware)
	e.Use(controllers.CheckLogin)

	controllers.Routes(e)
	return e
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg := conf.GetConfig()

	if err := models.InitDB(); err != nil {
		return err
	}
	defer models.CloseDB()

	g, err := generator.New(ctx, cfg.AI)
	if err != nil {
		return errors.Wrap(err, "create generator")
	}

	e := New(g)

	errc := make(chan error, 1)
	go func() {
		errc <- e.Start(fmt.Sprintf(":%v", cfg.Server.Port))
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.WithStack(err)
	case <-ctx.Done():
	}

	logger.AppLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.WithStack(e.Shutdown(shutdownCtx))
}
