package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAttempt(t *testing.T) {
	ok := GenerationAttempts.WithLabelValues("test", "m1", OutcomeSuccess)
	failed := GenerationAttempts.WithLabelValues("test", "m1", OutcomeError)
	before, beforeFailed := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveAttempt("test", "m1", time.Now(), nil)
	ObserveAttempt("test", "m1", time.Now(), errors.New("boom"))
	ObserveAttempt("test", "m1", time.Now(), errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(ok))
	assert.Equal(t, beforeFailed+2, testutil.ToFloat64(failed))
}

func TestMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(Middleware)
	e.GET("/items/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.ErrNotFound
		}
		return c.NoContent(http.StatusNoContent)
	})

	for _, id := range []string{"1", "2", "missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/items/:id", "204")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/items/:id", "404")))
}
