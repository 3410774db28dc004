// Package metrics exposes Prometheus collectors for the generation pipeline and
// the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "casegen"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// GenerationAttempts counts model calls. A request that falls back records two attempts.
	GenerationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "generation",
		Name:      "attempts_total",
		Help:      "Generation attempts by provider, model and outcome.",
	}, []string{"provider", "model", "outcome"})

	GenerationFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "generation",
		Name:      "fallbacks_total",
		Help:      "Switches to the alternate model.",
	}, []string{"provider", "from", "to"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "generation",
		Name:      "duration_seconds",
		Help:      "Time spent per generation attempt.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
	}, []string{"provider", "model"})

	GeneratedTestCases = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "generation",
		Name:      "test_cases_total",
		Help:      "Test cases returned to callers.",
	}, []string{"provider", "test_type"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"})
)

// ObserveAttempt records one model call.
func ObserveAttempt(provider, model string, started time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	GenerationAttempts.WithLabelValues(provider, model, outcome).Inc()
	GenerationDuration.WithLabelValues(provider, model).Observe(time.Since(started).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware counts requests by route pattern so ids do not explode label cardinality.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		code := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
		HTTPRequests.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(code)).Inc()
		return err
	}
}
