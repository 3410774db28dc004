package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/modules/generator"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNew(t *testing.T) {
	cfg := conf.Default()
	cfg.Server.FrontendURL = "http://frontend.test"
	conf.SetConfig(cfg)
	defer conf.SetConfig(conf.Default())

	e := New(generator.NewMockGenerator(0))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderOrigin, "http://frontend.test")
	rec := serve(e, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://frontend.test", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Body.String(), generator.ProviderMock)

	req = httptest.NewRequest(http.MethodOptions, "/api/test-cases", nil)
	req.Header.Set(echo.HeaderOrigin, "http://frontend.test")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec = serve(e, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://frontend.test", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderOrigin, "http://evil.test")
	rec = serve(e, req)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/test-cases", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `casegen_http_requests_total{code="200",method="GET",route="/health"}`)
}
