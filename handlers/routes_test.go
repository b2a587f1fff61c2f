package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"go-url-admin/config"
	"go-url-admin/handlers/mocks"
	"go-url-admin/metrics"
)

func setupTest() (*gin.Engine, *mocks.MockURLHandler, *config.Config) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mockHandler := &mocks.MockURLHandler{}
	mockHandler.On("RateLimitMiddleware").Return(gin.HandlerFunc(func(c *gin.Context) {}))
	cfg := config.DefaultConfig()
	return router, mockHandler, cfg
}

func TestRegisterRoutes(t *testing.T) {
	tests := []struct {
		method  string
		path    string
		handler string
	}{
		{http.MethodGet, "/", "Index"},
		{http.MethodPost, "/urls", "Shorten"},
		{http.MethodGet, "/urls/1/edit", "OpenEdit"},
		{http.MethodPost, "/urls/1/update", "Update"},
		{http.MethodGet, "/edit/close", "CloseEdit"},
		{http.MethodGet, "/urls/1/delete", "ConfirmDelete"},
		{http.MethodPost, "/urls/1/delete", "Delete"},
		{http.MethodGet, "/s/abc123", "RedirectURL"},
		{http.MethodPost, "/api/v1/urls", "APIShorten"},
		{http.MethodGet, "/api/v1/urls", "APIList"},
		{http.MethodPut, "/api/v1/urls/1", "APIUpdate"},
		{http.MethodDelete, "/api/v1/urls/1", "APIDelete"},
		{http.MethodGet, "/api/v1/notices", "APINotices"},
		{http.MethodGet, "/api/v1/status", "APIStatus"},
		{http.MethodGet, "/health", "HealthCheck"},
	}

	for _, tt := range tests {
		t.Run(tt.handler, func(t *testing.T) {
			router, mockHandler, cfg := setupTest()
			mockHandler.On(tt.handler, mock.Anything).Run(func(args mock.Arguments) {
				c := args.Get(0).(*gin.Context)
				c.Status(http.StatusAccepted)
			}).Return()

			RegisterRoutes(router, mockHandler, cfg, nil)

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusAccepted, resp.Code)
			mockHandler.AssertCalled(t, tt.handler, mock.Anything)
		})
	}
}

func TestRegisterRoutesRateLimit(t *testing.T) {
	t.Run("Enabled", func(t *testing.T) {
		router, mockHandler, cfg := setupTest()

		RegisterRoutes(router, mockHandler, cfg, nil)

		mockHandler.AssertNumberOfCalls(t, "RateLimitMiddleware", 1)
	})

	t.Run("Disabled", func(t *testing.T) {
		router, mockHandler, cfg := setupTest()
		cfg.DisableRateLimit = true

		RegisterRoutes(router, mockHandler, cfg, nil)

		mockHandler.AssertNotCalled(t, "RateLimitMiddleware")
	})
}

func TestRegisterRoutesMetrics(t *testing.T) {
	router, mockHandler, cfg := setupTest()
	mockHandler.On("HealthCheck", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*gin.Context).String(http.StatusOK, "OK")
	}).Return()

	RegisterRoutes(router, mockHandler, cfg, metrics.New())
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), `urladmin_http_requests_total{route="/health",status="200"} 1`))
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &URLHandler{logger: zap.NewNop()}
	r := gin.New()
	r.GET("/health", handler.HealthCheck)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "OK", resp.Body.String())
}
