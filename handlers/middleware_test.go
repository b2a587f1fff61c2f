package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-url-admin/config"
	"go-url-admin/metrics"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("CORS headers are set", func(t *testing.T) {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST, GET, OPTIONS, PUT, DELETE", resp.Header().Get("Access-Control-Allow-Methods"))
		assert.Contains(t, resp.Header().Get("Access-Control-Allow-Headers"), "X-Request-ID")
		assert.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"))
	})

	t.Run("OPTIONS request", func(t *testing.T) {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodOptions, "/", nil))

		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusTeapot, "pong")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	entries := logs.FilterMessage("Request served").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/ping", fields["uri"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(4), fields["size"])
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()

	router := gin.New()
	router.Use(MetricsMiddleware(m))
	router.GET("/urls/:id/edit", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/urls/1/edit", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/urls/2/edit", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	count, err := testutil.GatherAndCount(m.Registry(), "urladmin_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "Requests should be grouped by route template")
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		RateLimit:  10,
		RatePeriod: time.Second,
	}
	handler := &URLHandler{
		config: cfg,
		logger: zap.NewNop(),
		stop:   make(chan struct{}),
	}
	defer handler.Close()

	router := gin.New()
	router.Use(handler.RateLimitMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	t.Run("Within rate limit", func(t *testing.T) {
		for i := 0; i < cfg.RateLimit; i++ {
			assert.Equal(t, http.StatusOK, send("192.0.2.1:1234").Code)
		}
	})

	t.Run("Exceeds rate limit", func(t *testing.T) {
		resp := send("192.0.2.1:1234")

		assert.Equal(t, http.StatusTooManyRequests, resp.Code)
		assert.Contains(t, resp.Body.String(), "Rate limit exceeded")
	})

	t.Run("Other clients are not affected", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send("192.0.2.3:1234").Code)
	})

	t.Run("Rate limit resets after period", func(t *testing.T) {
		ip := "192.0.2.2:1234"
		for i := 0; i < cfg.RateLimit; i++ {
			assert.Equal(t, http.StatusOK, send(ip).Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, send(ip).Code)

		time.Sleep(cfg.RatePeriod)

		assert.Equal(t, http.StatusOK, send(ip).Code)
	})
}
