package handlers

import (
	"github.com/gin-gonic/gin"

	"go-url-admin/config"
	"go-url-admin/metrics"
)

// RegisterRoutes sets up the console, API and operational routes, and applies
// CORS, metrics and rate limiting middleware.
func RegisterRoutes(r *gin.Engine, handler URLHandlerInterface, config *config.Config, m *metrics.Metrics) {
	r.Use(CORSMiddleware())
	if m != nil {
		r.Use(MetricsMiddleware(m))
	}

	limited := []gin.HandlerFunc{}
	if !config.DisableRateLimit {
		limited = append(limited, handler.RateLimitMiddleware())
	}

	// HTML console
	console := r.Group("", limited...)
	{
		console.GET("/", handler.Index)
		console.POST("/urls", handler.Shorten)
		console.GET("/urls/:id/edit", handler.OpenEdit)
		console.POST("/urls/:id/update", handler.Update)
		console.GET("/edit/close", handler.CloseEdit)
		console.GET("/urls/:id/delete", handler.ConfirmDelete)
		console.POST("/urls/:id/delete", handler.Delete)

		// Sandbox redirects
		console.GET("/s/:short_url", handler.RedirectURL)
	}

	// JSON API
	v1 := r.Group("/api/v1", limited...)
	{
		urls := v1.Group("/urls")
		{
			urls.POST("", handler.APIShorten)
			urls.GET("", handler.APIList)
			urls.PUT("/:id", handler.APIUpdate)
			urls.DELETE("/:id", handler.APIDelete)
		}
		v1.GET("/notices", handler.APINotices)
		v1.GET("/status", handler.APIStatus)
	}

	r.GET("/health", handler.HealthCheck)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
}
