package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-url-admin/storage"
)

const (
	errRetrievingURL      = "Error retrieving URL"
	errInvalidRedirectURL = "Invalid redirect URL"
)

// RedirectURL resolves a sandbox short code and redirects to its original URL.
// Every hit is counted, so the redirect is temporary.
func (h *URLHandler) RedirectURL(c *gin.Context) {
	shortURL := c.Param("short_url")
	if h.resolver == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": urlNotFound})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	record, err := h.resolver.Resolve(ctx, shortURL)
	if err != nil {
		h.handleRedirectError(c, err, shortURL)
		return
	}

	if err := h.validate.Var(record.OriginalURL, "url"); err != nil {
		h.logger.Warn("Invalid original URL",
			zap.String("short_url", shortURL),
			zap.String("original_url", record.OriginalURL))
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRedirectURL})
		return
	}

	h.logger.Info("Redirecting",
		zap.String("short_url", shortURL),
		zap.String("original_url", record.OriginalURL),
		zap.Int64("access_count", record.AccessCount),
		zap.String("ip", c.ClientIP()))
	c.Redirect(http.StatusFound, record.OriginalURL)
}

func (h *URLHandler) handleRedirectError(c *gin.Context, err error, shortURL string) {
	switch {
	case errors.Is(err, storage.ErrURLNotFound):
		h.logger.Info("Short URL not found", zap.String("short_url", shortURL))
		c.JSON(http.StatusNotFound, gin.H{"error": urlNotFound})
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Request timed out", zap.String("short_url", shortURL))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": errorTimeout})
	default:
		h.logger.Error("Error retrieving URL", zap.String("short_url", shortURL), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errRetrievingURL})
	}
}
