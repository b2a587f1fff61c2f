// Package handlers provides the HTTP front-ends of the URL admin console.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-url-admin/config"
	"go-url-admin/metrics"
	"go-url-admin/notices"
	"go-url-admin/services"
	"go-url-admin/storage"
	"go-url-admin/types"
)

const (
	invalidRequestBody = "Invalid request body"
	invalidID          = "Invalid URL id"
	errorTimeout       = "Request timed out"
	errorSuperseded    = "Request superseded by a newer one"
	errorNotConfirmed  = "Deletion must be confirmed"
	storageCapacity    = "Storage capacity reached"
	urlNotFound        = "URL not found"
	internalError      = "Internal server error"
)

// URLHandlerInterface defines the methods that a URL handler should implement.
type URLHandlerInterface interface {
	Index(c *gin.Context)
	Shorten(c *gin.Context)
	OpenEdit(c *gin.Context)
	Update(c *gin.Context)
	CloseEdit(c *gin.Context)
	ConfirmDelete(c *gin.Context)
	Delete(c *gin.Context)

	APIShorten(c *gin.Context)
	APIList(c *gin.Context)
	APIUpdate(c *gin.Context)
	APIDelete(c *gin.Context)
	APINotices(c *gin.Context)
	APIStatus(c *gin.Context)

	HealthCheck(c *gin.Context)
	RedirectURL(c *gin.Context)
	RateLimitMiddleware() gin.HandlerFunc
}

// Resolver looks up a short code and counts the access. Only the sandbox backend has one.
type Resolver interface {
	Resolve(ctx context.Context, shortURL string) (types.ShortenedURL, error)
}

// URLHandler struct holds the dependencies for handling console requests.
type URLHandler struct {
	service  services.URLService
	board    *notices.Board
	resolver Resolver
	metrics  *metrics.Metrics
	validate *validator.Validate
	config   *config.Config
	logger   *zap.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures optional URLHandler dependencies.
type Option func(*URLHandler)

// WithResolver enables the /s/:short_url redirect route.
func WithResolver(r Resolver) Option {
	return func(h *URLHandler) { h.resolver = r }
}

// WithMetrics attaches the collectors observed by the handlers.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *URLHandler) { h.metrics = m }
}

// NewURLHandler creates and returns a new URLHandler instance.
func NewURLHandler(ctx context.Context, service services.URLService, board *notices.Board, cfg *config.Config, logger *zap.Logger, opts ...Option) (*URLHandler, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if board == nil {
		return nil, errors.New("notice board cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if !cfg.DisableRateLimit && (cfg.RateLimit <= 0 || cfg.RatePeriod <= 0) {
		return nil, errors.New("invalid rate limit configuration")
	}

	handler := &URLHandler{
		service:  service,
		board:    board,
		validate: validator.New(),
		config:   cfg,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(handler)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return handler, nil
}

// Close stops the background work started by the handler.
func (h *URLHandler) Close() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// requestContext bounds a backend call by the configured timeout. A zero timeout
// leaves it bounded by the client connection only.
func (h *URLHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.config.RequestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
}

// statusFor maps an operation error to an HTTP status and a client message.
// failurePrefix is the notice prefix used for backend failures.
func (h *URLHandler) statusFor(err error, failurePrefix string) (int, string) {
	var statusErr *storage.StatusError
	var queryErr *storage.QueryError

	switch {
	case errors.Is(err, services.ErrEmptyURL):
		return http.StatusBadRequest, services.MsgEmptyURL
	case errors.Is(err, services.ErrInvalidURL):
		return http.StatusBadRequest, services.MsgInvalidURL
	case errors.Is(err, services.ErrNoEditSession):
		return http.StatusBadRequest, services.MsgNoEditSession
	case errors.Is(err, services.ErrNotConfirmed):
		return http.StatusBadRequest, errorNotConfirmed
	case errors.Is(err, services.ErrSuperseded):
		return http.StatusConflict, errorSuperseded
	case errors.Is(err, services.ErrURLNotFound):
		return http.StatusNotFound, urlNotFound
	case errors.Is(err, services.ErrStorageCapacityReached):
		return http.StatusInsufficientStorage, storageCapacity
	case errors.Is(err, storage.ErrShortURLMismatch):
		return http.StatusConflict, failurePrefix + err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errorTimeout
	case errors.As(err, &statusErr), errors.As(err, &queryErr):
		return http.StatusBadGateway, failurePrefix + err.Error()
	case storage.IsTransportError(err):
		h.logger.Error("Backend unreachable", zap.Error(err))
		return http.StatusBadGateway, failurePrefix + err.Error()
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		return http.StatusInternalServerError, internalError
	}
}

// handleError sends the JSON error response for err.
func (h *URLHandler) handleError(c *gin.Context, err error, failurePrefix string) {
	status, message := h.statusFor(err, failurePrefix)
	c.JSON(status, gin.H{"error": message})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type updateBody struct {
	OriginalURL string `json:"originalUrl"`
	ShortURL    string `json:"shortUrl"`
}

type outcomeResponse struct {
	Table   *types.Table   `json:"table,omitempty"`
	Notices []types.Notice `json:"notices"`
}

// APIShorten handles POST /api/v1/urls.
func (h *URLHandler) APIShorten(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var input types.ShortenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	out, err := h.service.ShortenURL(ctx, input.OriginalURL)
	if err != nil {
		h.handleError(c, err, services.MsgShortenFailed)
		return
	}
	c.JSON(http.StatusCreated, outcomeResponse{Table: out.Table, Notices: h.board.Active()})
}

// APIList handles GET /api/v1/urls.
func (h *URLHandler) APIList(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	table, err := h.service.LoadURLs(ctx)
	if err != nil {
		h.handleError(c, err, services.MsgLoadFailed)
		return
	}
	c.JSON(http.StatusOK, table)
}

// APIUpdate handles PUT /api/v1/urls/:id.
func (h *URLHandler) APIUpdate(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidID})
		return
	}
	var input updateBody
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	session := &types.EditSession{}
	session.Open(id, input.OriginalURL, input.ShortURL)
	out, err := h.service.UpdateURL(ctx, session, input.OriginalURL)
	if err != nil {
		h.handleError(c, err, services.MsgUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, outcomeResponse{Table: out.Table, Notices: h.board.Active()})
}

// APIDelete handles DELETE /api/v1/urls/:id. The call must carry confirm=true.
func (h *URLHandler) APIDelete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidID})
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	out, err := h.service.DeleteURL(ctx, id, services.Confirmed(confirmed))
	if err != nil {
		h.handleError(c, err, services.MsgDeleteFailed)
		return
	}
	c.JSON(http.StatusOK, outcomeResponse{Table: out.Table, Notices: h.board.Active()})
}

// APINotices handles GET /api/v1/notices.
func (h *URLHandler) APINotices(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Active())
}

// APIStatus handles GET /api/v1/status.
func (h *URLHandler) APIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"busy": h.service.Busy()})
}
