// Package server wires the console together and runs its HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-url-admin/config"
	"go-url-admin/handlers"
	"go-url-admin/metrics"
	"go-url-admin/notices"
	"go-url-admin/services"
	"go-url-admin/storage"
	"go-url-admin/views"
)

const shutdownTimeout = 10 * time.Second

// Backend is the storage selected by the configuration. Resolver is set only
// for the sandbox backend.
type Backend struct {
	Store    storage.Storage
	Resolver handlers.Resolver
}

// NewBackend creates the storage named by cfg.Backend.
func NewBackend(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (Backend, error) {
	switch cfg.Backend {
	case config.BackendRemote, "":
		logger.Debug("Using remote backend", zap.String("api_base_url", cfg.APIBaseURL))
		return Backend{Store: storage.NewRemoteStorage(cfg.APIBaseURL, cfg.RequestTimeout, m, logger)}, nil
	case config.BackendMemory:
		store := storage.NewInMemoryStorage(cfg.SandboxCapacity, logger)
		if cfg.SandboxSeed > 0 {
			if err := store.Seed(ctx, cfg.SandboxSeed, uint64(time.Now().UnixNano())); err != nil {
				return Backend{}, fmt.Errorf("seeding sandbox: %w", err)
			}
		}
		logger.Debug("Using sandbox backend", zap.Int("capacity", cfg.SandboxCapacity))
		return Backend{Store: store, Resolver: store}, nil
	default:
		return Backend{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Run serves the console until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, logger *zap.Logger, cfg *config.Config) error {
	m := metrics.New()

	backend, err := NewBackend(ctx, cfg, m, logger)
	if err != nil {
		return err
	}

	urlHandler, err := setupURLHandler(ctx, cfg, backend, m, logger)
	if err != nil {
		return err
	}
	defer urlHandler.Close()

	router, err := setupRouter(urlHandler, cfg, m, logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	srv := setupServer(ctx, cfg, router)

	g.Go(func() error {
		return startServer(srv, logger)
	})
	g.Go(func() error {
		<-ctx.Done()
		return shutdown(srv, logger)
	})

	return g.Wait()
}

func setupURLHandler(ctx context.Context, cfg *config.Config, backend Backend, m *metrics.Metrics, logger *zap.Logger) (*handlers.URLHandler, error) {
	board := notices.NewBoard(cfg.NoticeTTL)
	urlService := services.NewURLService(backend.Store, board, cfg.ListPageSize, logger)

	opts := []handlers.Option{handlers.WithMetrics(m)}
	if backend.Resolver != nil {
		opts = append(opts, handlers.WithResolver(backend.Resolver))
	}

	handler, err := handlers.NewURLHandler(ctx, urlService, board, cfg, logger, opts...)
	if err != nil {
		logger.Error("Failed to create URL handler", zap.Error(err))
		return nil, err
	}

	logger.Debug("URL handler created successfully")
	return handler, nil
}

func setupRouter(urlHandler handlers.URLHandlerInterface, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*gin.Engine, error) {
	tmpl, err := views.New(views.Options{NoticeTTL: cfg.NoticeTTL})
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(logger))
	router.SetHTMLTemplate(tmpl)
	handlers.RegisterRoutes(router, urlHandler, cfg, m)
	return router, nil
}

func setupServer(ctx context.Context, cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
}

func startServer(srv *http.Server, logger *zap.Logger) error {
	logger.Info("Starting server", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", zap.Error(err))
		return err
	}
	logger.Debug("Server stopped")
	return nil
}

func shutdown(srv *http.Server, logger *zap.Logger) error {
	logger.Info("Initiating server shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}
