package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/barplanner/internal/api"
	"github.com/eugenenazirov/barplanner/internal/config"
	"github.com/eugenenazirov/barplanner/internal/engine"
	"github.com/eugenenazirov/barplanner/internal/metrics"
	"github.com/eugenenazirov/barplanner/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage   storage.CatalogStore
	engine    engine.Engine
	collector *metrics.Collector
	handler   *api.Handler
	router    http.Handler
	logger    *zap.Logger
	server    *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStore()
	if len(cfg.InitialCatalogs) > 0 {
		if err := store.ReplaceAll(cfg.InitialCatalogs); err != nil {
			return nil, fmt.Errorf("failed to apply initial catalogs: %w", err)
		}
	}

	eng := engine.New()
	collector := metrics.New()
	handler := api.NewHandler(eng, store, api.WithMetrics(collector))
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithCollector(collector),
	)

	server := NewServer(cfg, router)

	return &App{
		storage:   store,
		engine:    eng,
		collector: collector,
		handler:   handler,
		router:    router,
		logger:    logger,
		server:    server,
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
