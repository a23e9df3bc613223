// Package app wires configuration, observability, the sheet pipeline,
// services, and the HTTP router into a runnable server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"pragati/internal/config"
	apierrors "pragati/internal/errors"
	"pragati/internal/infrastructure"
	custommw "pragati/internal/middleware"
	"pragati/internal/services"
	"pragati/internal/sheet"
	transporthttp "pragati/internal/transport/http"
)

// App holds the assembled application
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
	server    *http.Server
	dashboard *services.DashboardService
}

// New assembles the application from configuration.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	metrics, err := infrastructure.CreateDashboardMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	fetcher := sheet.NewFetcher(cfg.Sheet, logger)
	loader := sheet.NewLoader(fetcher, cfg.Sheet.SourceURL(), logger)
	cache := sheet.NewCache(loader, logger)

	dashboard := services.NewDashboardService(cache, logger, providers.Tracer, metrics)
	health := services.NewHealthService(dashboard, logger)

	errorHandler := apierrors.NewErrorHandler(logger, os.Getenv("ENVIRONMENT") == "development")

	router := buildRouter(cfg, logger, providers, metrics, dashboard, health, errorHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		providers: providers,
		server:    server,
		dashboard: dashboard,
	}, nil
}

// buildRouter assembles the middleware chain and routes
func buildRouter(
	cfg *config.Config,
	logger *slog.Logger,
	providers *infrastructure.OTelProviders,
	metrics *infrastructure.DashboardMetrics,
	dashboard *services.DashboardService,
	health *services.HealthService,
	errorHandler *apierrors.ErrorHandler,
) chi.Router {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.Observability(providers.Tracer, metrics))
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Compress(5))
	r.Use(custommw.Timeout(cfg.Server.RequestTimeout, logger))

	if cfg.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: cfg.Security.AllowedOrigins,
			ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
			Logger:         logger,
		}))
	}

	if cfg.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	dashboardHandler := transporthttp.NewDashboardHandler(dashboard, logger, errorHandler)
	healthHandler := transporthttp.NewHealthHandler(health, logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/", dashboardHandler.Routes())
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/version", healthHandler.Version)
	})

	if providers.PrometheusHTTP != nil {
		r.Handle("/metrics", providers.PrometheusHTTP)
	}

	return r
}

// Run starts the server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening",
			slog.String("addr", a.server.Addr),
			slog.String("source", a.cfg.Sheet.SourceURL()))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	if err := a.providers.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("observability shutdown failed", slog.String("error", err.Error()))
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.logger.Warn("log file close failed", slog.String("error", err.Error()))
	}

	a.logger.Info("server stopped")
	return nil
}

// WarmUp performs the initial sheet load in the background so the
// first dashboard request is served from the memo. Failures are
// tolerated: the next request retries.
func (a *App) WarmUp(ctx context.Context) {
	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, a.cfg.Sheet.FetchTimeout+5*time.Second)
		defer cancel()
		if _, err := a.dashboard.Refresh(warmCtx); err != nil {
			a.logger.Warn("initial sheet load failed",
				slog.String("error", err.Error()))
		}
	}()
}
