package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cfbranks/rankview/internal/adapters/cache"
	"github.com/cfbranks/rankview/internal/adapters/http/api"
	"github.com/cfbranks/rankview/internal/adapters/http/site"
	"github.com/cfbranks/rankview/internal/adapters/http/swagger"
	"github.com/cfbranks/rankview/internal/adapters/rankings"
	"github.com/cfbranks/rankview/internal/app"
	"github.com/cfbranks/rankview/internal/config"
	"github.com/cfbranks/rankview/pkg/logger"
	"github.com/cfbranks/rankview/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to keep the exposition small.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Get().Error(context.Background(), "logger sync failed", logger.Error(err))
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init()

	// Snapshot cache for default-weight rankings queries. Zero TTL disables it.
	var snapshots *cache.Store
	if cfg.CacheTTLMS > 0 {
		snapshots = cache.New(cache.WithTTL(time.Duration(cfg.CacheTTLMS) * time.Millisecond))
	}

	client := rankings.New(
		rankings.WithBaseURL(cfg.BackendBaseURL),
		rankings.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.RequestTimeoutMS) * time.Millisecond}),
		rankings.WithHealthTimeout(time.Duration(cfg.HealthTimeoutMS)*time.Millisecond),
		rankings.WithMaxWeek(cfg.MaxWeek),
		rankings.WithCache(snapshots),
		rankings.WithLogger(loggerInstance.Named("rankings")),
	)

	store := app.New(
		app.WithClient(client),
		app.WithLogger(loggerInstance.Named("store")),
		app.WithYearsShown(cfg.YearsShown),
		app.WithMaxWeek(cfg.MaxWeek),
	)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the store dependency.
	apiServer := api.NewServer(store)
	apiServer.Register(ctx, mux)

	// Register the embedded dashboard at /
	site.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("backend", cfg.BackendBaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}
