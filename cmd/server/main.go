package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/flexnit/flexnit/internal/auth"
	"github.com/flexnit/flexnit/internal/catalog"
	"github.com/flexnit/flexnit/internal/config"
	"github.com/flexnit/flexnit/internal/logging"
	"github.com/flexnit/flexnit/internal/store"
	"github.com/flexnit/flexnit/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"db_max_conns", cfg.Database.MaxConns,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
	)

	ctx := context.Background()

	pool, err := store.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := store.Migrate(ctx, pool); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready")

	limiter := catalog.NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime)
	catalogSvc := catalog.NewService(store.NewShows(pool), store.NewCategories(pool), limiter)
	authSvc := auth.NewService(store.NewUsers(pool))
	sessions := auth.NewSessions(cfg.Auth)

	server := web.NewServer(cfg, catalogSvc, authSvc, sessions)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting requests, then let in-flight imports finish.
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	if err := limiter.WaitForDrain(shutdownCtx); err != nil {
		slog.Warn("imports still running at shutdown", "active", limiter.ActiveCount())
	}

	slog.Info("shutdown complete")
}
