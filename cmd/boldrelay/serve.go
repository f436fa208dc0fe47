package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/boldrelay/internal/env"
	"github.com/garrettladley/boldrelay/internal/metrics"
	xredis "github.com/garrettladley/boldrelay/internal/redis"
	"github.com/garrettladley/boldrelay/internal/server"
	"github.com/garrettladley/boldrelay/internal/storage"
	"github.com/garrettladley/boldrelay/internal/xslog"
)

const (
	keyAddr = "addr"
	keyEnv  = "env"

	shutdownTimeout = 30 * time.Second
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if err := serve(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		return err
	}
	return nil
}

func serve(ctx context.Context, logger *slog.Logger) error {
	cfg, err := server.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.Bold.SecretKey == "" {
		logger.WarnContext(ctx, "BOLD_SECRET_KEY is not set; payment signing and webhooks will be rejected")
	}
	if cfg.Bold.APIKey == "" {
		logger.WarnContext(ctx, "BOLD_API_KEY is not set; notification lookups will be rejected")
	}

	backend, err := initBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close backend", xslog.Error(err))
		}
	}()

	deps := server.Deps{
		Logger:  logger,
		Backend: backend,
	}
	if cfg.Metrics {
		deps.Metrics = metrics.New()
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewHandler(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			xslog.Env(string(cfg.Env)),
			xslog.SigningMode(string(cfg.Bold.WebhookSigningMode)),
			slog.String(keyAddr, httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initBackend(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.Backend, error) {
	switch cfg.Env {
	case env.Production:
		client, err := xredis.New(ctx, xredis.Config{URL: cfg.Redis.URL})
		if err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "using Redis backend")
		backend, err := storage.NewRedisBackend(storage.RedisConfig{Client: client}, int(cfg.RateLimit.Limit))
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return backend, nil
	default:
		logger.InfoContext(ctx, "using in-memory backend (local development)", slog.String(keyEnv, string(cfg.Env)))
		return storage.NewMemoryBackend(cfg.RateLimit.Limit, cfg.RateLimit.Burst), nil
	}
}
