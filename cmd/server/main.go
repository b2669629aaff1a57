package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/docsync/internal/config"
	"github.com/iudanet/docsync/internal/server/metrics"
	"github.com/iudanet/docsync/internal/server/middleware"
	"github.com/iudanet/docsync/internal/server/relay"
	"github.com/iudanet/docsync/internal/server/router"
	"github.com/iudanet/docsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.ParseServer(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Server) error {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	m := metrics.New()
	r := relay.New(store, relay.Config{
		AwarenessTTL:        cfg.AwarenessTTL,
		CompactionTimeout:   cfg.CompactionTimeout,
		HandshakeRetention:  relay.DefaultConfig().HandshakeRetention,
		CompactionThreshold: cfg.CompactionThreshold,
	}, m, logger)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, time.Minute, logger)
		defer limiter.Stop()
	}

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: router.New(router.Config{
			Relay:   r,
			Metrics: m,
			Logger:  logger,
			Limiter: limiter,
			Token:   cfg.Token,
			Version: Version,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	pruneCtx, cancelPrune := context.WithCancel(ctx)
	defer cancelPrune()
	go r.Run(pruneCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			"addr", cfg.Addr,
			"db", cfg.DBPath,
			"version", Version,
			"auth", cfg.Token != "",
			"rate_limit", cfg.RateLimit,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "DocSync Server\n")
	fmt.Fprintf(w, "Version:    %s\n", Version)
	fmt.Fprintf(w, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(w, "Git Commit: %s\n", GitCommit)
}
