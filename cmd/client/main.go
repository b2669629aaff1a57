package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/docsync/internal/client/api"
	"github.com/iudanet/docsync/internal/client/cli"
	"github.com/iudanet/docsync/internal/client/iocli"
	"github.com/iudanet/docsync/internal/client/poller"
	"github.com/iudanet/docsync/internal/client/storage/boltdb"
	"github.com/iudanet/docsync/internal/config"
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

	cfg, err := config.ParseClient(os.Args[1:], os.Getenv, os.Stderr)
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
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Client) error {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	// stdout занят интерактивным вводом, логи идут в stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	identity, err := cli.LoadIdentity(ctx, boltStorage)
	if err != nil {
		return err
	}

	opts := []api.Option{api.WithTimeout(cfg.RequestTimeout)}
	if cfg.Token != "" {
		opts = append(opts, api.WithToken(cfg.Token))
	}
	apiClient := api.NewClient(cfg.ServerURL, opts...)

	registry := poller.New(apiClient, poller.Config{
		BaseInterval:   cfg.BaseInterval,
		FastInterval:   cfg.FastInterval,
		MaxInterval:    cfg.MaxInterval,
		RequestTimeout: cfg.RequestTimeout,
	}, logger)
	defer registry.Close()

	out := iocli.NewStdio()
	c := cli.New(out, registry, boltStorage, identity, logger)
	if cfg.GraphDir != "" {
		c.SetGraphDir(cfg.GraphDir)
	}

	if out.Interactive() {
		out.Printf("DocSync client %s, server %s, client id %d\n", Version, cfg.ServerURL, identity.ClientID)
		cli.PrintUsage(out)
	}

	// чтение stdin не прерывается контекстом; закрытие stdin завершает Run
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "DocSync Client\n")
	fmt.Fprintf(w, "Version:    %s\n", Version)
	fmt.Fprintf(w, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(w, "Git Commit: %s\n", GitCommit)
}
