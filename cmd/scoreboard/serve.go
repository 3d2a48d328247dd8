package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/relab-mx/scoreboard/internal/adapters/http/api"
	"github.com/relab-mx/scoreboard/internal/adapters/repository"
	app "github.com/relab-mx/scoreboard/internal/app"
	"github.com/relab-mx/scoreboard/internal/config"
	"github.com/relab-mx/scoreboard/internal/sampledata"
	"github.com/relab-mx/scoreboard/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the score engine HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	source := repository.NewMemorySource()
	if cfg.Dataset != "" {
		ds, err := sampledata.Load(cfg.Dataset)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		ds.Apply(source)
		log.Info(ctx, "dataset loaded",
			logger.String("path", cfg.Dataset),
			logger.Int("researchers", len(ds.Researchers)),
		)
	}

	svc := app.New(
		app.WithLogger(log.Named("engine")),
		app.WithSource(source),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	if cfg.RecomputeOnStart {
		result, err := svc.RecomputeAll(ctx)
		if err != nil {
			return fmt.Errorf("initial recompute: %w", err)
		}
		log.Info(ctx, "initial recompute finished",
			logger.Int("count", result.Count),
			logger.Int("failures", len(result.Failures)),
		)
	}

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info(ctx, "server stopped")
	return nil
}
