package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	httpapi "github.com/wiratR/batch-transaction-viewer/internal/http"
	inspecthandler "github.com/wiratR/batch-transaction-viewer/internal/inspect/handler"
	inspectmetrics "github.com/wiratR/batch-transaction-viewer/internal/inspect/metrics"
	inspectservice "github.com/wiratR/batch-transaction-viewer/internal/inspect/service"
	inspectstore "github.com/wiratR/batch-transaction-viewer/internal/inspect/store"
	"github.com/wiratR/batch-transaction-viewer/internal/platform/config"
	"github.com/wiratR/batch-transaction-viewer/internal/platform/httpserver"
	"github.com/wiratR/batch-transaction-viewer/internal/platform/logger"
	"github.com/wiratR/batch-transaction-viewer/internal/platform/metrics"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Pipeline logic lives in the internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel)

	sessions := inspectstore.NewInMemorySessionStore(cfg.Sessions.MaxSessions, cfg.Sessions.TTL)
	service := inspectservice.New(sessions,
		inspectservice.WithLogger(log),
		inspectservice.WithMetrics(inspectmetrics.New()),
		inspectservice.WithLimits(cfg.Limits.MaxDocumentBytes, cfg.Limits.MaxPayloadBytes),
	)
	handler := inspecthandler.New(service, log, inspecthandler.Limits{
		MaxDocumentBytes: cfg.Limits.MaxDocumentBytes,
		MaxPayloadBytes:  cfg.Limits.MaxPayloadBytes,
	})
	router := httpapi.NewRouter(httpapi.Options{
		Logger:         log,
		Metrics:        metrics.New(),
		RequestTimeout: cfg.Server.RequestTimeout,
	}, handler)

	srv := httpserver.New(cfg.Server.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting batch transaction viewer",
			"addr", cfg.Server.Addr,
			"env", cfg.Server.Env,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("server stopped")
		return nil
	})
	return g.Wait()
}
