// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/api"
	"github.com/tomtom215/popquiz/internal/config"
	"github.com/tomtom215/popquiz/internal/logging"
	"github.com/tomtom215/popquiz/internal/metrics"
	"github.com/tomtom215/popquiz/internal/middleware"
	"github.com/tomtom215/popquiz/internal/supervisor"
	"github.com/tomtom215/popquiz/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// recentRequests bounds the performance monitor's ring of request samples.
const recentRequests = 1000

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("backend", cfg.Store.Backend).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting PopQuiz")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opened, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := opened.store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	if err := seedStore(ctx, opened.store, cfg.Store.SeedPath); err != nil {
		return err
	}

	engine, err := analytics.NewEngine(
		cfg.ToAnalyticsConfig(),
		logging.WithComponent("analytics"),
		analytics.WithObserver(metrics.AnalyticsObserver{}),
	)
	if err != nil {
		return err
	}

	handler := api.NewHandler(opened.store, engine, api.Options{
		Backend:     cfg.Store.Backend,
		Version:     version,
		FullNames:   cfg.Security.FullNames,
		SnapshotTTL: cfg.Store.SnapshotTTL,
		Monitor:     middleware.NewPerformanceMonitor(recentRequests, cfg.Server.SlowRequestThreshold),
	})
	defer handler.Close()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	if opened.kv != nil && cfg.Badger.GCInterval > 0 {
		tree.AddDataService(services.NewGCService(opened.kv, cfg.Badger.GCInterval, metrics.RecordBadgerGC))
		logging.Info().Dur("interval", cfg.Badger.GCInterval).Msg("Badger GC service added")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}
	return nil
}
