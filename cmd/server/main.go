// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nathanprobert/smartscore-api/internal/api"
	"github.com/nathanprobert/smartscore-api/internal/auth"
	"github.com/nathanprobert/smartscore-api/internal/config"
	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/events"
	"github.com/nathanprobert/smartscore-api/internal/logging"
	"github.com/nathanprobert/smartscore-api/internal/metrics"
	"github.com/nathanprobert/smartscore-api/internal/middleware"
	"github.com/nathanprobert/smartscore-api/internal/supervisor"
	"github.com/nathanprobert/smartscore-api/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("config", cfg.String()).
		Msg("Starting SmartScore API")
	metrics.SetAppInfo(version, cfg.Server.Environment)

	authn, err := auth.New(cfg.Security.APIAuthToken)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	connector, err := openConnector(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Database.Backend).Msg("Failed to open player store")
	}

	bus, publisher, err := initEvents(cfg.Events)
	if err != nil {
		_ = connector.Close(context.Background())
		logging.Fatal().Err(err).Msg("Failed to initialize player change events")
	}

	opts := []database.Option{}
	if publisher != nil {
		opts = append(opts, database.WithPublisher(publisher))
	}
	store := database.NewStore(connector, opts...)

	if err := store.Ping(ctx); err != nil {
		shutdown(store, bus, publisher)
		logging.Fatal().Err(err).Str("backend", store.Backend()).Msg("Player store is unreachable")
	}
	logging.Info().
		Str("backend", store.Backend()).
		Str("collection", cfg.Database.CollectionName(cfg.Server)).
		Msg("Player store ready")

	router := api.NewRouter(store, authn, middleware.NewCORSPolicy(cfg.Security.CORSOrigins))
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		shutdown(store, bus, publisher)
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService("http-server", httpServer, cfg.Server.ShutdownTimeout))
	if cfg.Metrics.Enabled {
		tree.AddAPIService(services.NewHTTPServerService("metrics-server", newMetricsServer(cfg.Metrics), cfg.Server.ShutdownTimeout))
		tree.AddAPIService(services.NewUptimeService(startedAt, 15*time.Second))
		logging.Info().Str("addr", cfg.Metrics.Addr).Str("path", cfg.Metrics.Path).Msg("Prometheus metrics enabled")
	}
	if bus != nil {
		tree.AddEventService(services.NewEventAuditService(bus.Subscriber, cfg.Events.TopicPrefix))
	}

	logging.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	cancel()

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	shutdown(store, bus, publisher)
	logging.Info().Msg("SmartScore API stopped")
}

// newMetricsServer serves the Prometheus registry on its own listener.
func newMetricsServer(cfg config.MetricsConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// shutdown closes the publisher, the bus and the store in that order.
func shutdown(store *database.Store, bus *events.Bus, publisher *events.Publisher) {
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close event publisher")
		}
	}
	if bus != nil {
		if err := bus.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close event bus")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		logging.Error().Err(err).Msg("Failed to close player store")
	}
}
