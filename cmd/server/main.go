// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/phonographus/internal/api"
	"github.com/tomtom215/phonographus/internal/cache"
	"github.com/tomtom215/phonographus/internal/catalog"
	"github.com/tomtom215/phonographus/internal/config"
	"github.com/tomtom215/phonographus/internal/logging"
	"github.com/tomtom215/phonographus/internal/search"
	"github.com/tomtom215/phonographus/internal/supervisor"
	"github.com/tomtom215/phonographus/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Phonographus with supervisor tree")

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("catalog_url", cfg.Catalog.BaseURL).
		Dur("cache_ttl", cfg.Cache.TTL).
		Int("cache_capacity", cfg.Cache.Capacity).
		Msg("Configuration loaded")

	// Upstream hearthis.at client behind a circuit breaker. The breaker
	// prevents a dead upstream from tying up the whole fan-out in timeouts.
	client := catalog.NewBreakerClient(catalog.NewClient(&cfg.Catalog))

	// In-memory LRU result cache with TTL expiry
	resultCache := cache.NewResultCache(cfg.Cache.Capacity, cfg.Cache.TTL)

	// Search engine owns the worker pool for the fan-out
	engine, err := search.NewEngine(&cfg.Search, client, resultCache)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create search engine")
	}
	defer engine.Close()

	logging.Info().
		Int("pages", cfg.Search.Pages).
		Int("artist_fanout", cfg.Search.ArtistFanout).
		Int("workers", cfg.Search.Workers).
		Int("roster", len(engine.Roster())).
		Msg("Search engine ready")

	// HTTP stack
	handler := api.NewHandler(engine, cfg)
	router := api.NewRouter(handler, api.NewChiMiddleware(&cfg.Security))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Inbound rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Maintenance layer services
	tree.AddMaintenanceService(services.NewCacheJanitorService(resultCache, cfg.Cache.SweepInterval))
	logging.Info().Dur("interval", cfg.Cache.SweepInterval).Msg("Cache janitor service added")

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
