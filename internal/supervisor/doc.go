// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

/*
Package supervisor provides process supervision for Phonographus using suture v4.

This package implements a hierarchical supervisor tree that manages the
lifecycle of the long-running services in the application. It provides
Erlang/OTP-style supervision with automatic restart, failure isolation,
and graceful shutdown.

# Overview

The supervisor tree organizes services into two layers for failure isolation:

	RootSupervisor ("phonographus")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that:
  - A crash in the cache janitor does not affect request serving
  - An HTTP listener failure does not stop cache maintenance
  - Each layer restarts independently under its own failure budget

# Usage Example

Basic setup in main.go:

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddMaintenanceService(services.NewCacheJanitorService(resultCache, cfg.Cache.SweepInterval))

	// Blocks until the context is canceled.
	if err := tree.Serve(ctx); err != nil {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# Configuration

The TreeConfig controls restart behavior:

	config := supervisor.TreeConfig{
	    FailureThreshold: 5.0,              // Failures before backoff
	    FailureDecay:     30.0,             // Seconds for failures to decay
	    FailureBackoff:   15 * time.Second, // Backoff duration
	    ShutdownTimeout:  10 * time.Second, // Per-service shutdown timeout
	}

Default values match suture's built-in defaults: threshold 5, decay 30s,
backoff 15s, shutdown timeout 10s.

# Service Interface

All services must implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return behavior:
  - Return nil: service stopped cleanly and will not be restarted
  - Return error: service crashed and will be restarted with backoff
  - Context canceled: shutdown requested, return promptly

# What Is NOT Supervised

The search engine itself is not a supervised service. It is a
request-scoped aggregator with no background loop of its own: every run
starts and ends inside an HTTP request, and its ants worker pool is
owned by the engine and released on Close. Supervision applies only to
components that must keep running between requests.

# Debugging Shutdown Issues

If services do not stop within the timeout:

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logging.Warn().Str("service", fmt.Sprint(svc.Service)).Msg("Service did not stop")
	}

Common causes are goroutines ignoring context cancellation and blocked
network I/O without deadlines.

# See Also

  - internal/supervisor/services: service wrappers
  - github.com/thejerf/suture/v4: underlying library
*/
package supervisor
