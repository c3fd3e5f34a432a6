// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

/*
Package main is the entry point for the Phonographus server application.

Phonographus is a self-hosted search aggregator for hearthis.at. A single
query fans out to the public hearthis.at API - broad search pages plus the
feeds of known uploader accounts that broad search undercounts - then
scores, deduplicates, and ranks everything locally before answering.

# Application Architecture

The server implements a layered architecture with Suture v4 process
supervision:

	RootSupervisor ("phonographus")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Cache Janitor (expired result sweeps)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (Chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Catalog client: hearthis.at API client behind a circuit breaker
 4. Result cache: in-memory LRU with TTL expiry
 5. Search engine: fan-out aggregation over an ants worker pool
 6. Supervisor tree: Suture v4 process supervision
 7. HTTP server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest
priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=3873               # HTTP listen port
	HTTP_HOST=0.0.0.0            # Bind address
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Upstream fan-out
	SEARCH_PAGES=3               # Broad search pages per run
	SEARCH_ARTIST_FANOUT=20      # Artist feeds queried per run
	SEARCH_WORKERS=30            # Worker pool ceiling
	CATALOG_FETCH_TIMEOUT=6s     # Per upstream call

	# Result cache
	CACHE_TTL=30m                # Entry lifetime
	CACHE_CAPACITY=3000          # Max entries before LRU eviction

	# Inbound protection
	RATE_LIMIT_REQUESTS=100      # Requests per window per client IP
	RATE_LIMIT_WINDOW=1m
	CORS_ORIGINS=*

See internal/config for the complete reference.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (10s timeout)
 3. Stops the cache janitor
 4. Releases the search engine's worker pool
 5. Reports any services that failed to stop

# Usage Examples

Development:

	export LOG_FORMAT=console LOG_LEVEL=debug
	go run ./cmd/server

Production:

	export ENVIRONMENT=production
	export CORS_ORIGINS=https://yourdomain.com
	./phonographus

Docker:

	docker run -d \
	  -e RATE_LIMIT_REQUESTS=100 \
	  -p 3873:3873 \
	  ghcr.io/tomtom215/phonographus

# Port 3873

The default port 3873 spells "FUSE" on a phone keypad - the engine fuses
broad search results with per-artist feeds - and avoids the usual
dev-server collisions on 3000 and 8080.

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/search: Fan-out aggregation engine
  - internal/catalog: hearthis.at API client
*/
package main
