// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

// Package config provides centralized configuration management for all
// Phonographus components.
//
// Configuration is loaded with Koanf v2 from three layered sources, in
// increasing priority:
//
//  1. Defaults: built-in values for every setting
//  2. Config file: optional YAML file (config.yaml)
//  3. Environment variables: override any setting
//
// Sections:
//
//   - Server: HTTP listener (port, host, timeouts)
//   - Catalog: upstream hearthis.at API (base URL, fetch timeout,
//     page sizes, outbound rate limit, User-Agent pool)
//   - Search: aggregation behavior (fan-out breadth, worker ceiling,
//     score floor, result cap, artist roster)
//   - Cache: result cache TTL and capacity
//   - Security: inbound rate limiting and CORS
//   - Logging: level, format, caller reporting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	engine := search.NewEngine(&cfg.Search, client, cache)
//
// Config is immutable after Load and safe for concurrent reads.
package config
