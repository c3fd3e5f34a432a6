// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

// Package api provides the HTTP surface of the service: a Chi router,
// middleware wiring, and the handlers behind it.
//
// Routes:
//
//	GET /api/v1/search?q=<text>  aggregated track search
//	GET /health                  liveness probe
//	GET /ready                   readiness probe
//	GET /metrics                 Prometheus exposition
//
// All JSON endpoints respond with the models.APIResponse envelope. Search
// never surfaces upstream failures as HTTP errors; degraded runs return
// success with whatever results survived.
package api
