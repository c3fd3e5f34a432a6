// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

/*
Package services provides suture.Service wrappers for the application's
long-running components.

Each wrapper adapts a component's own lifecycle to suture's Serve
pattern: start the component, block until the context is canceled, shut
the component down, return ctx.Err(). Wrappers depend on small local
interfaces rather than concrete types so they can be tested with mocks.

Available services:

  - HTTPServerService: wraps *http.Server with graceful shutdown
  - CacheJanitorService: periodically sweeps expired result cache entries

Services are attached to the supervisor tree by layer:

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddMaintenanceService(services.NewCacheJanitorService(resultCache, 5*time.Minute))
*/
package services
