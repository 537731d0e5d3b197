// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Package services provides suture.Service wrappers for Reelscout components.

Each wrapper implements the suture v4 service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Serve blocks until its context is canceled and then returns ctx.Err().
Any other error return tells the supervisor to restart the service with
backoff.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server and converts ListenAndServe to Serve
  - Graceful shutdown with a configurable drain timeout

Catalog (CatalogService):
  - Loads the catalog on start, on a schedule and on demand
  - TriggerRefresh coalesces concurrent requests into one pending reload
  - OnRefresh hooks run after each successful load
  - A failed load keeps the previous snapshot serving

Config Watch (ConfigWatchService):
  - Watches the config file through koanf's file provider
  - Coalesces change bursts and applies them through a reload callback

# Usage

	catalogSvc := services.NewCatalogService(loader, services.CatalogServiceConfig{
	    InitialLoad:     true,
	    RefreshInterval: 6 * time.Hour,
	}, logging.Logger())
	tree.AddDataService(catalogSvc)

	server := &http.Server{Addr: ":8080", Handler: router.SetupChi()}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logging.Logger()))
*/
package services
