// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Package main is the entry point for the Reelscout server.

Reelscout serves a movie catalog loaded from TMDB, an IMDb RapidAPI
provider or a local JSON file, keeps a list of favorite movies, and
computes explainable recommendations over the loaded catalog.

# Application Architecture

Long-running components run under a Suture v4 supervisor tree:

	RootSupervisor ("reelscout")
	├── DataSupervisor ("data-layer")
	│   └── CatalogService (initial load, scheduled and manual refresh)
	├── MessagingSupervisor ("messaging-layer")
	│   └── ConfigWatchService (only when a config file is found)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (REST API and /metrics)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, an optional YAML file and environment variables
 2. Logging: zerolog, with an slog bridge for the supervisor
 3. Catalog: genre index, upstream source (rate limited, cached, circuit broken) and loader
 4. Favorites: BadgerDB store, on disk or in memory
 5. Recommendation engine and its response cache
 6. HTTP router (chi) and supervisor tree

# Configuration

Configuration is loaded in layers, highest priority last:
  - Built-in defaults
  - Config file (CONFIG_PATH, ./config.yaml or /etc/reelscout/config.yaml)
  - Environment variables

Commonly used variables:
  - HTTP_PORT, HTTP_HOST: listen address (default 0.0.0.0:8080)
  - UPSTREAM_PROVIDER: "tmdb" (default) or "imdb"
  - TMDB_API_KEY or TMDB_ACCESS_TOKEN: TMDB credentials
  - RAPIDAPI_KEY, RAPIDAPI_HOST: IMDb provider credentials
  - CATALOG_FILE: load the catalog from a JSON file instead of the upstream
  - CATALOG_REFRESH_INTERVAL: scheduled refresh period (0 disables)
  - FAVORITES_PATH, FAVORITES_IN_MEMORY: favorites storage
  - LOG_LEVEL, LOG_FORMAT: logging

When a config file is in use, edits to it are applied without a restart
for the log level and the recommendation scoring settings.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops
accepting connections and waits up to 10s for in-flight requests, the
catalog service stops its refresh loop, and the favorites store is closed.

# Example Usage

	export TMDB_API_KEY=your-api-key
	./reelscout-server

Offline with a catalog file and in-memory favorites:

	export CATALOG_FILE=./movies.json
	export FAVORITES_IN_MEMORY=true
	./reelscout-server
*/
package main
