// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Package config provides centralized configuration management for Reelscout.

Configuration is loaded with Koanf v2 and validated once at startup.

# Configuration Sources

Sources are layered, later layers overriding earlier ones:
  - Built-in defaults (DefaultConfig, loaded through the structs provider)
  - YAML config file: CONFIG_PATH, then ./config.yaml, ./config.yml,
    /etc/reelscout/config.yaml and /etc/reelscout/config.yml
  - Environment variables, mapped explicitly to config paths; unmapped
    variables are ignored

# Configuration Structure

  - ServerConfig: listen address, timeouts and environment
  - SecurityConfig: API rate limiting and CORS origins
  - LoggingConfig: zerolog level, format and caller output
  - UpstreamConfig: provider selection (tmdb or imdb), credentials, retries,
    client-side rate limit and response cache
  - CatalogConfig: pages per list, refresh interval, startup load and an
    optional catalog file that replaces the upstream
  - FavoritesConfig: BadgerDB directory or in-memory mode
  - RecommendConfig: response cache TTL, page limit and the engine's
    scoring thresholds (recommend.Config)

# Environment Variables

Server and security:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS (comma-separated)

Upstream:
  - UPSTREAM_PROVIDER: tmdb (default) or imdb
  - TMDB_API_KEY or TMDB_ACCESS_TOKEN, TMDB_LANGUAGE
  - RAPIDAPI_KEY, RAPIDAPI_HOST, IMDB_BASE_URL
  - UPSTREAM_TIMEOUT, UPSTREAM_MAX_RETRIES, UPSTREAM_RATE_LIMIT

Catalog and favorites:
  - CATALOG_PAGES, CATALOG_REFRESH_INTERVAL, CATALOG_LOAD_ON_STARTUP, CATALOG_FILE
  - FAVORITES_PATH, FAVORITES_IN_MEMORY

Recommendations:
  - RECOMMEND_CACHE_TTL, RECOMMEND_PAGE_LIMIT
  - RECOMMEND_FAVORITES_VOTE_CUTOFF, RECOMMEND_TRENDING_RECENT_YEARS and the
    other RECOMMEND_* scoring overrides

# Hot Reload

WatchConfigFile watches the config file. The server reloads the file on
change and applies the log level and scoring settings; everything else
needs a restart.

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

# Thread Safety

Config values are not synchronized. Load a new Config and swap the parts
that support it instead of mutating a shared one.
*/
package config
