// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto at
package init, so importing the package is enough to expose them.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - recommendation_requests_total, recommendation_empty_total (counter)
    Labels: mode (similar, favorites, genres, trending, because_you_watched)
  - recommendation_results, recommendation_duration_seconds (histogram)
    Labels: mode

Upstream Metrics:
  - upstream_requests_total: Provider calls (counter)
    Labels: source (tmdb, imdb), endpoint, status_code
  - upstream_request_duration_seconds (histogram)
  - upstream_rate_limited_total: HTTP 429 responses (counter)

Catalog Metrics:
  - catalog_movies, catalog_genres, catalog_version (gauge)
  - catalog_refresh_duration_seconds (histogram)
  - catalog_refresh_errors_total (counter)
  - catalog_last_refresh_timestamp (gauge)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total (counter)
    Labels: name, result
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)

Cache and Favorites Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total (counter)
    Labels: cache_type
  - cache_entries (gauge)
  - favorites_count (gauge)
  - favorites_operations_total (counter)
    Labels: operation, result

# Thread Safety

All recording helpers are safe for concurrent use.
*/
package metrics
