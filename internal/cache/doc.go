// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Package cache provides a typed, thread-safe in-memory cache with TTL support.

The API layer uses it to memoize recommendation pages and search results
between catalog refreshes. Keys are derived from the request parameters and
the catalog version, so a refresh naturally invalidates old entries; Clear is
also called after every successful refresh to release memory early.

# Usage

	recs := cache.New[[]recommend.Result]("recommendations", 5*time.Minute)
	defer recs.Close()

	key := cache.GenerateKey("trending", struct {
	    Limit   int    `json:"limit"`
	    Version uint64 `json:"version"`
	}{12, snap.Version})

	if results, ok := recs.Get(key); ok {
	    return results
	}
	recs.Set(key, computed)

# Expiration

Entries expire lazily on Get and eagerly via a background sweep
(DefaultCleanupInterval). NewWithCleanup with a non-positive interval
disables the sweep. A non-positive TTL passed to SetWithTTL stores nothing.

# Metrics

Every cache exports counters labelled with its name:

  - cache_hits_total / cache_misses_total
  - cache_entries (current entry count)
  - cache_evictions_total (expired entries removed by the sweep)

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
