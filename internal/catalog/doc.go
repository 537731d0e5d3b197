// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Package catalog provides the movie catalog: upstream provider clients, the
genre index and the in-memory snapshot the recommendation engine scores.

# Sources

Two upstream providers implement Source:

  - TMDBClient: The Movie Database v3 API (Bearer token or api_key)
  - IMDbClient: the RapidAPI IMDb API (x-rapidapi-host / x-rapidapi-key),
    including the Top250, MostPopular and TopBoxOffice listings

Both share one transport with client-side rate limiting (x/time/rate),
HTTP 429 backoff honoring Retry-After, a circuit breaker (sony/gobreaker),
bounded error bodies and an expirable LRU response cache
(hashicorp/golang-lru). Non-2xx responses surface as *StatusError; a 404
matches ErrNotFound under errors.Is.

# Adapters

FromTMDB and FromIMDb convert wire records into models.Movie. IMDb reports
genres by name; GenreIndex maps names and aliases (Sci-Fi, Film Noir, ...)
onto TMDB genre ids, with extended ids for IMDb-only genres.

# Snapshots

Loader fetches the genre list and the configured number of listing pages
(or reads a JSON file), de-duplicates by id and publishes an immutable
Snapshot into a Store. Store swaps generations atomically, so readers hold a
consistent catalog for the duration of a request:

	snap, err := store.Current()
	if errors.Is(err, catalog.ErrNotLoaded) {
		// serve 503
	}
	results := engine.Trending(snap.Movies, 12)

A failed Load leaves the previous snapshot current.
*/
package catalog
