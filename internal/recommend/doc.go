// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

// Package recommend implements the content-based movie recommendation engine.
//
// # Strategies
//
// Every strategy takes an in-memory catalog and returns scored results,
// highest score first, each with a human-readable reason:
//
//   - Similar: weighted genre (Jaccard), rating and release-year similarity
//     to one target movie
//   - Favorites: scores against a taste profile (top genres, average rating)
//     built from the user's favorite movies
//   - Genres: explicit genre preferences blended with rating
//   - Trending: rating, popularity, vote count and recency
//   - Because You Watched: Similar seeded from a movie id
//
// # Determinism
//
// Strategies are pure functions of (config, inputs, current year). Ties keep
// catalog order because ranking uses a stable sort. The current year is read
// from an injectable clock (WithClock) so trending scores are reproducible
// in tests.
//
// # Conventions
//
// A rating of 0 (or NaN) and a release year of 0 mean "unknown". Unknown
// values never contribute to similarity. Results always point into the
// caller's catalog slice and the engine never mutates its inputs.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	results := engine.Trending(snapshot.Movies, 12)
//
// # Thread Safety
//
// Engine is safe for concurrent use. UpdateConfig swaps the configuration
// atomically; in-flight requests finish with the config they started with.
package recommend
