// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Package models defines the data structures shared by the catalog, the
favorites store, the recommendation engine and the HTTP API.

Key Components:

  - Movie: the normalized catalog record. TMDB and IMDb payloads are adapted
    into it at the catalog boundary, so nothing downstream sees upstream shapes.
  - Genre and GenreID: genre identity. TMDB ids are used as-is; genres only
    known by name get ids from the extended range.
  - FavoriteMovie: the denormalized record persisted when a movie is favorited,
    enough to render a favorites list without a loaded catalog.

Zero values mean "absent" throughout: a Movie with Rating 0 has no rating,
not a rating of zero, and the scoring engine treats it that way.

Usage Example:

	fav := models.NewFavorite(movie, time.Now())
	if err := validation.ValidateStruct(&fav); err != nil {
	    return err
	}
	added, err := store.Add(ctx, &fav)

Thread Safety:

Models are plain values. Catalog snapshots share Movie slices between
goroutines and must be treated as read-only once published.
*/
package models
