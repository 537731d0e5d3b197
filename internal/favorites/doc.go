// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

// Package favorites persists the favorites list of the local profile in
// BadgerDB. Each favorite is a models.FavoriteMovie snapshot stored as JSON
// under the key "fav:<movie id>", so the list renders without a catalog.
//
// Add reports false when the movie is already a favorite and Remove reports
// false when it was not present; neither is an error. The recommendation
// engine receives IDs as a read-only slice per request.
package favorites
