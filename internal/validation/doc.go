// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator caches struct info across requests.
// Field errors are reported by wire name (json tag, then query tag) and
// translated into the API's VALIDATION_ERROR format.
//
// # Custom Tags
//
//   - movie_id: 1-64 characters of letters, digits, '-' or '_'
//     (TMDB "550", IMDb "tt0111161")
//   - genre_ids: comma-separated positive integers, at most 20
//
// # Usage
//
//	type RecommendationQuery struct {
//	    Limit  int    `query:"limit" validate:"min=1,max=100"`
//	    Genres string `query:"genres" validate:"required,genre_ids"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
