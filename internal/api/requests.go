// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

// Request structs validated with go-playground/validator before a handler
// touches the catalog or the favorites store. Field names in error
// messages come from the query and json tags.
//
//	req := MovieListRequest{
//	    Query: r.URL.Query().Get("q"),
//	    Limit: getIntParam(r, "limit", defaultPageLimit),
//	}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    rw.ValidationError(apiErr.Message, apiErr.Details)
//	    return
//	}

// MovieListRequest is the query of GET /movies.
//
// Fields:
//   - Query: case-insensitive substring over title, overview and genre names
//   - Genres: comma-separated genre ids; a movie must carry all of them
//   - Limit: page size (1-100)
//   - Offset: items to skip (0-100000)
type MovieListRequest struct {
	Query  string `query:"q" validate:"max=200"`
	Genres string `query:"genre" validate:"omitempty,genre_ids"`
	Limit  int    `query:"limit" validate:"min=1,max=100"`
	Offset int    `query:"offset" validate:"min=0,max=100000"`
}

// MovieIDRequest validates a movie id taken from the URL path.
type MovieIDRequest struct {
	ID string `json:"id" validate:"required,movie_id"`
}

// LimitRequest is the query of list endpoints that only take a limit.
// Zero selects the strategy default.
type LimitRequest struct {
	Limit int `query:"limit" validate:"min=0,max=100"`
}

// SimilarRequest is the path and query of the similar-movie endpoints.
type SimilarRequest struct {
	ID    string `json:"id" validate:"required,movie_id"`
	Limit int    `query:"limit" validate:"min=0,max=100"`
}

// GenreRecommendationRequest is the query of GET /recommendations/genres.
type GenreRecommendationRequest struct {
	Genres string `query:"genres" validate:"required,genre_ids"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
}

// AddFavoriteRequest is the body of POST /favorites. Only ID is required:
// when Title is empty the snapshot is built from the catalog (or upstream).
type AddFavoriteRequest struct {
	ID     string  `json:"id" validate:"required,movie_id"`
	Title  string  `json:"title" validate:"omitempty,max=500"`
	Image  string  `json:"image" validate:"omitempty,max=2048"`
	Rating float64 `json:"rating" validate:"gte=0,lte=10"`
	Year   int     `json:"year" validate:"gte=0,lte=3000"`
}
