// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelscout/internal/catalog"
	"github.com/tomtom215/reelscout/internal/models"
)

// defaultPageLimit is the GET /movies page size when limit is omitted.
const defaultPageLimit = 20

// Genres handles GET /api/v1/genres
// Returns the genre index: the provider list merged over the built-in genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	genres := catalog.DefaultGenres
	if h.catalog != nil && h.catalog.Genres != nil {
		genres = h.catalog.Genres.Genres()
	}

	rw.Success(map[string]interface{}{
		"genres": genres,
		"count":  len(genres),
	})
}

// Movies handles GET /api/v1/movies?q=&genre=&limit=&offset=
// Browses, searches and filters the catalog snapshot.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := MovieListRequest{
		Query:  r.URL.Query().Get("q"),
		Genres: r.URL.Query().Get("genre"),
		Limit:  getIntParam(r, "limit", defaultPageLimit),
		Offset: getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	snap, err := h.catalog.snapshot()
	if err != nil {
		respondServiceError(rw, err)
		return
	}

	movies := snap.Search(req.Query)
	for _, id := range parseGenreIDs(req.Genres) {
		movies = catalog.FilterByGenre(movies, id)
	}

	page := catalog.Paginate(movies, req.Offset, req.Limit)
	rw.SuccessWithPagination(page, &PaginationMeta{
		Total:   len(movies),
		Count:   len(page),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: req.Offset+len(page) < len(movies),
	}, snap.Version)
}

// Movie handles GET /api/v1/movies/{id}
// Looks the movie up in the catalog first, then asks the upstream provider.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := MovieIDRequest{ID: chi.URLParam(r, "id")}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	snap, _ := h.catalog.snapshot()
	movie, err := h.catalog.resolveMovie(ctx, snap, req.ID)
	if err != nil {
		respondServiceError(rw, err)
		return
	}

	var version uint64
	if snap != nil {
		version = snap.Version
	}
	rw.SuccessWithMeta(movieDetail{Movie: movie, GenreNames: genreNames(h.catalog, movie)}, &APIMeta{CatalogVersion: version})
}

// movieDetail is a movie with its genre ids resolved to names.
type movieDetail struct {
	*models.Movie
	GenreNames []string `json:"genre_names"`
}

func genreNames(access *CatalogAccess, m *models.Movie) []string {
	names := make([]string, 0, len(m.Genres))
	if access == nil || access.Genres == nil {
		return names
	}
	for _, id := range m.Genres {
		if name, ok := access.Genres.GenreName(id); ok {
			names = append(names, name)
		}
	}
	return names
}
