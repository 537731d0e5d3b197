// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelscout/internal/favorites"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/models"
	"github.com/tomtom215/reelscout/internal/validation"
)

// FavoriteResult is the payload of POST /favorites.
type FavoriteResult struct {
	Favorite *models.FavoriteMovie `json:"favorite"`
	Added    bool                  `json:"added"`
}

// ListFavorites handles GET /api/v1/favorites
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	favs, err := h.favorites.List(r.Context())
	if err != nil {
		h.respondStoreError(rw, err)
		return
	}

	rw.Success(map[string]interface{}{
		"favorites": favs,
		"count":     len(favs),
	})
}

// GetFavorite handles GET /api/v1/favorites/{id}
func (h *Handler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := MovieIDRequest{ID: chi.URLParam(r, "id")}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	fav, err := h.favorites.Get(r.Context(), req.ID)
	if err != nil {
		h.respondStoreError(rw, err)
		return
	}
	rw.Success(fav)
}

// AddFavorite handles POST /api/v1/favorites
//
// A body of {"id": "603"} snapshots the movie from the catalog (or the
// upstream provider); a body carrying a title is stored as given. Adding an
// existing favorite is not an error: it answers 200 with added=false and
// the stored snapshot.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req AddFavoriteRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var fav models.FavoriteMovie
	if req.Title != "" {
		fav = models.FavoriteMovie{
			ID:      req.ID,
			Title:   req.Title,
			Image:   req.Image,
			Rating:  req.Rating,
			Year:    req.Year,
			SavedAt: h.now(),
		}
		if fav.Image == "" {
			fav.Image = models.PlaceholderImage
		}
	} else {
		snap, _ := h.catalog.snapshot()
		movie, err := h.catalog.resolveMovie(ctx, snap, req.ID)
		if err != nil {
			respondServiceError(rw, err)
			return
		}
		fav = models.NewFavorite(movie, h.now())
	}

	added, err := h.favorites.Add(ctx, &fav)
	if err != nil {
		h.respondStoreError(rw, err)
		return
	}

	if !added {
		stored, err := h.favorites.Get(ctx, fav.ID)
		if err != nil {
			h.respondStoreError(rw, err)
			return
		}
		rw.Success(FavoriteResult{Favorite: stored, Added: false})
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("movie_id", sanitizeLogValue(fav.ID)).
		Msg("Favorite added")
	rw.Created(FavoriteResult{Favorite: &fav, Added: true})
}

// RemoveFavorite handles DELETE /api/v1/favorites/{id}
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := MovieIDRequest{ID: chi.URLParam(r, "id")}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	removed, err := h.favorites.Remove(r.Context(), req.ID)
	if err != nil {
		h.respondStoreError(rw, err)
		return
	}
	if !removed {
		rw.NotFound("Favorite not found")
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("movie_id", req.ID).
		Msg("Favorite removed")
	rw.NoContent()
}

// ClearFavorites handles DELETE /api/v1/favorites
func (h *Handler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	removed, err := h.favorites.Clear(r.Context())
	if err != nil {
		h.respondStoreError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int("removed", removed).Msg("Favorites cleared")
	rw.Success(map[string]interface{}{"removed": removed})
}

func (h *Handler) respondStoreError(rw *ResponseWriter, err error) {
	var verr *validation.RequestValidationError

	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
	case errors.Is(err, favorites.ErrNotFound), errors.Is(err, favorites.ErrClosed):
		respondServiceError(rw, err)
	default:
		rw.StorageError(err)
	}
}
