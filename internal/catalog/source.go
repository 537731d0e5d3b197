// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/models"
)

// MoviePage is one page of a source's browse listing.
type MoviePage struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Movies       []models.Movie `json:"movies"`
}

// Source is an upstream movie provider.
type Source interface {
	// Name returns the source identifier (tmdb, imdb).
	Name() string

	// Genres returns the provider's genre list.
	Genres(ctx context.Context) ([]models.Genre, error)

	// Movies returns one page (1-based) of the provider's browse listing.
	Movies(ctx context.Context, page int) (*MoviePage, error)

	// Movie returns a single movie by id. Unknown ids yield ErrNotFound.
	Movie(ctx context.Context, id string) (*models.Movie, error)

	// Search returns movies matching a free-text query.
	Search(ctx context.Context, query string) ([]models.Movie, error)

	// Similar returns the provider's own similar-movie list for id.
	Similar(ctx context.Context, id string) ([]models.Movie, error)
}

// NewSource builds the Source selected by cfg.Provider. Both sources
// resolve genres through idx.
func NewSource(cfg *config.UpstreamConfig, idx *GenreIndex) (Source, error) {
	switch cfg.Provider {
	case config.ProviderTMDB, "":
		return NewTMDBClient(cfg, idx), nil
	case config.ProviderIMDb:
		return NewIMDbClient(cfg, idx), nil
	default:
		return nil, fmt.Errorf("unknown upstream provider %q", cfg.Provider)
	}
}
