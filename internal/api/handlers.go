// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/reelscout/internal/catalog"
	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/favorites"
	"github.com/tomtom215/reelscout/internal/models"
)

// defaultHandlerTimeout bounds the work of one request, upstream calls included.
const defaultHandlerTimeout = 10 * time.Second

// CatalogRefresher queues an asynchronous catalog reload. It reports false
// when a reload is already queued.
type CatalogRefresher interface {
	TriggerRefresh() bool
}

// breakerReporter is implemented by upstream sources with a circuit breaker.
type breakerReporter interface {
	BreakerState() string
}

// CatalogAccess bundles the catalog snapshot store with the genre index and
// the optional upstream source used when a movie is not in the snapshot.
type CatalogAccess struct {
	Store  *catalog.Store
	Genres *catalog.GenreIndex
	Source catalog.Source
}

// snapshot returns the current catalog generation or catalog.ErrNotLoaded.
func (c *CatalogAccess) snapshot() (*catalog.Snapshot, error) {
	if c == nil || c.Store == nil {
		return nil, catalog.ErrNotLoaded
	}
	return c.Store.Current()
}

// resolveMovie finds id in snap (which may be nil) and falls back to the
// upstream source.
func (c *CatalogAccess) resolveMovie(ctx context.Context, snap *catalog.Snapshot, id string) (*models.Movie, error) {
	if snap != nil {
		if m, ok := snap.Find(id); ok {
			return m, nil
		}
	}
	if c == nil || c.Source == nil {
		if snap == nil {
			return nil, catalog.ErrNotLoaded
		}
		return nil, catalog.ErrNotFound
	}
	m, err := c.Source.Movie(ctx, id)
	if err != nil {
		if snap != nil && errors.Is(err, catalog.ErrNotConfigured) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Handler serves the catalog, favorites, catalog management and health
// endpoints. Recommendation endpoints live on RecommendHandler.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, shared catalog access (this file)
//   - handlers_helpers.go: Shared helper functions
//   - handlers_health.go: Health/monitoring endpoints
//   - handlers_movies.go: Genre and movie browsing endpoints
//   - handlers_favorites.go: Favorites endpoints
//   - handlers_catalog.go: Catalog status and refresh
type Handler struct {
	catalog   *CatalogAccess
	favorites favorites.Store
	refresher CatalogRefresher
	config    *config.Config
	now       func() time.Time
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// refresher may be nil, in which case POST /catalog/refresh answers 503.
//
//	access := &api.CatalogAccess{Store: store, Genres: idx, Source: src}
//	handler := api.NewHandler(access, favStore, catalogService, cfg)
func NewHandler(access *CatalogAccess, favs favorites.Store, refresher CatalogRefresher, cfg *config.Config) *Handler {
	return &Handler{
		catalog:   access,
		favorites: favs,
		refresher: refresher,
		config:    cfg,
		now:       time.Now,
		startTime: time.Now(),
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultHandlerTimeout)
}
