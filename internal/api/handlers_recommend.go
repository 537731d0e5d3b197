// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelscout/internal/cache"
	"github.com/tomtom215/reelscout/internal/catalog"
	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/favorites"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/metrics"
	"github.com/tomtom215/reelscout/internal/models"
	"github.com/tomtom215/reelscout/internal/recommend"
)

// defaultPageSectionLimit is the per-section size of the combined page.
const defaultPageSectionLimit = 12

// RecommendHandler handles recommendation API endpoints.
type RecommendHandler struct {
	engine    *recommend.Engine
	catalog   *CatalogAccess
	favorites favorites.Store
	cache     *cache.Cache[[]recommend.Result]
	pageLimit int
}

// RecommendationList is the payload of the single-strategy endpoints.
type RecommendationList struct {
	Mode    string             `json:"mode"`
	Subject *models.Movie      `json:"subject,omitempty"`
	Results []recommend.Result `json:"results"`
	Count   int                `json:"count"`
}

// RecommendationsPage is the payload of GET /recommendations: a
// personalized section (empty without favorites) and a trending section.
type RecommendationsPage struct {
	Personalized   []recommend.Result `json:"personalized"`
	Trending       []recommend.Result `json:"trending"`
	FavoritesCount int                `json:"favorites_count"`
}

// RecommendationStatus is the payload of GET /recommendations/status.
type RecommendationStatus struct {
	Engine recommend.Stats `json:"engine"`
	Cache  *cache.Stats    `json:"cache,omitempty"`
}

// recommendationKey identifies a cached strategy result. The catalog
// version makes every refresh a cache miss, the config generation every
// scoring update.
type recommendationKey struct {
	Version     uint64           `json:"v"`
	Generation  uint64           `json:"c"`
	MovieID     string           `json:"m,omitempty"`
	FavoriteIDs []string         `json:"f,omitempty"`
	GenreIDs    []models.GenreID `json:"g,omitempty"`
	Limit       int              `json:"l"`
}

// NewRecommendHandler creates a new recommendation handler. A positive
// cfg.CacheTTL enables the response cache; call Close to stop its sweep.
func NewRecommendHandler(engine *recommend.Engine, access *CatalogAccess, favs favorites.Store, cfg *config.RecommendConfig) *RecommendHandler {
	h := &RecommendHandler{
		engine:    engine,
		catalog:   access,
		favorites: favs,
		pageLimit: defaultPageSectionLimit,
	}
	if cfg != nil {
		if cfg.PageLimit > 0 {
			h.pageLimit = cfg.PageLimit
		}
		if cfg.CacheTTL > 0 {
			h.cache = cache.New[[]recommend.Result]("recommendations", cfg.CacheTTL)
		}
	}
	return h
}

// ClearCache drops every cached recommendation.
func (h *RecommendHandler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

// Close stops the response cache sweep.
func (h *RecommendHandler) Close() {
	if h.cache != nil {
		h.cache.Close()
	}
}

// UpdateConfig swaps the engine scoring configuration and drops results
// computed under the previous one.
func (h *RecommendHandler) UpdateConfig(cfg *recommend.Config) error {
	if err := h.engine.UpdateConfig(cfg); err != nil {
		return err
	}
	h.ClearCache()
	return nil
}

// run executes req against snap, going through the response cache.
func (h *RecommendHandler) run(ctx context.Context, snap *catalog.Snapshot, req recommend.Request) ([]recommend.Result, bool, error) {
	req.Catalog = snap.Movies
	req.Genres = snap
	req.RequestID = logging.RequestIDFromContext(ctx)

	// Read the generation before scoring so a result computed under a
	// replaced config lands under a key nobody asks for again.
	key := cache.GenerateKey(req.Mode.String(), recommendationKey{
		Version:     snap.Version,
		Generation:  h.engine.ConfigGeneration(),
		MovieID:     req.MovieID,
		FavoriteIDs: req.FavoriteIDs,
		GenreIDs:    req.GenreIDs,
		Limit:       req.Limit,
	})
	if h.cache != nil {
		if results, ok := h.cache.Get(key); ok {
			return results, true, nil
		}
	}

	start := time.Now()
	results, err := h.engine.Recommend(ctx, req)
	if err != nil {
		return nil, false, err
	}
	if results == nil {
		results = []recommend.Result{}
	}
	metrics.RecordRecommendation(req.Mode.String(), len(results), time.Since(start))

	if h.cache != nil {
		h.cache.Set(key, results)
	}
	return results, false, nil
}

// respondList runs req and writes a RecommendationList.
func (h *RecommendHandler) respondList(ctx context.Context, rw *ResponseWriter, snap *catalog.Snapshot, req recommend.Request, subject *models.Movie) {
	h.respondListAs(ctx, rw, snap, req, subject, req.Mode)
}

// respondListAs is respondList with the reported mode decoupled from the
// strategy that scored the request.
func (h *RecommendHandler) respondListAs(ctx context.Context, rw *ResponseWriter, snap *catalog.Snapshot, req recommend.Request, subject *models.Movie, reported recommend.Mode) {
	results, cached, err := h.run(ctx, snap, req)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.SuccessWithMeta(RecommendationList{
		Mode:    reported.String(),
		Subject: subject,
		Results: results,
		Count:   len(results),
	}, &APIMeta{CatalogVersion: snap.Version, Cached: cached})
}

// parseLimit validates the optional limit query parameter.
func parseLimit(rw *ResponseWriter, r *http.Request) (int, bool) {
	req := LimitRequest{Limit: getIntParam(r, "limit", 0)}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return 0, false
	}
	return req.Limit, true
}

// SimilarMovies handles GET /api/v1/movies/{id}/similar?limit=
// The target is resolved from the catalog, or from the upstream provider
// when it is not part of the snapshot.
func (h *RecommendHandler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := SimilarRequest{ID: chi.URLParam(r, "id"), Limit: getIntParam(r, "limit", 0)}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	snap, err := h.catalog.snapshot()
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	target, err := h.catalog.resolveMovie(ctx, snap, req.ID)
	if err != nil {
		respondServiceError(rw, err)
		return
	}

	h.respondList(ctx, rw, snap, recommend.Request{
		Mode:    recommend.ModeSimilar,
		Target:  target,
		MovieID: req.ID,
		Limit:   req.Limit,
	}, target)
}

// BecauseYouWatched handles GET /api/v1/recommendations/because-you-watched/{id}?limit=
func (h *RecommendHandler) BecauseYouWatched(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := SimilarRequest{ID: chi.URLParam(r, "id"), Limit: getIntParam(r, "limit", 0)}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	snap, err := h.catalog.snapshot()
	if err != nil {
		respondServiceError(rw, err)
		return
	}

	if watched, ok := snap.Find(req.ID); ok {
		h.respondList(ctx, rw, snap, recommend.Request{
			Mode:    recommend.ModeBecauseYouWatched,
			MovieID: req.ID,
			Limit:   req.Limit,
		}, watched)
		return
	}

	// Not in the snapshot: score the catalog against the upstream record
	// with the because-you-watched default limit.
	watched, err := h.catalog.resolveMovie(ctx, snap, req.ID)
	if errors.Is(err, catalog.ErrNotFound) {
		// Unknown everywhere: the engine answers an empty list.
		h.respondList(ctx, rw, snap, recommend.Request{
			Mode:    recommend.ModeBecauseYouWatched,
			MovieID: req.ID,
			Limit:   req.Limit,
		}, nil)
		return
	}
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = h.engine.GetConfig().BecauseYouWatched.DefaultLimit
	}
	h.respondListAs(ctx, rw, snap, recommend.Request{
		Mode:    recommend.ModeSimilar,
		Target:  watched,
		MovieID: req.ID,
		Limit:   limit,
	}, watched, recommend.ModeBecauseYouWatched)
}

// FavoriteRecommendations handles GET /api/v1/recommendations/favorites?limit=
func (h *RecommendHandler) FavoriteRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, ok := parseLimit(rw, r)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	snap, err := h.catalog.snapshot()
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	ids, err := h.favoriteIDs(ctx)
	if err != nil {
		rw.StorageError(err)
		return
	}

	h.respondList(ctx, rw, snap, recommend.Request{
		Mode:        recommend.ModeFavorites,
		FavoriteIDs: ids,
		Limit:       limit,
	}, nil)
}

// GenreRecommendations handles GET /api/v1/recommendations/genres?genres=28,12&limit=
func (h *RecommendHandler) GenreRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := GenreRecommendationRequest{
		Genres: r.URL.Query().Get("genres"),
		Limit:  getIntParam(r, "limit", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	snap, err := h.catalog.snapshot()
	if err != nil {
		respondServiceError(rw, err)
		return
	}

	h.respondList(ctx, rw, snap, recommend.Request{
		Mode:     recommend.ModeGenres,
		GenreIDs: parseGenreIDs(req.Genres),
		Limit:    req.Limit,
	}, nil)
}

// TrendingRecommendations handles GET /api/v1/recommendations/trending?limit=
func (h *RecommendHandler) TrendingRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, ok := parseLimit(rw, r)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	snap, err := h.catalog.snapshot()
	if err != nil {
		respondServiceError(rw, err)
		return
	}

	h.respondList(ctx, rw, snap, recommend.Request{
		Mode:  recommend.ModeTrending,
		Limit: limit,
	}, nil)
}

// RecommendationsPage handles GET /api/v1/recommendations?limit=
// Returns the personalized and trending sections of the recommendations page.
func (h *RecommendHandler) RecommendationsPage(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, ok := parseLimit(rw, r)
	if !ok {
		return
	}
	if limit == 0 {
		limit = h.pageLimit
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	snap, err := h.catalog.snapshot()
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	ids, err := h.favoriteIDs(ctx)
	if err != nil {
		rw.StorageError(err)
		return
	}

	page := RecommendationsPage{
		Personalized:   []recommend.Result{},
		FavoritesCount: len(ids),
	}
	cachedAll := true

	if len(ids) > 0 {
		personalized, cached, err := h.run(ctx, snap, recommend.Request{
			Mode:        recommend.ModeFavorites,
			FavoriteIDs: ids,
			Limit:       limit,
		})
		if err != nil {
			respondServiceError(rw, err)
			return
		}
		page.Personalized = personalized
		cachedAll = cachedAll && cached
	}

	trending, cached, err := h.run(ctx, snap, recommend.Request{
		Mode:  recommend.ModeTrending,
		Limit: limit,
	})
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	page.Trending = trending
	cachedAll = cachedAll && cached

	rw.SuccessWithMeta(page, &APIMeta{CatalogVersion: snap.Version, Cached: cachedAll})
}

// GetRecommendationStatus handles GET /api/v1/recommendations/status
// Returns per-mode engine counters and response cache statistics.
func (h *RecommendHandler) GetRecommendationStatus(w http.ResponseWriter, r *http.Request) {
	status := RecommendationStatus{Engine: h.engine.Stats()}
	if h.cache != nil {
		stats := h.cache.GetStats()
		status.Cache = &stats
	}
	NewResponseWriter(w, r).Success(status)
}

// GetRecommendationConfig handles GET /api/v1/recommendations/config
func (h *RecommendHandler) GetRecommendationConfig(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.GetConfig())
}

// UpdateRecommendationConfig handles PUT /api/v1/recommendations/config
// The body is merged over the current configuration, so partial documents
// such as {"trending": {"recent_years": 3}} are accepted.
func (h *RecommendHandler) UpdateRecommendationConfig(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cfg := h.engine.GetConfig()
	if err := decodeJSONBody(w, r, cfg); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if err := h.UpdateConfig(cfg); err != nil {
		rw.ValidationError(err.Error(), nil)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("Recommendation config updated")
	rw.Success(h.engine.GetConfig())
}

func (h *RecommendHandler) favoriteIDs(ctx context.Context) ([]string, error) {
	if h.favorites == nil {
		return nil, nil
	}
	return h.favorites.IDs(ctx)
}
