// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscout/internal/models"
)

// Note: besides models this package has no dependencies on other internal
// packages. Catalog, favorites and transport live outside and hand the
// engine plain slices.

// Engine exposes the scoring strategies over a hot-swappable Config.
// It is safe for concurrent use; strategies never mutate their inputs.
type Engine struct {
	mu         sync.RWMutex
	config     *Config
	generation atomic.Uint64
	logger zerolog.Logger
	now    func() time.Time

	requests [modeCount]atomic.Int64
	empty    [modeCount]atomic.Int64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a recommendation engine. A nil cfg selects DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// SimilarToMovie ranks catalog movies by similarity to target.
func (e *Engine) SimilarToMovie(target *models.Movie, catalog []models.Movie, genres GenreLookup, limit int) []Result {
	return e.track(ModeSimilar, similarToMovie(e.cfg(), target, catalog, genres, limit))
}

// FromFavorites ranks non-favorite catalog movies against the favorites'
// taste profile. favoriteIDs is read only.
func (e *Engine) FromFavorites(favoriteIDs []string, catalog []models.Movie, genres GenreLookup, limit int) []Result {
	return e.track(ModeFavorites, fromFavorites(e.cfg(), favoriteIDs, catalog, genres, limit))
}

// ByGenrePreference ranks catalog movies carrying any preferred genre.
func (e *Engine) ByGenrePreference(preferred []models.GenreID, catalog []models.Movie, genres GenreLookup, limit int) []Result {
	return e.track(ModeGenres, byGenrePreference(e.cfg(), preferred, catalog, genres, limit))
}

// Trending ranks the whole catalog by rating, popularity and recency.
func (e *Engine) Trending(catalog []models.Movie, limit int) []Result {
	return e.track(ModeTrending, trending(e.cfg(), catalog, e.now().Year(), limit))
}

// BecauseYouWatched resolves movieID in the catalog and ranks similar movies.
func (e *Engine) BecauseYouWatched(movieID string, catalog []models.Movie, genres GenreLookup, limit int) []Result {
	return e.track(ModeBecauseYouWatched, becauseYouWatched(e.cfg(), movieID, catalog, genres, limit))
}

// Recommend dispatches req to the strategy selected by req.Mode.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) ([]Result, error) {
	start := time.Now()
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("mode", req.Mode.String()).
		Int("catalog_size", len(req.Catalog)).
		Logger()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []Result
	switch req.Mode {
	case ModeSimilar:
		target := req.Target
		if target == nil && req.MovieID != "" {
			target = findMovie(req.Catalog, req.MovieID)
			if target == nil {
				results = e.track(ModeSimilar, []Result{})
				break
			}
		}
		if target == nil {
			return nil, fmt.Errorf("%w: similar requires a target movie", ErrMissingSubject)
		}
		results = e.SimilarToMovie(target, req.Catalog, req.Genres, req.Limit)
	case ModeFavorites:
		results = e.FromFavorites(req.FavoriteIDs, req.Catalog, req.Genres, req.Limit)
	case ModeGenres:
		results = e.ByGenrePreference(req.GenreIDs, req.Catalog, req.Genres, req.Limit)
	case ModeTrending:
		results = e.Trending(req.Catalog, req.Limit)
	case ModeBecauseYouWatched:
		if req.MovieID == "" {
			return nil, fmt.Errorf("%w: because_you_watched requires a movie id", ErrMissingSubject)
		}
		results = e.BecauseYouWatched(req.MovieID, req.Catalog, req.Genres, req.Limit)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(req.Mode))
	}

	logger.Debug().
		Int("returned", len(results)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return results, nil
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.cfg().Clone()
}

// UpdateConfig validates and swaps in a new configuration.
func (e *Engine) UpdateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("invalid config: nil")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	e.mu.Lock()
	e.config = cfg.Clone()
	e.generation.Add(1)
	e.mu.Unlock()

	e.logger.Info().Msg("configuration updated")
	return nil
}

// ConfigGeneration counts successful UpdateConfig calls. A caller that
// reads generation n before scoring is guaranteed a config at least as new
// as update n.
func (e *Engine) ConfigGeneration() uint64 {
	return e.generation.Load()
}

// Stats returns request and empty-result counters per mode.
func (e *Engine) Stats() Stats {
	s := Stats{
		Requests:     make(map[string]int64, modeCount),
		EmptyResults: make(map[string]int64, modeCount),
	}
	for _, m := range Modes() {
		s.Requests[m.String()] = e.requests[m].Load()
		s.EmptyResults[m.String()] = e.empty[m].Load()
	}
	return s
}

func (e *Engine) cfg() *Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

func (e *Engine) track(mode Mode, results []Result) []Result {
	e.requests[mode].Add(1)
	if len(results) == 0 {
		e.empty[mode].Add(1)
	}
	return results
}
