// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/models"
)

// TMDBClient reads movies from The Movie Database v3 API. It authenticates
// with a v4 read access token when set, otherwise with the v3 api_key.
type TMDBClient struct {
	up        *upstream
	imageBase string
	language  string
	genres    *GenreIndex
}

// NewTMDBClient creates a TMDB client. Missing credentials are reported as
// ErrNotConfigured on first use.
func NewTMDBClient(cfg *config.UpstreamConfig, idx *GenreIndex) *TMDBClient {
	tm := cfg.TMDB
	configured := tm.AccessToken != "" || tm.APIKey != ""

	authorize := func(req *http.Request) {
		if tm.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+tm.AccessToken)
			return
		}
		q := req.URL.Query()
		q.Set("api_key", tm.APIKey)
		req.URL.RawQuery = q.Encode()
	}

	if idx == nil {
		idx = NewGenreIndex()
	}
	return &TMDBClient{
		up:        newUpstream(config.ProviderTMDB, strings.TrimRight(tm.BaseURL, "/"), cfg, configured, authorize),
		imageBase: tm.ImageBaseURL,
		language:  tm.Language,
		genres:    idx,
	}
}

// Name implements Source.
func (c *TMDBClient) Name() string { return config.ProviderTMDB }

func (c *TMDBClient) query(kv ...string) url.Values {
	q := url.Values{}
	if c.language != "" {
		q.Set("language", c.language)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(kv[i], kv[i+1])
	}
	return q
}

// Genres implements Source. The result is merged into the genre index.
func (c *TMDBClient) Genres(ctx context.Context) ([]models.Genre, error) {
	var resp TMDBGenresResponse
	if err := c.up.get(ctx, "genres", "/genre/movie/list", c.query(), &resp); err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}
	c.genres.Merge(resp.Genres)
	return resp.Genres, nil
}

// Movies implements Source using the popular movies listing.
func (c *TMDBClient) Movies(ctx context.Context, page int) (*MoviePage, error) {
	if page < 1 {
		page = 1
	}
	var resp TMDBMoviesResponse
	if err := c.up.get(ctx, "popular", "/movie/popular", c.query("page", strconv.Itoa(page)), &resp); err != nil {
		return nil, fmt.Errorf("failed to get movies page %d: %w", page, err)
	}
	return &MoviePage{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Movies:       c.adapt(resp.Results),
	}, nil
}

// Movie implements Source.
func (c *TMDBClient) Movie(ctx context.Context, id string) (*models.Movie, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: %q is not a TMDB id", ErrNotFound, id)
	}
	var resp TMDBMovie
	if err := c.up.get(ctx, "movie", "/movie/"+id, c.query(), &resp); err != nil {
		return nil, fmt.Errorf("failed to get movie %s: %w", id, err)
	}
	c.genres.Merge(resp.Genres)
	m := FromTMDB(&resp, c.imageBase)
	return &m, nil
}

// Search implements Source.
func (c *TMDBClient) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Movie{}, nil
	}
	var resp TMDBMoviesResponse
	if err := c.up.get(ctx, "search", "/search/movie", c.query("query", query), &resp); err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return c.adapt(resp.Results), nil
}

// Similar implements Source.
func (c *TMDBClient) Similar(ctx context.Context, id string) ([]models.Movie, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: %q is not a TMDB id", ErrNotFound, id)
	}
	var resp TMDBMoviesResponse
	if err := c.up.get(ctx, "similar", "/movie/"+id+"/similar", c.query(), &resp); err != nil {
		return nil, fmt.Errorf("failed to get similar movies for %s: %w", id, err)
	}
	return c.adapt(resp.Results), nil
}

// BreakerState returns the circuit breaker state (closed, half-open, open).
func (c *TMDBClient) BreakerState() string { return c.up.breakerState() }

// PurgeCache drops cached upstream responses.
func (c *TMDBClient) PurgeCache() { c.up.purge() }

func (c *TMDBClient) adapt(results []TMDBMovie) []models.Movie {
	movies := make([]models.Movie, 0, len(results))
	for i := range results {
		movies = append(movies, FromTMDB(&results[i], c.imageBase))
	}
	return movies
}
