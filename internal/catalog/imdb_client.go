// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/models"
)

// IMDbClient reads titles from the RapidAPI IMDb API.
type IMDbClient struct {
	up     *upstream
	genres *GenreIndex
}

// imdbList is one of the fixed IMDb listings walked by Movies.
type imdbList struct {
	endpoint string
	path     string
}

// imdbListings are served as pages 1..n of Movies.
var imdbListings = []imdbList{
	{endpoint: "top250", path: "/top250-movies"},
	{endpoint: "most_popular", path: "/most-popular-movies"},
	{endpoint: "top_box_office", path: "/imdb/top-box-office"},
}

// NewIMDbClient creates a RapidAPI IMDb client. The base URL defaults to
// https://{rapidapi_host}/api/imdb.
func NewIMDbClient(cfg *config.UpstreamConfig, idx *GenreIndex) *IMDbClient {
	im := cfg.IMDb
	configured := im.RapidAPIKey != "" && im.RapidHost != ""

	baseURL := im.BaseURL
	if baseURL == "" && im.RapidHost != "" {
		baseURL = "https://" + im.RapidHost + "/api/imdb"
	}

	authorize := func(req *http.Request) {
		req.Header.Set("x-rapidapi-host", im.RapidHost)
		req.Header.Set("x-rapidapi-key", im.RapidAPIKey)
	}

	if idx == nil {
		idx = NewGenreIndex()
	}
	return &IMDbClient{
		up:     newUpstream(config.ProviderIMDb, strings.TrimRight(baseURL, "/"), cfg, configured, authorize),
		genres: idx,
	}
}

// Name implements Source.
func (c *IMDbClient) Name() string { return config.ProviderIMDb }

// Genres implements Source. IMDb has no genre endpoint; the index is served.
func (c *IMDbClient) Genres(_ context.Context) ([]models.Genre, error) {
	return c.genres.Genres(), nil
}

// Top250 returns the IMDb top 250 movies.
func (c *IMDbClient) Top250(ctx context.Context) ([]models.Movie, error) {
	return c.list(ctx, imdbListings[0], nil)
}

// MostPopular returns the IMDb most popular movies.
func (c *IMDbClient) MostPopular(ctx context.Context) ([]models.Movie, error) {
	return c.list(ctx, imdbListings[1], nil)
}

// TopBoxOffice returns the current IMDb top box office.
func (c *IMDbClient) TopBoxOffice(ctx context.Context) ([]models.Movie, error) {
	return c.list(ctx, imdbListings[2], nil)
}

// Movies implements Source. Page n serves the n-th fixed listing
// (top 250, most popular, top box office); later pages are empty.
func (c *IMDbClient) Movies(ctx context.Context, page int) (*MoviePage, error) {
	if page < 1 {
		page = 1
	}
	out := &MoviePage{Page: page, TotalPages: len(imdbListings), Movies: []models.Movie{}}
	if page > len(imdbListings) {
		return out, nil
	}

	movies, err := c.list(ctx, imdbListings[page-1], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get movies page %d: %w", page, err)
	}
	out.Movies = movies
	out.TotalResults = len(movies)
	return out, nil
}

// Movie implements Source.
func (c *IMDbClient) Movie(ctx context.Context, id string) (*models.Movie, error) {
	if !strings.HasPrefix(id, "tt") {
		return nil, fmt.Errorf("%w: %q is not an IMDb id", ErrNotFound, id)
	}
	var resp IMDbMovie
	if err := c.up.get(ctx, "movie", "/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get movie %s: %w", id, err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m := FromIMDb(&resp, c.genres)
	return &m, nil
}

// Search implements Source.
func (c *IMDbClient) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Movie{}, nil
	}
	movies, err := c.list(ctx, imdbList{endpoint: "search", path: "/imdb/search"}, url.Values{"query": {query}})
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return movies, nil
}

// Similar implements Source. The IMDb API has no similar-titles endpoint.
func (c *IMDbClient) Similar(_ context.Context, _ string) ([]models.Movie, error) {
	return nil, ErrUnsupported
}

// BreakerState returns the circuit breaker state (closed, half-open, open).
func (c *IMDbClient) BreakerState() string { return c.up.breakerState() }

// PurgeCache drops cached upstream responses.
func (c *IMDbClient) PurgeCache() { c.up.purge() }

func (c *IMDbClient) list(ctx context.Context, l imdbList, query url.Values) ([]models.Movie, error) {
	body, err := c.up.getRaw(ctx, l.endpoint, l.path, query)
	if err != nil {
		return nil, err
	}
	titles, err := decodeIMDbList(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode imdb %s response: %w", l.endpoint, err)
	}
	movies := make([]models.Movie, 0, len(titles))
	for i := range titles {
		if titles[i].ID == "" {
			continue
		}
		movies = append(movies, FromIMDb(&titles[i], c.genres))
	}
	return movies, nil
}

// decodeIMDbList accepts either a bare JSON array or an object wrapping the
// array in "results".
func decodeIMDbList(body []byte) ([]IMDbMovie, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var titles []IMDbMovie
		if err := json.Unmarshal(trimmed, &titles); err != nil {
			return nil, err
		}
		return titles, nil
	}
	var wrapped struct {
		Results []IMDbMovie `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Results, nil
}
