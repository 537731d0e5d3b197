// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/reelscout/internal/config"
)

func testUpstreamConfig(provider string) *config.UpstreamConfig {
	return &config.UpstreamConfig{
		Provider:       provider,
		Timeout:        5 * time.Second,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
		RateLimit:      1000,
		RateBurst:      100,
		CacheSize:      16,
		CacheTTL:       time.Minute,
	}
}

func newTestTMDBClient(t *testing.T, handler http.HandlerFunc) *TMDBClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := testUpstreamConfig(config.ProviderTMDB)
	cfg.TMDB = config.TMDBConfig{
		BaseURL:      server.URL,
		ImageBaseURL: testImageBase,
		AccessToken:  "test-token",
		Language:     "en-US",
	}
	return NewTMDBClient(cfg, NewGenreIndex())
}

func newTestIMDbClient(t *testing.T, handler http.HandlerFunc) *IMDbClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := testUpstreamConfig(config.ProviderIMDb)
	cfg.IMDb = config.IMDbConfig{
		BaseURL:     server.URL + "/api/imdb",
		RapidAPIKey: "rapid-key",
		RapidHost:   "imdb236.p.rapidapi.com",
	}
	return NewIMDbClient(cfg, NewGenreIndex())
}

func TestTMDBClientMovies(t *testing.T) {
	t.Parallel()

	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/popular" {
			t.Errorf("path = %s, want /movie/popular", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("language") != "en-US" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":2,"total_pages":40,"total_results":800,"results":[
			{"id":550,"title":"Fight Club","genre_ids":[18],"vote_average":8.4,"vote_count":27000,"popularity":61.4,"release_date":"1999-10-15","poster_path":"/fc.jpg"},
			{"id":13,"title":"Forrest Gump","genre_ids":[35,18,10749],"vote_average":8.5,"vote_count":25000,"popularity":55.1,"release_date":"1994-06-23"}
		]}`))
	})

	page, err := client.Movies(context.Background(), 2)
	if err != nil {
		t.Fatalf("Movies() error = %v", err)
	}
	if page.Page != 2 || page.TotalPages != 40 || page.TotalResults != 800 {
		t.Errorf("page metadata = %+v", page)
	}
	if len(page.Movies) != 2 {
		t.Fatalf("len(Movies) = %d, want 2", len(page.Movies))
	}
	if m := page.Movies[0]; m.ID != "550" || m.ReleaseYear != 1999 || m.PosterURL != testImageBase+"/fc.jpg" {
		t.Errorf("first movie = %+v", m)
	}
}

func TestTMDBClientAPIKeyAuth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("Authorization header should not be sent with api_key auth")
		}
		if got := r.URL.Query().Get("api_key"); got != "v3-key" {
			t.Errorf("api_key = %q, want v3-key", got)
		}
		_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":99999,"name":"Kaiju"}]}`))
	}))
	defer server.Close()

	cfg := testUpstreamConfig(config.ProviderTMDB)
	cfg.TMDB = config.TMDBConfig{BaseURL: server.URL, APIKey: "v3-key"}
	idx := NewGenreIndex()
	client := NewTMDBClient(cfg, idx)

	genres, err := client.Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres() error = %v", err)
	}
	if len(genres) != 2 {
		t.Errorf("len(genres) = %d, want 2", len(genres))
	}
	if name, ok := idx.GenreName(99999); !ok || name != "Kaiju" {
		t.Errorf("upstream genre not merged into index: %q, %v", name, ok)
	}
}

func TestTMDBClientNotConfigured(t *testing.T) {
	t.Parallel()

	cfg := testUpstreamConfig(config.ProviderTMDB)
	cfg.TMDB = config.TMDBConfig{BaseURL: "http://127.0.0.1:1"}
	client := NewTMDBClient(cfg, nil)

	if _, err := client.Movies(context.Background(), 1); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Movies() error = %v, want ErrNotConfigured", err)
	}
}

func TestTMDBClientMovieNotFound(t *testing.T) {
	t.Parallel()

	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	})

	_, err := client.Movie(context.Background(), "999999999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Movie() error = %v, want ErrNotFound", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Movie() error = %T, want *StatusError in chain", err)
	}
	if statusErr.StatusCode != http.StatusNotFound || !strings.Contains(statusErr.Body, "could not be found") {
		t.Errorf("StatusError = %+v", statusErr)
	}
	if statusErr.Error() != "API Error: 404 Not Found" {
		t.Errorf("Error() = %q", statusErr.Error())
	}

	if _, err := client.Movie(context.Background(), "tt0111161"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Movie(non-numeric) error = %v, want ErrNotFound", err)
	}
}

func TestTMDBClientMovieDetail(t *testing.T) {
	t.Parallel()

	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/27205" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":27205,"title":"Inception","genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}],"vote_average":8.4,"release_date":"2010-07-15"}`))
	})

	m, err := client.Movie(context.Background(), "27205")
	if err != nil {
		t.Fatalf("Movie() error = %v", err)
	}
	if m.Title != "Inception" || len(m.Genres) != 2 || m.Genres[1] != GenreScienceFiction {
		t.Errorf("Movie() = %+v", m)
	}
}

func TestTMDBClientSearchAndSimilar(t *testing.T) {
	t.Parallel()

	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			if r.URL.Query().Get("query") != "matrix" {
				t.Errorf("query = %q", r.URL.Query().Get("query"))
			}
			_, _ = w.Write([]byte(`{"results":[{"id":603,"title":"The Matrix","genre_ids":[28,878]}]}`))
		case "/movie/603/similar":
			_, _ = w.Write([]byte(`{"results":[{"id":604,"title":"The Matrix Reloaded"},{"id":605,"title":"The Matrix Revolutions"}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	found, err := client.Search(context.Background(), " matrix ")
	if err != nil || len(found) != 1 || found[0].ID != "603" {
		t.Errorf("Search() = %v, %v", found, err)
	}

	empty, err := client.Search(context.Background(), "  ")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("Search(blank) = %v, %v; want empty non-nil", empty, err)
	}

	similar, err := client.Similar(context.Background(), "603")
	if err != nil || len(similar) != 2 {
		t.Errorf("Similar() = %v, %v", similar, err)
	}
}

func TestUpstreamRetriesRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"page":1,"total_pages":1,"results":[{"id":1,"title":"Finally"}]}`))
	})

	page, err := client.Movies(context.Background(), 1)
	if err != nil {
		t.Fatalf("Movies() error = %v", err)
	}
	if len(page.Movies) != 1 {
		t.Errorf("len(Movies) = %d, want 1", len(page.Movies))
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream calls = %d, want 3", got)
	}
}

func TestUpstreamRateLimitExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Movies(context.Background(), 1)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("Movies() error = %v, want 429 StatusError", err)
	}
	if !statusErr.IsRetryable() {
		t.Error("429 should be retryable")
	}
	// MaxRetries=2 means three attempts.
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream calls = %d, want 3", got)
	}
}

func TestUpstreamCachesResponses(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"page":1,"total_pages":1,"results":[{"id":1,"title":"Cached"}]}`))
	})

	for i := 0; i < 3; i++ {
		if _, err := client.Movies(context.Background(), 1); err != nil {
			t.Fatalf("Movies() error = %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1 (cached)", got)
	}

	client.PurgeCache()
	if _, err := client.Movies(context.Background(), 1); err != nil {
		t.Fatalf("Movies() error = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls after purge = %d, want 2", got)
	}
}

func TestUpstreamErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	})

	if _, err := client.Movies(context.Background(), 1); err == nil {
		t.Fatal("expected error on first call")
	}
	if _, err := client.Movies(context.Background(), 1); err != nil {
		t.Fatalf("second call error = %v", err)
	}
}

func TestUpstreamCanceledContext(t *testing.T) {
	t.Parallel()

	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Movies(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Movies() error = %v, want context.Canceled", err)
	}
}

func TestReadBodyForError(t *testing.T) {
	t.Parallel()

	short := readBodyForError(strings.NewReader("boom"))
	if string(short) != "boom" {
		t.Errorf("readBodyForError(short) = %q", short)
	}

	long := readBodyForError(strings.NewReader(strings.Repeat("x", maxErrorBodySize+10)))
	if !strings.HasSuffix(string(long), "... (truncated)") {
		t.Error("long body should be marked truncated")
	}
	if len(long) > maxErrorBodySize+len("\n... (truncated)") {
		t.Errorf("len = %d exceeds bound", len(long))
	}
}

func TestIMDbClientListings(t *testing.T) {
	t.Parallel()

	client := newTestIMDbClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-rapidapi-key") != "rapid-key" || r.Header.Get("x-rapidapi-host") != "imdb236.p.rapidapi.com" {
			t.Errorf("rapidapi headers missing: %v", r.Header)
		}
		switch r.URL.Path {
		case "/api/imdb/top250-movies":
			_, _ = w.Write([]byte(`[{"id":"tt0111161","primaryTitle":"The Shawshank Redemption","genres":["Drama"],"averageRating":9.3,"numVotes":2900000,"startYear":1994}]`))
		case "/api/imdb/most-popular-movies":
			_, _ = w.Write([]byte(`{"results":[{"id":"tt15239678","primaryTitle":"Dune: Part Two","genres":["Action","Adventure","Sci-Fi"],"releaseDate":"2024-03-01"},{"primaryTitle":"missing id"}]}`))
		case "/api/imdb/imdb/top-box-office":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	top, err := client.Top250(ctx)
	if err != nil || len(top) != 1 || top[0].ID != "tt0111161" || top[0].ReleaseYear != 1994 {
		t.Errorf("Top250() = %+v, %v", top, err)
	}

	page, err := client.Movies(ctx, 2)
	if err != nil {
		t.Fatalf("Movies(2) error = %v", err)
	}
	if page.TotalPages != 3 || len(page.Movies) != 1 {
		t.Fatalf("Movies(2) = %+v", page)
	}
	if got := page.Movies[0].Genres; len(got) != 3 || got[2] != GenreScienceFiction {
		t.Errorf("genres = %v", got)
	}

	box, err := client.TopBoxOffice(ctx)
	if err != nil || box == nil || len(box) != 0 {
		t.Errorf("TopBoxOffice() = %v, %v", box, err)
	}

	beyond, err := client.Movies(ctx, 4)
	if err != nil || len(beyond.Movies) != 0 {
		t.Errorf("Movies(4) = %+v, %v; want empty page", beyond, err)
	}
}

func TestIMDbClientMovieAndSearch(t *testing.T) {
	t.Parallel()

	client := newTestIMDbClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/imdb/tt0133093":
			_, _ = w.Write([]byte(`{"id":"tt0133093","primaryTitle":"The Matrix","genres":["Action","Sci-Fi"],"averageRating":8.7}`))
		case "/api/imdb/imdb/search":
			if r.URL.Query().Get("query") != "matrix" {
				t.Errorf("query = %q", r.URL.Query().Get("query"))
			}
			_, _ = w.Write([]byte(`[{"id":"tt0133093","primaryTitle":"The Matrix"}]`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	m, err := client.Movie(ctx, "tt0133093")
	if err != nil || m.Title != "The Matrix" || m.Rating != 8.7 {
		t.Errorf("Movie() = %+v, %v", m, err)
	}
	if _, err := client.Movie(ctx, "tt9999999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Movie(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := client.Movie(ctx, "550"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Movie(tmdb id) error = %v, want ErrNotFound", err)
	}

	found, err := client.Search(ctx, "matrix")
	if err != nil || len(found) != 1 {
		t.Errorf("Search() = %v, %v", found, err)
	}

	if _, err := client.Similar(ctx, "tt0133093"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Similar() error = %v, want ErrUnsupported", err)
	}

	genres, err := client.Genres(ctx)
	if err != nil || len(genres) != len(DefaultGenres) {
		t.Errorf("Genres() = %d genres, %v", len(genres), err)
	}
}

func TestIMDbClientNotConfigured(t *testing.T) {
	t.Parallel()

	cfg := testUpstreamConfig(config.ProviderIMDb)
	cfg.IMDb = config.IMDbConfig{RapidAPIKey: "key-without-host"}
	client := NewIMDbClient(cfg, nil)

	_, err := client.Top250(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Top250() error = %v, want ErrNotConfigured", err)
	}
	if err.Error() != "API keys are not configured" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		provider string
		want     string
		wantErr  bool
	}{
		{config.ProviderTMDB, "tmdb", false},
		{"", "tmdb", false},
		{config.ProviderIMDb, "imdb", false},
		{"omdb", "", true},
	}
	for _, tt := range tests {
		src, err := NewSource(testUpstreamConfig(tt.provider), NewGenreIndex())
		if (err != nil) != tt.wantErr {
			t.Errorf("NewSource(%q) error = %v, wantErr %v", tt.provider, err, tt.wantErr)
			continue
		}
		if err == nil && src.Name() != tt.want {
			t.Errorf("NewSource(%q).Name() = %q, want %q", tt.provider, src.Name(), tt.want)
		}
	}
}
