// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/models"
)

// fakeSource serves fixed pages and can fail selected pages.
type fakeSource struct {
	pages      [][]models.Movie
	failPages  map[int]error
	genresErr  error
	pageCalls  int
	genreCalls int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Genres(_ context.Context) ([]models.Genre, error) {
	f.genreCalls++
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	return []models.Genre{{ID: 28, Name: "Action"}}, nil
}

func (f *fakeSource) Movies(_ context.Context, page int) (*MoviePage, error) {
	f.pageCalls++
	if err := f.failPages[page]; err != nil {
		return nil, err
	}
	if page > len(f.pages) {
		return &MoviePage{Page: page, TotalPages: len(f.pages), Movies: []models.Movie{}}, nil
	}
	return &MoviePage{Page: page, TotalPages: len(f.pages), Movies: f.pages[page-1]}, nil
}

func (f *fakeSource) Movie(_ context.Context, id string) (*models.Movie, error) {
	for _, p := range f.pages {
		for i := range p {
			if p[i].ID == id {
				return &p[i], nil
			}
		}
	}
	return nil, ErrNotFound
}

func (f *fakeSource) Search(_ context.Context, _ string) ([]models.Movie, error) {
	return []models.Movie{}, nil
}

func (f *fakeSource) Similar(_ context.Context, _ string) ([]models.Movie, error) {
	return nil, ErrUnsupported
}

func moviePage(ids ...int) []models.Movie {
	out := make([]models.Movie, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Movie{ID: strconv.Itoa(id), Title: fmt.Sprintf("Movie %d", id)})
	}
	return out
}

func TestLoaderLoadPages(t *testing.T) {
	t.Parallel()

	src := &fakeSource{pages: [][]models.Movie{moviePage(1, 2), moviePage(2, 3), moviePage(4), moviePage(5)}}
	store := NewStore()
	loader := NewLoader(src, store, NewGenreIndex(), &config.CatalogConfig{Pages: 3}, testImageBase)

	snap, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ids(snap.Movies); len(got) != 4 || got[3] != "4" {
		t.Errorf("movies = %v, want [1 2 3 4]", got)
	}
	if src.pageCalls != 3 {
		t.Errorf("page calls = %d, want 3", src.pageCalls)
	}
	if snap.Source != "fake" || snap.Version != 1 {
		t.Errorf("snapshot metadata = %s v%d", snap.Source, snap.Version)
	}
	if cur, _ := store.Current(); cur != snap {
		t.Error("snapshot not published")
	}
}

func TestLoaderStopsAtTotalPages(t *testing.T) {
	t.Parallel()

	src := &fakeSource{pages: [][]models.Movie{moviePage(1)}}
	loader := NewLoader(src, NewStore(), nil, &config.CatalogConfig{Pages: 5}, "")

	if _, err := loader.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if src.pageCalls != 1 {
		t.Errorf("page calls = %d, want 1", src.pageCalls)
	}
}

func TestLoaderPartialFailureKeepsLoadedPages(t *testing.T) {
	t.Parallel()

	src := &fakeSource{
		pages:     [][]models.Movie{moviePage(1), moviePage(2), moviePage(3)},
		failPages: map[int]error{2: errors.New("upstream hiccup")},
		genresErr: errors.New("genres down"),
	}
	loader := NewLoader(src, NewStore(), nil, &config.CatalogConfig{Pages: 3}, "")

	snap, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ids(snap.Movies); len(got) != 1 || got[0] != "1" {
		t.Errorf("movies = %v, want [1]", got)
	}
	if len(snap.Genres) != len(DefaultGenres) {
		t.Errorf("genres = %d, want built-in list", len(snap.Genres))
	}
}

func TestLoaderFailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()

	src := &fakeSource{pages: [][]models.Movie{moviePage(1, 2)}}
	store := NewStore()
	loader := NewLoader(src, store, nil, &config.CatalogConfig{Pages: 1}, "")

	first, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("first Load() error = %v", err)
	}

	src.failPages = map[int]error{1: errors.New("upstream down")}
	if _, err := loader.Load(context.Background()); err == nil {
		t.Fatal("second Load() should fail")
	}
	if cur, _ := store.Current(); cur != first {
		t.Error("failed load replaced the current snapshot")
	}
}

func TestLoaderNotConfigured(t *testing.T) {
	t.Parallel()

	src := &fakeSource{genresErr: ErrNotConfigured}
	loader := NewLoader(src, NewStore(), nil, &config.CatalogConfig{Pages: 1}, "")

	if _, err := loader.Load(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Load() error = %v, want ErrNotConfigured", err)
	}
	if src.pageCalls != 0 {
		t.Errorf("page calls = %d, want 0", src.pageCalls)
	}
}

func TestLoaderNoSource(t *testing.T) {
	t.Parallel()

	loader := NewLoader(nil, NewStore(), nil, &config.CatalogConfig{Pages: 1}, "")
	if _, err := loader.Load(context.Background()); err == nil {
		t.Error("Load() without source or file should fail")
	}
}

func TestLoaderFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"page":1,"genres":[{"id":28,"name":"Action"}],"results":[
		{"id":603,"title":"The Matrix","genre_ids":[28,878],"vote_average":8.2,"release_date":"1999-03-30","poster_path":"/m.jpg"},
		{"id":603,"title":"The Matrix (dup)","genre_ids":[28]}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(nil, NewStore(), nil, &config.CatalogConfig{Pages: 1, File: path}, testImageBase)
	snap, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.Source != SourceFile || snap.Len() != 1 {
		t.Fatalf("snapshot = %s with %d movies", snap.Source, snap.Len())
	}
	m, _ := snap.Find("603")
	if m.ReleaseYear != 1999 || m.PosterURL != testImageBase+"/m.jpg" {
		t.Errorf("movie = %+v", m)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	t.Parallel()

	loader := NewLoader(nil, NewStore(), nil, &config.CatalogConfig{File: filepath.Join(t.TempDir(), "nope.json")}, "")
	if _, err := loader.Load(context.Background()); err == nil {
		t.Error("Load() with missing file should fail")
	}
}

func TestParseCatalogShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		doc        string
		wantIDs    []string
		wantSource string
		wantErr    bool
	}{
		{
			name:       "tmdb array",
			doc:        `[{"id":1,"title":"A","genre_ids":[18],"vote_average":7}]`,
			wantIDs:    []string{"1"},
			wantSource: models.SourceTMDB,
		},
		{
			name:       "imdb array",
			doc:        `[{"id":"tt0111161","primaryTitle":"The Shawshank Redemption","genres":["Drama"]}]`,
			wantIDs:    []string{"tt0111161"},
			wantSource: models.SourceIMDb,
		},
		{
			name:    "native movies object",
			doc:     `{"movies":[{"id":"x1","title":"Native","genres":[18],"rating":6.5}]}`,
			wantIDs: []string{"x1"},
		},
		{name: "empty", doc: "  ", wantErr: true},
		{name: "garbage", doc: "{not json", wantErr: true},
		{name: "bad entry", doc: `[{"id":"x","rating":"high"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			movies, err := ParseCatalog([]byte(tt.doc), nil, testImageBase)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCatalog() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got := ids(movies)
			if len(got) != len(tt.wantIDs) || got[0] != tt.wantIDs[0] {
				t.Errorf("ids = %v, want %v", got, tt.wantIDs)
			}
			if movies[0].Source != tt.wantSource {
				t.Errorf("source = %q, want %q", movies[0].Source, tt.wantSource)
			}
		})
	}
}
