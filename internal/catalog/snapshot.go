// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/tomtom215/reelscout/internal/models"
)

// Snapshot is an immutable catalog generation. Callers must not modify the
// Movies slice; the recommendation engine reads it concurrently.
type Snapshot struct {
	Movies   []models.Movie `json:"movies"`
	Genres   []models.Genre `json:"genres"`
	Version  uint64         `json:"version"`
	LoadedAt time.Time      `json:"loaded_at"`
	Source   string         `json:"source"`

	byID       map[string]int
	genreNames map[models.GenreID]string
}

// NewSnapshot builds a snapshot. Movies are de-duplicated by id keeping the
// first occurrence; movies without an id are dropped.
func NewSnapshot(movies []models.Movie, genres []models.Genre, source string, version uint64, loadedAt time.Time) *Snapshot {
	s := &Snapshot{
		Movies:     make([]models.Movie, 0, len(movies)),
		Genres:     append([]models.Genre(nil), genres...),
		Version:    version,
		LoadedAt:   loadedAt,
		Source:     source,
		byID:       make(map[string]int, len(movies)),
		genreNames: make(map[models.GenreID]string, len(genres)),
	}
	for i := range movies {
		id := movies[i].ID
		if id == "" {
			continue
		}
		if _, dup := s.byID[id]; dup {
			continue
		}
		s.byID[id] = len(s.Movies)
		s.Movies = append(s.Movies, movies[i])
	}
	for _, g := range s.Genres {
		s.genreNames[g.ID] = g.Name
	}
	return s
}

// Len returns the number of movies.
func (s *Snapshot) Len() int { return len(s.Movies) }

// GenreName implements recommend.GenreLookup.
func (s *Snapshot) GenreName(id models.GenreID) (string, bool) {
	name, ok := s.genreNames[id]
	return name, ok && name != ""
}

// Find returns the movie with the given id.
func (s *Snapshot) Find(id string) (*models.Movie, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.Movies[i], true
}

// Search returns movies whose title, overview or genre names contain query,
// case-insensitively, in catalog order. An empty query matches everything.
func (s *Snapshot) Search(query string) []models.Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Movies
	}

	out := make([]models.Movie, 0)
	for i := range s.Movies {
		if s.matches(&s.Movies[i], q) {
			out = append(out, s.Movies[i])
		}
	}
	return out
}

func (s *Snapshot) matches(m *models.Movie, q string) bool {
	if strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Overview), q) {
		return true
	}
	for _, g := range m.Genres {
		if name, ok := s.genreNames[g]; ok && strings.Contains(strings.ToLower(name), q) {
			return true
		}
	}
	return false
}

// FilterByGenre returns the movies carrying genre id, in catalog order.
func (s *Snapshot) FilterByGenre(id models.GenreID) []models.Movie {
	return FilterByGenre(s.Movies, id)
}

// Page returns a window of the catalog.
func (s *Snapshot) Page(offset, limit int) []models.Movie {
	return Paginate(s.Movies, offset, limit)
}

// FilterByGenre returns the movies carrying genre id, in input order.
func FilterByGenre(movies []models.Movie, id models.GenreID) []models.Movie {
	out := make([]models.Movie, 0)
	for i := range movies {
		if movies[i].HasGenre(id) {
			out = append(out, movies[i])
		}
	}
	return out
}

// Paginate returns movies[offset:offset+limit], clamped to bounds.
// A non-positive limit returns everything after offset.
func Paginate(movies []models.Movie, offset, limit int) []models.Movie {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(movies) {
		return []models.Movie{}
	}
	end := len(movies)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return movies[offset:end]
}

// Store holds the current snapshot and swaps generations atomically.
type Store struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the current snapshot or ErrNotLoaded.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Loaded reports whether a snapshot has been published.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}

// Publish builds the next snapshot generation and makes it current.
func (s *Store) Publish(movies []models.Movie, genres []models.Genre, source string, loadedAt time.Time) *Snapshot {
	snap := NewSnapshot(movies, genres, source, s.version.Add(1), loadedAt)
	s.current.Store(snap)
	return snap
}
