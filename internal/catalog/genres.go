// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"strings"
	"sync"

	"github.com/tomtom215/reelscout/internal/models"
)

// TMDB movie genre ids.
const (
	GenreAction         models.GenreID = 28
	GenreAdventure      models.GenreID = 12
	GenreAnimation      models.GenreID = 16
	GenreComedy         models.GenreID = 35
	GenreCrime          models.GenreID = 80
	GenreDocumentary    models.GenreID = 99
	GenreDrama          models.GenreID = 18
	GenreFamily         models.GenreID = 10751
	GenreFantasy        models.GenreID = 14
	GenreHistory        models.GenreID = 36
	GenreHorror         models.GenreID = 27
	GenreMusic          models.GenreID = 10402
	GenreMystery        models.GenreID = 9648
	GenreRomance        models.GenreID = 10749
	GenreScienceFiction models.GenreID = 878
	GenreTVMovie        models.GenreID = 10770
	GenreThriller       models.GenreID = 53
	GenreWar            models.GenreID = 10752
	GenreWestern        models.GenreID = 37
)

// Extended ids for genres IMDb reports but TMDB does not list.
const (
	GenreBiography models.GenreID = 90001 + iota
	GenreSport
	GenreMusical
	GenreFilmNoir
	GenreNews
	GenreRealityTV
	GenreTalkShow
	GenreGameShow
	GenreAdult
	GenreShort
)

// DefaultGenres is the built-in genre list: TMDB movie genres followed by
// the extended IMDb-only genres.
var DefaultGenres = []models.Genre{
	{ID: GenreAction, Name: "Action"},
	{ID: GenreAdventure, Name: "Adventure"},
	{ID: GenreAnimation, Name: "Animation"},
	{ID: GenreComedy, Name: "Comedy"},
	{ID: GenreCrime, Name: "Crime"},
	{ID: GenreDocumentary, Name: "Documentary"},
	{ID: GenreDrama, Name: "Drama"},
	{ID: GenreFamily, Name: "Family"},
	{ID: GenreFantasy, Name: "Fantasy"},
	{ID: GenreHistory, Name: "History"},
	{ID: GenreHorror, Name: "Horror"},
	{ID: GenreMusic, Name: "Music"},
	{ID: GenreMystery, Name: "Mystery"},
	{ID: GenreRomance, Name: "Romance"},
	{ID: GenreScienceFiction, Name: "Science Fiction"},
	{ID: GenreTVMovie, Name: "TV Movie"},
	{ID: GenreThriller, Name: "Thriller"},
	{ID: GenreWar, Name: "War"},
	{ID: GenreWestern, Name: "Western"},
	{ID: GenreBiography, Name: "Biography"},
	{ID: GenreSport, Name: "Sport"},
	{ID: GenreMusical, Name: "Musical"},
	{ID: GenreFilmNoir, Name: "Film-Noir"},
	{ID: GenreNews, Name: "News"},
	{ID: GenreRealityTV, Name: "Reality-TV"},
	{ID: GenreTalkShow, Name: "Talk-Show"},
	{ID: GenreGameShow, Name: "Game-Show"},
	{ID: GenreAdult, Name: "Adult"},
	{ID: GenreShort, Name: "Short"},
}

// genreAliases maps alternate spellings (normalized) onto genre ids.
var genreAliases = map[string]models.GenreID{
	"sci fi":    GenreScienceFiction,
	"scifi":     GenreScienceFiction,
	"sf":        GenreScienceFiction,
	"tv film":   GenreTVMovie,
	"noir":      GenreFilmNoir,
	"sports":    GenreSport,
	"biopic":    GenreBiography,
	"war film":  GenreWar,
	"animated":  GenreAnimation,
	"reality":   GenreRealityTV,
	"game show": GenreGameShow,
}

// GenreIndex resolves genre ids to names and names to ids. It is safe for
// concurrent use and implements recommend.GenreLookup.
type GenreIndex struct {
	mu     sync.RWMutex
	order  []models.GenreID
	names  map[models.GenreID]string
	byName map[string]models.GenreID
}

// NewGenreIndex returns an index seeded with DefaultGenres and the aliases.
func NewGenreIndex() *GenreIndex {
	idx := &GenreIndex{
		names:  make(map[models.GenreID]string, len(DefaultGenres)),
		byName: make(map[string]models.GenreID, len(DefaultGenres)+len(genreAliases)),
	}
	for alias, id := range genreAliases {
		idx.byName[alias] = id
	}
	idx.Merge(DefaultGenres)
	return idx
}

// Merge adds genres to the index. Names supplied upstream replace the
// built-in display name for the same id.
func (idx *GenreIndex) Merge(genres []models.Genre) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, g := range genres {
		if g.Name == "" {
			continue
		}
		if _, ok := idx.names[g.ID]; !ok {
			idx.order = append(idx.order, g.ID)
		}
		idx.names[g.ID] = g.Name
		idx.byName[normalizeGenreName(g.Name)] = g.ID
	}
}

// GenreName implements recommend.GenreLookup.
func (idx *GenreIndex) GenreName(id models.GenreID) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	name, ok := idx.names[id]
	return name, ok
}

// Lookup resolves a genre name or alias, case-insensitively.
func (idx *GenreIndex) Lookup(name string) (models.GenreID, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	id, ok := idx.byName[normalizeGenreName(name)]
	return id, ok
}

// Resolve maps genre names to ids in order, dropping duplicates. Names that
// resolve nowhere are returned separately.
func (idx *GenreIndex) Resolve(names []string) (ids []models.GenreID, unknown []string) {
	ids = make([]models.GenreID, 0, len(names))
	seen := make(map[models.GenreID]struct{}, len(names))
	for _, name := range names {
		id, ok := idx.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, unknown
}

// Genres returns the known genres in insertion order.
func (idx *GenreIndex) Genres() []models.Genre {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]models.Genre, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, models.Genre{ID: id, Name: idx.names[id]})
	}
	return out
}

// Len returns the number of known genres.
func (idx *GenreIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.order)
}

// normalizeGenreName lowercases and folds '-' and '_' into spaces so that
// "Sci-Fi", "sci_fi" and "SCI FI" compare equal.
func normalizeGenreName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
