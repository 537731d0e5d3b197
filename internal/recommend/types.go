// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/reelscout/internal/models"
)

// Result is a single recommendation.
type Result struct {
	// Movie points into the caller's catalog. The engine never copies or
	// allocates movie data.
	Movie *models.Movie `json:"movie"`

	// Score is the strategy score. Practically within [0,1] but unbounded.
	Score float64 `json:"score"`

	// Reason is a short, non-empty, human-readable justification.
	Reason string `json:"reason"`
}

// GenreLookup resolves genre ids to display names. Misses are tolerated:
// the name is simply omitted from reason text.
type GenreLookup interface {
	GenreName(id models.GenreID) (string, bool)
}

// GenreMap is a map-backed GenreLookup.
type GenreMap map[models.GenreID]string

// GenreName implements GenreLookup.
func (m GenreMap) GenreName(id models.GenreID) (string, bool) {
	name, ok := m[id]
	return name, ok && name != ""
}

// NewGenreMap builds a GenreMap from a genre list. Later duplicates win.
func NewGenreMap(genres []models.Genre) GenreMap {
	m := make(GenreMap, len(genres))
	for _, g := range genres {
		m[g.ID] = g.Name
	}
	return m
}

// Mode selects a recommendation strategy.
type Mode int

const (
	// ModeSimilar ranks movies similar to one target movie.
	ModeSimilar Mode = iota
	// ModeFavorites ranks movies against the taste profile of a favorite set.
	ModeFavorites
	// ModeGenres ranks movies carrying any of a list of preferred genres.
	ModeGenres
	// ModeTrending ranks the whole catalog by rating, popularity and recency.
	ModeTrending
	// ModeBecauseYouWatched resolves a movie id and ranks movies similar to it.
	ModeBecauseYouWatched

	modeCount
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSimilar:
		return "similar"
	case ModeFavorites:
		return "favorites"
	case ModeGenres:
		return "genres"
	case ModeTrending:
		return "trending"
	case ModeBecauseYouWatched:
		return "because_you_watched"
	default:
		return "unknown"
	}
}

// Modes lists every valid mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeSimilar, ModeFavorites, ModeGenres, ModeTrending, ModeBecauseYouWatched}
}

// ParseMode parses a mode wire name. Dashes are accepted in place of
// underscores.
func ParseMode(s string) (Mode, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, m := range Modes() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Errors returned by Engine.Recommend. Strategies themselves never fail.
var (
	ErrUnknownMode    = errors.New("unknown recommendation mode")
	ErrMissingSubject = errors.New("recommendation subject missing")
)

// Request is a strategy invocation routed through Engine.Recommend.
type Request struct {
	// Mode selects the strategy.
	Mode Mode `json:"mode"`

	// Target is the subject movie for ModeSimilar.
	Target *models.Movie `json:"-"`

	// MovieID is the subject id for ModeBecauseYouWatched, and the fallback
	// subject for ModeSimilar when Target is nil.
	MovieID string `json:"movie_id,omitempty"`

	// FavoriteIDs is the read-only favorite set for ModeFavorites.
	FavoriteIDs []string `json:"favorite_ids,omitempty"`

	// GenreIDs is the preferred genre list for ModeGenres.
	GenreIDs []models.GenreID `json:"genre_ids,omitempty"`

	// Catalog is the in-memory catalog to score against.
	Catalog []models.Movie `json:"-"`

	// Genres resolves genre names for reason text. May be nil.
	Genres GenreLookup `json:"-"`

	// Limit bounds the output. Non-positive selects the strategy default.
	Limit int `json:"limit,omitempty"`

	// RequestID is attached to log lines.
	RequestID string `json:"request_id,omitempty"`
}

// Stats is a snapshot of engine counters keyed by mode name.
type Stats struct {
	Requests     map[string]int64 `json:"requests"`
	EmptyResults map[string]int64 `json:"empty_results"`
}
