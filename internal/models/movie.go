// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package models

// GenreID identifies a genre. TMDB movie genre ids are the canonical id
// space; genres known only by name are mapped into it by the catalog layer.
type GenreID int

// Genre is an entry in the genre catalog.
type Genre struct {
	ID   GenreID `json:"id"`
	Name string  `json:"name"`
}

// Source identifiers for Movie.Source.
const (
	SourceTMDB = "tmdb"
	SourceIMDb = "imdb"
)

// Movie is the canonical movie record shared by the catalog, the favorites
// store and the recommendation engine. Every upstream shape is adapted into
// this one struct at the catalog boundary.
//
// Zero values mean "absent": a Rating, Popularity or ReleaseYear of 0 is
// treated as missing data by the scoring engine, never as a real value.
type Movie struct {
	// ID is the stable identifier. TMDB numeric ids are rendered in decimal,
	// IMDb ids (tt0111161) are kept verbatim.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// OriginalTitle is the title in the original language, if different.
	OriginalTitle string `json:"original_title,omitempty"`

	// Overview is the plot summary.
	Overview string `json:"overview,omitempty"`

	// Genres is the ordered list of genre ids as supplied by the source.
	Genres []GenreID `json:"genres"`

	// Rating is the average user rating on a 0-10 scale.
	Rating float64 `json:"rating"`

	// VoteCount is the number of ratings behind Rating.
	VoteCount int64 `json:"vote_count"`

	// Popularity is the source's popularity magnitude (TMDB popularity).
	Popularity float64 `json:"popularity"`

	// ReleaseDate is the release date as reported upstream (YYYY-MM-DD).
	ReleaseDate string `json:"release_date,omitempty"`

	// ReleaseYear is the release year, 0 when unknown.
	ReleaseYear int `json:"release_year,omitempty"`

	// PosterURL is an absolute poster image URL.
	PosterURL string `json:"poster_url,omitempty"`

	// BackdropURL is an absolute backdrop image URL.
	BackdropURL string `json:"backdrop_url,omitempty"`

	// Adult marks adult content.
	Adult bool `json:"adult,omitempty"`

	// Source names the upstream the record came from (tmdb, imdb).
	Source string `json:"source,omitempty"`
}

// HasGenre reports whether the movie carries the given genre.
func (m *Movie) HasGenre(id GenreID) bool {
	for _, g := range m.Genres {
		if g == id {
			return true
		}
	}
	return false
}
