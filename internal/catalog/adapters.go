// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/models"
)

// TMDBMovie is a movie as returned by the TMDB list and detail endpoints.
// List endpoints carry genre_ids, the detail endpoint carries genres.
type TMDBMovie struct {
	Adult            bool           `json:"adult"`
	BackdropPath     string         `json:"backdrop_path"`
	GenreIDs         []int          `json:"genre_ids"`
	Genres           []models.Genre `json:"genres,omitempty"`
	ID               int64          `json:"id"`
	OriginalLanguage string         `json:"original_language"`
	OriginalTitle    string         `json:"original_title"`
	Overview         string         `json:"overview"`
	Popularity       float64        `json:"popularity"`
	PosterPath       string         `json:"poster_path"`
	ReleaseDate      string         `json:"release_date"`
	Title            string         `json:"title"`
	Video            bool           `json:"video"`
	VoteAverage      float64        `json:"vote_average"`
	VoteCount        int64          `json:"vote_count"`
}

// TMDBMoviesResponse is a paged TMDB movie list.
type TMDBMoviesResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// TMDBGenresResponse is the TMDB genre list.
type TMDBGenresResponse struct {
	Genres []models.Genre `json:"genres"`
}

// IMDbThumbnail is a sized poster variant.
type IMDbThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// IMDbMovie is a title as returned by the RapidAPI IMDb endpoints.
type IMDbMovie struct {
	ID                string          `json:"id"`
	URL               string          `json:"url"`
	PrimaryTitle      string          `json:"primaryTitle"`
	OriginalTitle     string          `json:"originalTitle"`
	Type              string          `json:"type"`
	Description       string          `json:"description"`
	PrimaryImage      string          `json:"primaryImage"`
	Thumbnails        []IMDbThumbnail `json:"thumbnails"`
	ContentRating     string          `json:"contentRating"`
	StartYear         int             `json:"startYear"`
	EndYear           int             `json:"endYear"`
	ReleaseDate       string          `json:"releaseDate"`
	Interests         []string        `json:"interests"`
	CountriesOfOrigin []string        `json:"countriesOfOrigin"`
	Genres            []string        `json:"genres"`
	IsAdult           bool            `json:"isAdult"`
	RuntimeMinutes    int             `json:"runtimeMinutes"`
	AverageRating     float64         `json:"averageRating"`
	NumVotes          int64           `json:"numVotes"`
	Metascore         int             `json:"metascore"`
}

// FromTMDB adapts a TMDB movie. imageBase is the sized image prefix, for
// example https://image.tmdb.org/t/p/w500.
func FromTMDB(m *TMDBMovie, imageBase string) models.Movie {
	genres := make([]models.GenreID, 0, len(m.GenreIDs)+len(m.Genres))
	for _, id := range m.GenreIDs {
		genres = append(genres, models.GenreID(id))
	}
	if len(genres) == 0 {
		for _, g := range m.Genres {
			genres = append(genres, g.ID)
		}
	}

	return models.Movie{
		ID:            strconv.FormatInt(m.ID, 10),
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Overview:      m.Overview,
		Genres:        genres,
		Rating:        sanitizeRating(m.VoteAverage),
		VoteCount:     m.VoteCount,
		Popularity:    m.Popularity,
		ReleaseDate:   m.ReleaseDate,
		ReleaseYear:   parseYear(m.ReleaseDate, 0),
		PosterURL:     imageURL(imageBase, m.PosterPath),
		BackdropURL:   imageURL(imageBase, m.BackdropPath),
		Adult:         m.Adult,
		Source:        models.SourceTMDB,
	}
}

// FromIMDb adapts a RapidAPI IMDb title. Genre names that idx cannot resolve
// are dropped.
func FromIMDb(m *IMDbMovie, idx *GenreIndex) models.Movie {
	genres, unknown := idx.Resolve(m.Genres)
	if len(unknown) > 0 {
		logging.Debug().Str("id", m.ID).Strs("genres", unknown).Msg("Dropping unknown IMDb genres")
	}

	poster := m.PrimaryImage
	if poster == "" && len(m.Thumbnails) > 0 {
		poster = m.Thumbnails[0].URL
	}

	return models.Movie{
		ID:            m.ID,
		Title:         m.PrimaryTitle,
		OriginalTitle: m.OriginalTitle,
		Overview:      m.Description,
		Genres:        genres,
		Rating:        sanitizeRating(m.AverageRating),
		VoteCount:     m.NumVotes,
		ReleaseDate:   m.ReleaseDate,
		ReleaseYear:   parseYear(m.ReleaseDate, m.StartYear),
		PosterURL:     poster,
		Adult:         m.IsAdult,
		Source:        models.SourceIMDb,
	}
}

// parseYear extracts the year from YYYY-MM-DD or YYYY, falling back when
// the date is missing or malformed.
func parseYear(date string, fallback int) int {
	date = strings.TrimSpace(date)
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil && y > 0 {
			return y
		}
	}
	if fallback > 0 {
		return fallback
	}
	return 0
}

func imageURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// sanitizeRating maps NaN and out-of-range ratings to 0, the absent value.
func sanitizeRating(r float64) float64 {
	if math.IsNaN(r) || r < 0 || r > 10 {
		return 0
	}
	return r
}
