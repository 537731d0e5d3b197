// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"strings"

	"github.com/tomtom215/reelscout/internal/models"
)

const similarFallbackReason = "Similar style and era"

// similarToMovie scores every catalog movie other than target by weighted
// genre, rating and year similarity.
func similarToMovie(cfg *Config, target *models.Movie, catalog []models.Movie, genres GenreLookup, limit int) []Result {
	results := []Result{}
	if target == nil {
		return results
	}
	limit = resolveLimit(limit, cfg.Similar.DefaultLimit)

	targetGenres := make(map[models.GenreID]struct{}, len(target.Genres))
	for _, g := range target.Genres {
		targetGenres[g] = struct{}{}
	}

	for i := range catalog {
		m := &catalog[i]
		if m.ID == target.ID {
			continue
		}

		score := cfg.Similar.GenreWeight*GenreSimilarity(target, m) +
			cfg.Similar.RatingWeight*ratingSimilarity(target, m, cfg.Similarity.RatingScale) +
			cfg.Similar.YearWeight*yearSimilarity(target, m, cfg.Similarity.YearWindow)
		if score <= cfg.Similar.MinScore {
			continue
		}

		results = append(results, Result{
			Movie:  m,
			Score:  score,
			Reason: similarReason(cfg, target, m, genres),
		})
	}

	return rank(results, limit)
}

// similarReason quotes up to MaxReasonGenres shared genre names, in the
// target's genre order.
func similarReason(cfg *Config, target, m *models.Movie, genres GenreLookup) string {
	candidateGenres := make(map[models.GenreID]struct{}, len(m.Genres))
	for _, g := range m.Genres {
		candidateGenres[g] = struct{}{}
	}
	shared := matchingGenres(target, candidateGenres)

	names := genreNames(genres, shared, cfg.Similar.MaxReasonGenres)
	if len(names) == 0 {
		return similarFallbackReason
	}
	return "Similar " + strings.Join(names, ", ") + " movie"
}

// becauseYouWatched resolves movieID in the catalog and delegates to
// similarToMovie. An unknown id yields an empty result.
func becauseYouWatched(cfg *Config, movieID string, catalog []models.Movie, genres GenreLookup, limit int) []Result {
	target := findMovie(catalog, movieID)
	if target == nil {
		return []Result{}
	}
	return similarToMovie(cfg, target, catalog, genres, resolveLimit(limit, cfg.BecauseYouWatched.DefaultLimit))
}

func findMovie(catalog []models.Movie, id string) *models.Movie {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
