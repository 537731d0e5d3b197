// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"strings"

	"github.com/tomtom215/reelscout/internal/models"
)

// byGenrePreference scores catalog movies carrying at least one preferred
// genre by match ratio and rating. Duplicate preferred ids count once.
func byGenrePreference(cfg *Config, preferred []models.GenreID, catalog []models.Movie, genres GenreLookup, limit int) []Result {
	results := []Result{}
	if len(preferred) == 0 {
		return results
	}
	limit = resolveLimit(limit, cfg.Genres.DefaultLimit)

	prefSet := make(map[models.GenreID]struct{}, len(preferred))
	for _, g := range preferred {
		prefSet[g] = struct{}{}
	}
	preferredCount := float64(len(prefSet))

	for i := range catalog {
		m := &catalog[i]
		matched := matchingGenres(m, prefSet)
		if len(matched) == 0 {
			continue
		}

		genreScore := 0.0
		if preferredCount > 0 {
			genreScore = float64(len(matched)) / preferredCount
		}
		ratingScore := 0.0
		if hasRating(m.Rating) && cfg.Similarity.RatingScale > 0 {
			ratingScore = m.Rating / cfg.Similarity.RatingScale
		}

		results = append(results, Result{
			Movie:  m,
			Score:  cfg.Genres.MatchWeight*genreScore + cfg.Genres.RatingWeight*ratingScore,
			Reason: genrePickReason(genreNames(genres, matched, 0)),
		})
	}

	return rank(results, limit)
}

func genrePickReason(names []string) string {
	if len(names) == 0 {
		return "Top pick"
	}
	return "Top " + strings.Join(names, ", ") + " pick"
}
