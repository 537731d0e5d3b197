// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/reelscout/internal/models"
)

const (
	favoritesFallbackReason = "Recommended for you"
	highlyRatedReason       = "Highly rated"
	popularChoiceReason     = "Popular choice"
)

// tasteProfile summarizes a favorite set.
type tasteProfile struct {
	topGenres map[models.GenreID]struct{}
	avgRating float64
}

// buildTasteProfile derives the most frequent genres and the mean rating of
// the resolved favorites. Frequency ties keep first-encountered order.
func buildTasteProfile(favorites []*models.Movie, topN int) tasteProfile {
	counts := make(map[models.GenreID]int)
	var order []models.GenreID
	total := 0.0

	for _, m := range favorites {
		for _, g := range m.Genres {
			if _, ok := counts[g]; !ok {
				order = append(order, g)
			}
			counts[g]++
		}
		// absent ratings contribute zero to the mean
		if hasRating(m.Rating) {
			total += m.Rating
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}

	top := make(map[models.GenreID]struct{}, len(order))
	for _, g := range order {
		top[g] = struct{}{}
	}

	avg := 0.0
	if len(favorites) > 0 {
		avg = total / float64(len(favorites))
	}
	return tasteProfile{topGenres: top, avgRating: avg}
}

// fromFavorites scores every non-favorite catalog movie against the taste
// profile of the favorites found in the catalog.
func fromFavorites(cfg *Config, favoriteIDs []string, catalog []models.Movie, genres GenreLookup, limit int) []Result {
	results := []Result{}
	if len(favoriteIDs) == 0 {
		return results
	}
	limit = resolveLimit(limit, cfg.Favorites.DefaultLimit)

	favSet := idSet(favoriteIDs)
	var favorites []*models.Movie
	for i := range catalog {
		if _, ok := favSet[catalog[i].ID]; ok {
			favorites = append(favorites, &catalog[i])
		}
	}
	if len(favorites) == 0 {
		return results
	}

	profile := buildTasteProfile(favorites, cfg.Favorites.TopGenres)

	for i := range catalog {
		m := &catalog[i]
		if _, ok := favSet[m.ID]; ok {
			continue
		}

		score, reasons := scoreAgainstProfile(cfg, m, profile, genres)
		if score <= cfg.Favorites.MinScore {
			continue
		}

		reason := favoritesFallbackReason
		if len(reasons) > 0 {
			reason = strings.Join(reasons, cfg.ReasonSeparator)
		}
		results = append(results, Result{Movie: m, Score: score, Reason: reason})
	}

	return rank(results, limit)
}

func scoreAgainstProfile(cfg *Config, m *models.Movie, profile tasteProfile, genres GenreLookup) (float64, []string) {
	fc := cfg.Favorites
	score := 0.0
	var reasons []string

	if matched := matchingGenres(m, profile.topGenres); len(matched) > 0 {
		score += float64(len(matched)) * fc.GenreMatchWeight
		if names := genreNames(genres, matched, 0); len(names) > 0 {
			reasons = append(reasons, strings.Join(names, ", ")+" fan favorite")
		}
	}

	if hasRating(m.Rating) && math.Abs(m.Rating-profile.avgRating) < fc.RatingProximityWindow {
		score += fc.RatingProximityBonus
	}

	if hasRating(m.Rating) && m.Rating >= fc.HighRatingThreshold {
		score += fc.HighRatingBonus
		reasons = append(reasons, highlyRatedReason)
	}

	if m.VoteCount > fc.PopularVoteCutoff {
		score += fc.PopularBonus
		reasons = append(reasons, popularChoiceReason)
	}

	return score, reasons
}
