// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"math"
	"strings"

	"github.com/tomtom215/reelscout/internal/models"
)

const (
	trendingFallbackReason = "Trending now"
	exceptionalReason      = "Exceptional rating"
	highlyPopularReason    = "Highly popular"
	recentReleaseReason    = "Recent release"
)

// trending scores every catalog movie by rating, popularity, vote volume and
// recency relative to currentYear. No threshold applies.
func trending(cfg *Config, catalog []models.Movie, currentYear, limit int) []Result {
	limit = resolveLimit(limit, cfg.Trending.DefaultLimit)
	results := make([]Result, 0, len(catalog))

	for i := range catalog {
		m := &catalog[i]
		score, reasons := trendingScore(cfg, m, currentYear)

		reason := trendingFallbackReason
		if len(reasons) > 0 {
			reason = strings.Join(reasons, cfg.ReasonSeparator)
		}
		results = append(results, Result{Movie: m, Score: score, Reason: reason})
	}

	return rank(results, limit)
}

func trendingScore(cfg *Config, m *models.Movie, currentYear int) (float64, []string) {
	tc := cfg.Trending
	score := 0.0
	var reasons []string

	if hasRating(m.Rating) {
		score += m.Rating / cfg.Similarity.RatingScale * tc.RatingWeight
		if m.Rating >= tc.ExceptionalRating {
			reasons = append(reasons, exceptionalReason)
		}
	}

	if m.Popularity > 0 {
		score += math.Min(m.Popularity/tc.PopularityCap, 1) * tc.PopularityWeight
		if m.Popularity > tc.PopularityCutoff {
			reasons = append(reasons, highlyPopularReason)
		}
	}

	if m.VoteCount > tc.VoteCountCutoff {
		score += tc.VoteCountBonus
	}

	// future release years count as recent
	if m.ReleaseYear > 0 {
		age := currentYear - m.ReleaseYear
		switch {
		case age <= tc.RecentYears:
			score += tc.RecentBonus
			reasons = append(reasons, recentReleaseReason)
		case age <= tc.ModernYears:
			score += tc.ModernBonus
		}
	}

	return score, reasons
}
