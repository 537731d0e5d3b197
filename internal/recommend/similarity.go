// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"math"

	"github.com/tomtom215/reelscout/internal/models"
)

// Default normalization scales for the exported comparators.
const (
	defaultRatingScale = 10.0
	defaultYearWindow  = 50.0
)

// GenreSimilarity returns the Jaccard index of the two movies' genre sets.
// It returns 0 when either movie has no genres, so two genre-less movies
// never count as a perfect match.
func GenreSimilarity(a, b *models.Movie) float64 {
	if a == nil || b == nil || len(a.Genres) == 0 || len(b.Genres) == 0 {
		return 0
	}

	setA := make(map[models.GenreID]struct{}, len(a.Genres))
	for _, g := range a.Genres {
		setA[g] = struct{}{}
	}

	union := len(setA)
	intersection := 0
	seen := make(map[models.GenreID]struct{}, len(b.Genres))
	for _, g := range b.Genres {
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		if _, ok := setA[g]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// RatingSimilarity returns 1 - |r1-r2|/10 clamped to [0,1], or 0 when either
// rating is absent.
func RatingSimilarity(a, b *models.Movie) float64 {
	return ratingSimilarity(a, b, defaultRatingScale)
}

// YearSimilarity returns 1 - |y1-y2|/50 clamped to [0,1], or 0 when either
// release year is absent.
func YearSimilarity(a, b *models.Movie) float64 {
	return yearSimilarity(a, b, defaultYearWindow)
}

func ratingSimilarity(a, b *models.Movie, scale float64) float64 {
	if a == nil || b == nil || !hasRating(a.Rating) || !hasRating(b.Rating) || scale <= 0 {
		return 0
	}
	return clamp01(1 - math.Abs(a.Rating-b.Rating)/scale)
}

func yearSimilarity(a, b *models.Movie, window float64) float64 {
	if a == nil || b == nil || a.ReleaseYear <= 0 || b.ReleaseYear <= 0 || window <= 0 {
		return 0
	}
	diff := math.Abs(float64(a.ReleaseYear - b.ReleaseYear))
	return clamp01(1 - diff/window)
}

// hasRating reports whether r is a present rating. Zero, NaN and
// infinities are absent.
func hasRating(r float64) bool {
	return r > 0 && !math.IsInf(r, 0)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
