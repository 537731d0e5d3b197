// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"fmt"
)

// Config contains every weight, threshold and limit used by the scoring
// strategies. The defaults reproduce the product's tuned constants; none of
// them is derived, so all are overridable.
type Config struct {
	// Similarity contains the normalization scales of the pairwise comparators.
	Similarity SimilarityConfig `json:"similarity" koanf:"similarity"`

	// Similar contains parameters for the similar-to-movie strategy.
	Similar SimilarConfig `json:"similar" koanf:"similar"`

	// Favorites contains parameters for the from-favorites strategy.
	Favorites FavoritesConfig `json:"favorites" koanf:"favorites"`

	// Genres contains parameters for the by-genre-preference strategy.
	Genres GenrePreferenceConfig `json:"genres" koanf:"genres"`

	// Trending contains parameters for the trending strategy.
	Trending TrendingConfig `json:"trending" koanf:"trending"`

	// BecauseYouWatched contains parameters for the because-you-watched strategy.
	BecauseYouWatched BecauseYouWatchedConfig `json:"because_you_watched" koanf:"because_you_watched"`

	// ReasonSeparator joins multiple reason fragments.
	// Default: " • "
	ReasonSeparator string `json:"reason_separator" koanf:"reason_separator"`
}

// SimilarityConfig holds the scales used to normalize attribute distances.
type SimilarityConfig struct {
	// RatingScale is the width of the rating scale. A rating gap of this size
	// yields zero rating similarity.
	// Default: 10
	RatingScale float64 `json:"rating_scale" koanf:"rating_scale"`

	// YearWindow is the release-year gap at which year similarity reaches zero.
	// Default: 50
	YearWindow float64 `json:"year_window" koanf:"year_window"`
}

// SimilarConfig configures similar-to-movie scoring:
// GenreWeight*genreSim + RatingWeight*ratingSim + YearWeight*yearSim.
type SimilarConfig struct {
	// Default: 0.5
	GenreWeight float64 `json:"genre_weight" koanf:"genre_weight"`

	// Default: 0.3
	RatingWeight float64 `json:"rating_weight" koanf:"rating_weight"`

	// Default: 0.2
	YearWeight float64 `json:"year_weight" koanf:"year_weight"`

	// MinScore is the exclusive inclusion threshold.
	// Default: 0.3
	MinScore float64 `json:"min_score" koanf:"min_score"`

	// MaxReasonGenres caps the shared genre names quoted in the reason.
	// Default: 2
	MaxReasonGenres int `json:"max_reason_genres" koanf:"max_reason_genres"`

	// DefaultLimit applies when the caller passes a non-positive limit.
	// Default: 10
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`
}

// FavoritesConfig configures from-favorites scoring.
type FavoritesConfig struct {
	// TopGenres is how many of the most frequent favorite genres form the
	// taste profile.
	// Default: 3
	TopGenres int `json:"top_genres" koanf:"top_genres"`

	// GenreMatchWeight is added once per matching top genre.
	// Default: 0.4
	GenreMatchWeight float64 `json:"genre_match_weight" koanf:"genre_match_weight"`

	// RatingProximityWindow is the exclusive distance from the average
	// favorite rating that earns RatingProximityBonus.
	// Default: 1.5
	RatingProximityWindow float64 `json:"rating_proximity_window" koanf:"rating_proximity_window"`

	// Default: 0.3
	RatingProximityBonus float64 `json:"rating_proximity_bonus" koanf:"rating_proximity_bonus"`

	// HighRatingThreshold is the inclusive rating that earns HighRatingBonus.
	// Default: 8.0
	HighRatingThreshold float64 `json:"high_rating_threshold" koanf:"high_rating_threshold"`

	// Default: 0.2
	HighRatingBonus float64 `json:"high_rating_bonus" koanf:"high_rating_bonus"`

	// PopularVoteCutoff is the exclusive vote count above which a movie counts
	// as a popular choice.
	// Default: 5000
	PopularVoteCutoff int64 `json:"popular_vote_cutoff" koanf:"popular_vote_cutoff"`

	// Default: 0.1
	PopularBonus float64 `json:"popular_bonus" koanf:"popular_bonus"`

	// MinScore is the exclusive inclusion threshold.
	// Default: 0.4
	MinScore float64 `json:"min_score" koanf:"min_score"`

	// Default: 10
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`
}

// GenrePreferenceConfig configures by-genre-preference scoring:
// MatchWeight*(matches/preferred) + RatingWeight*(rating/scale).
type GenrePreferenceConfig struct {
	// Default: 0.6
	MatchWeight float64 `json:"match_weight" koanf:"match_weight"`

	// Default: 0.4
	RatingWeight float64 `json:"rating_weight" koanf:"rating_weight"`

	// Default: 10
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`
}

// TrendingConfig configures trending scoring.
type TrendingConfig struct {
	// Default: 0.4
	RatingWeight float64 `json:"rating_weight" koanf:"rating_weight"`

	// ExceptionalRating is the inclusive rating quoted as "Exceptional rating".
	// Default: 8.5
	ExceptionalRating float64 `json:"exceptional_rating" koanf:"exceptional_rating"`

	// Default: 0.3
	PopularityWeight float64 `json:"popularity_weight" koanf:"popularity_weight"`

	// PopularityCap normalizes popularity into [0,1].
	// Default: 1000
	PopularityCap float64 `json:"popularity_cap" koanf:"popularity_cap"`

	// PopularityCutoff is the exclusive popularity quoted as "Highly popular".
	// Default: 500
	PopularityCutoff float64 `json:"popularity_cutoff" koanf:"popularity_cutoff"`

	// VoteCountCutoff is the exclusive vote count that earns VoteCountBonus.
	// Default: 10000
	VoteCountCutoff int64 `json:"vote_count_cutoff" koanf:"vote_count_cutoff"`

	// Default: 0.1
	VoteCountBonus float64 `json:"vote_count_bonus" koanf:"vote_count_bonus"`

	// RecentYears is the inclusive age in years quoted as "Recent release".
	// Default: 5
	RecentYears int `json:"recent_years" koanf:"recent_years"`

	// Default: 0.3
	RecentBonus float64 `json:"recent_bonus" koanf:"recent_bonus"`

	// ModernYears is the inclusive age in years that earns ModernBonus.
	// Default: 10
	ModernYears int `json:"modern_years" koanf:"modern_years"`

	// Default: 0.15
	ModernBonus float64 `json:"modern_bonus" koanf:"modern_bonus"`

	// Default: 10
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`
}

// BecauseYouWatchedConfig configures because-you-watched. Scoring is
// inherited from SimilarConfig.
type BecauseYouWatchedConfig struct {
	// Default: 6
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`
}

// DefaultReasonSeparator joins reason fragments.
const DefaultReasonSeparator = " • "

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		Similarity: SimilarityConfig{
			RatingScale: 10,
			YearWindow:  50,
		},
		Similar: SimilarConfig{
			GenreWeight:     0.5,
			RatingWeight:    0.3,
			YearWeight:      0.2,
			MinScore:        0.3,
			MaxReasonGenres: 2,
			DefaultLimit:    10,
		},
		Favorites: FavoritesConfig{
			TopGenres:             3,
			GenreMatchWeight:      0.4,
			RatingProximityWindow: 1.5,
			RatingProximityBonus:  0.3,
			HighRatingThreshold:   8.0,
			HighRatingBonus:       0.2,
			PopularVoteCutoff:     5000,
			PopularBonus:          0.1,
			MinScore:              0.4,
			DefaultLimit:          10,
		},
		Genres: GenrePreferenceConfig{
			MatchWeight:  0.6,
			RatingWeight: 0.4,
			DefaultLimit: 10,
		},
		Trending: TrendingConfig{
			RatingWeight:      0.4,
			ExceptionalRating: 8.5,
			PopularityWeight:  0.3,
			PopularityCap:     1000,
			PopularityCutoff:  500,
			VoteCountCutoff:   10000,
			VoteCountBonus:    0.1,
			RecentYears:       5,
			RecentBonus:       0.3,
			ModernYears:       10,
			ModernBonus:       0.15,
			DefaultLimit:      10,
		},
		BecauseYouWatched: BecauseYouWatchedConfig{
			DefaultLimit: 6,
		},
		ReasonSeparator: DefaultReasonSeparator,
	}
}

// Validate checks that the configuration values are usable.
//
//nolint:gocyclo // flat list of independent field checks
func (c *Config) Validate() error {
	if c.Similarity.RatingScale <= 0 {
		return fmt.Errorf("similarity.rating_scale must be positive, got %f", c.Similarity.RatingScale)
	}
	if c.Similarity.YearWindow <= 0 {
		return fmt.Errorf("similarity.year_window must be positive, got %f", c.Similarity.YearWindow)
	}

	if err := nonNegative("similar.genre_weight", c.Similar.GenreWeight); err != nil {
		return err
	}
	if err := nonNegative("similar.rating_weight", c.Similar.RatingWeight); err != nil {
		return err
	}
	if err := nonNegative("similar.year_weight", c.Similar.YearWeight); err != nil {
		return err
	}
	if c.Similar.MaxReasonGenres < 1 {
		return fmt.Errorf("similar.max_reason_genres must be positive, got %d", c.Similar.MaxReasonGenres)
	}

	if c.Favorites.TopGenres < 1 {
		return fmt.Errorf("favorites.top_genres must be positive, got %d", c.Favorites.TopGenres)
	}
	if err := nonNegative("favorites.genre_match_weight", c.Favorites.GenreMatchWeight); err != nil {
		return err
	}
	if err := nonNegative("favorites.rating_proximity_window", c.Favorites.RatingProximityWindow); err != nil {
		return err
	}
	if c.Favorites.PopularVoteCutoff < 0 {
		return fmt.Errorf("favorites.popular_vote_cutoff must be non-negative, got %d", c.Favorites.PopularVoteCutoff)
	}

	if err := nonNegative("genres.match_weight", c.Genres.MatchWeight); err != nil {
		return err
	}
	if err := nonNegative("genres.rating_weight", c.Genres.RatingWeight); err != nil {
		return err
	}

	if c.Trending.PopularityCap <= 0 {
		return fmt.Errorf("trending.popularity_cap must be positive, got %f", c.Trending.PopularityCap)
	}
	if c.Trending.VoteCountCutoff < 0 {
		return fmt.Errorf("trending.vote_count_cutoff must be non-negative, got %d", c.Trending.VoteCountCutoff)
	}
	if c.Trending.RecentYears < 0 {
		return fmt.Errorf("trending.recent_years must be non-negative, got %d", c.Trending.RecentYears)
	}
	if c.Trending.ModernYears < c.Trending.RecentYears {
		return fmt.Errorf("trending.modern_years must be >= trending.recent_years, got %d < %d",
			c.Trending.ModernYears, c.Trending.RecentYears)
	}

	limits := map[string]int{
		"similar.default_limit":             c.Similar.DefaultLimit,
		"favorites.default_limit":           c.Favorites.DefaultLimit,
		"genres.default_limit":              c.Genres.DefaultLimit,
		"trending.default_limit":            c.Trending.DefaultLimit,
		"because_you_watched.default_limit": c.BecauseYouWatched.DefaultLimit,
	}
	for name, v := range limits {
		if v < 1 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}

	if c.ReasonSeparator == "" {
		return fmt.Errorf("reason_separator must not be empty")
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// all nested structs hold value types only
	clone := *c
	return &clone
}

func nonNegative(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%s must be non-negative, got %f", name, v)
	}
	return nil
}
