// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package models

import "time"

// FavoriteMovie is the denormalized snapshot persisted when a user favorites
// a movie. It is enough to render a favorites list without the catalog.
type FavoriteMovie struct {
	ID      string    `json:"id" validate:"required,max=64"`
	Title   string    `json:"title" validate:"required,max=500"`
	Image   string    `json:"image,omitempty" validate:"omitempty,max=2048"`
	Rating  float64   `json:"rating" validate:"gte=0,lte=10"`
	Year    int       `json:"year,omitempty" validate:"gte=0,lte=3000"`
	SavedAt time.Time `json:"saved_at"`
}

// PlaceholderImage is used when a movie has no poster.
const PlaceholderImage = "/placeholder.jpg"

// NewFavorite builds a favorites snapshot from a catalog movie.
func NewFavorite(m *Movie, now time.Time) FavoriteMovie {
	image := m.PosterURL
	if image == "" {
		image = PlaceholderImage
	}
	return FavoriteMovie{
		ID:      m.ID,
		Title:   m.Title,
		Image:   image,
		Rating:  m.Rating,
		Year:    m.ReleaseYear,
		SavedAt: now.UTC(),
	}
}
