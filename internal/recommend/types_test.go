// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelscout/internal/models"
)

func TestModeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode Mode
		want string
	}{
		{ModeSimilar, "similar"},
		{ModeFavorites, "favorites"},
		{ModeGenres, "genres"},
		{ModeTrending, "trending"},
		{ModeBecauseYouWatched, "because_you_watched"},
		{Mode(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "similar", want: ModeSimilar},
		{in: "Trending", want: ModeTrending},
		{in: "because-you-watched", want: ModeBecauseYouWatched},
		{in: " because_you_watched ", want: ModeBecauseYouWatched},
		{in: "popular", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownMode) {
				t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestGenreMap(t *testing.T) {
	t.Parallel()

	m := NewGenreMap([]models.Genre{{ID: 28, Name: "Action"}, {ID: 99, Name: ""}})
	if name, ok := m.GenreName(28); !ok || name != "Action" {
		t.Errorf("GenreName(28) = %q, %v", name, ok)
	}
	if _, ok := m.GenreName(99); ok {
		t.Error("GenreName(99) ok = true for empty name")
	}
	if _, ok := m.GenreName(1); ok {
		t.Error("GenreName(1) ok = true for missing id")
	}

	var nilMap GenreMap
	if _, ok := nilMap.GenreName(28); ok {
		t.Error("nil GenreMap resolved a name")
	}
}

func TestResultJSON(t *testing.T) {
	t.Parallel()

	movie := &models.Movie{ID: "603", Title: "The Matrix", Genres: []models.GenreID{28, 878}}
	data, err := json.Marshal(Result{Movie: movie, Score: 0.75, Reason: "Top Action pick"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["reason"] != "Top Action pick" {
		t.Errorf("reason = %v", decoded["reason"])
	}
	inner, ok := decoded["movie"].(map[string]interface{})
	if !ok || inner["id"] != "603" {
		t.Errorf("movie = %v, want embedded movie with id 603", decoded["movie"])
	}
}
