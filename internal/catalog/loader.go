// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/metrics"
	"github.com/tomtom215/reelscout/internal/models"
)

// SourceFile is the Snapshot.Source value for catalogs read from disk.
const SourceFile = "file"

// Loader builds catalog snapshots from an upstream Source or a JSON file
// and publishes them into a Store.
type Loader struct {
	source    Source
	store     *Store
	genres    *GenreIndex
	pages     int
	file      string
	imageBase string
	now       func() time.Time
}

// NewLoader creates a loader. src may be nil when cfg.File is set.
func NewLoader(src Source, store *Store, idx *GenreIndex, cfg *config.CatalogConfig, imageBase string) *Loader {
	if idx == nil {
		idx = NewGenreIndex()
	}
	pages := cfg.Pages
	if pages < 1 {
		pages = 1
	}
	return &Loader{
		source:    src,
		store:     store,
		genres:    idx,
		pages:     pages,
		file:      cfg.File,
		imageBase: imageBase,
		now:       time.Now,
	}
}

// Store returns the store snapshots are published into.
func (l *Loader) Store() *Store { return l.store }

// Genres returns the genre index shared with the source.
func (l *Loader) Genres() *GenreIndex { return l.genres }

// Source returns the upstream source, which may be nil.
func (l *Loader) Source() Source { return l.source }

// Load builds and publishes a new snapshot. On error the previous snapshot
// stays current.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	var (
		movies []models.Movie
		source string
		err    error
	)
	if l.file != "" {
		source = SourceFile
		movies, err = l.loadFile(l.file)
	} else {
		if l.source == nil {
			err = errors.New("no catalog source configured")
		} else {
			source = l.source.Name()
			movies, err = l.loadSource(ctx)
		}
	}
	if err != nil {
		metrics.RecordCatalogRefresh(time.Since(start), 0, 0, 0, err)
		return nil, err
	}

	snap := l.store.Publish(movies, l.genres.Genres(), source, l.now().UTC())
	metrics.RecordCatalogRefresh(time.Since(start), snap.Len(), len(snap.Genres), snap.Version, nil)

	logging.Info().
		Str("source", snap.Source).
		Int("movies", snap.Len()).
		Int("genres", len(snap.Genres)).
		Uint64("version", snap.Version).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")

	return snap, nil
}

func (l *Loader) loadSource(ctx context.Context) ([]models.Movie, error) {
	if _, err := l.source.Genres(ctx); err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
		logging.Warn().Err(err).Str("source", l.source.Name()).Msg("Failed to load genres, using built-in list")
	}

	var movies []models.Movie
	for page := 1; page <= l.pages; page++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		p, err := l.source.Movies(ctx, page)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("failed to load catalog: %w", err)
			}
			logging.Warn().Err(err).Int("page", page).Msg("Stopping catalog load early, keeping loaded pages")
			break
		}
		movies = append(movies, p.Movies...)

		if p.TotalPages > 0 && page >= p.TotalPages {
			break
		}
	}
	return movies, nil
}

func (l *Loader) loadFile(path string) ([]models.Movie, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	movies, err := ParseCatalog(data, l.genres, l.imageBase)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return movies, nil
}

// catalogProbe sniffs which shape a catalog entry has.
type catalogProbe struct {
	PrimaryTitle string          `json:"primaryTitle"`
	GenreIDs     json.RawMessage `json:"genre_ids"`
	VoteAverage  json.RawMessage `json:"vote_average"`
}

// ParseCatalog decodes a catalog document. Accepted shapes are a TMDB page
// ({"results": [...]}), an object with "movies", or a bare array. Each entry
// may be a TMDB movie, an IMDb title or a models.Movie.
func ParseCatalog(data []byte, idx *GenreIndex, imageBase string) ([]models.Movie, error) {
	if idx == nil {
		idx = NewGenreIndex()
	}

	var entries []json.RawMessage
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, errors.New("empty catalog document")
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
	default:
		var doc struct {
			Results []json.RawMessage `json:"results"`
			Movies  []json.RawMessage `json:"movies"`
			Genres  []models.Genre    `json:"genres"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		idx.Merge(doc.Genres)
		entries = make([]json.RawMessage, 0, len(doc.Results)+len(doc.Movies))
		entries = append(entries, doc.Results...)
		entries = append(entries, doc.Movies...)
	}

	movies := make([]models.Movie, 0, len(entries))
	for i, raw := range entries {
		m, err := parseCatalogEntry(raw, idx, imageBase)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		movies = append(movies, m)
	}
	return movies, nil
}

func parseCatalogEntry(raw json.RawMessage, idx *GenreIndex, imageBase string) (models.Movie, error) {
	var probe catalogProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return models.Movie{}, err
	}

	switch {
	case probe.PrimaryTitle != "":
		var m IMDbMovie
		if err := json.Unmarshal(raw, &m); err != nil {
			return models.Movie{}, err
		}
		return FromIMDb(&m, idx), nil
	case len(probe.GenreIDs) > 0 || len(probe.VoteAverage) > 0:
		var m TMDBMovie
		if err := json.Unmarshal(raw, &m); err != nil {
			return models.Movie{}, err
		}
		return FromTMDB(&m, imageBase), nil
	default:
		var m models.Movie
		if err := json.Unmarshal(raw, &m); err != nil {
			return models.Movie{}, err
		}
		return m, nil
	}
}
