// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package favorites

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/metrics"
	"github.com/tomtom215/reelscout/internal/models"
	"github.com/tomtom215/reelscout/internal/validation"
)

// Key prefix for BadgerDB storage
const favoriteKeyPrefix = "fav:"

// Sentinel errors.
var (
	// ErrNotFound is returned when a movie is not in the favorites list.
	ErrNotFound = errors.New("favorite not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("favorites store is closed")
)

// Store is the favorites list of the local profile.
type Store interface {
	// List returns all favorites ordered by SavedAt, then ID.
	List(ctx context.Context) ([]models.FavoriteMovie, error)

	// Get returns one favorite or ErrNotFound.
	Get(ctx context.Context, id string) (*models.FavoriteMovie, error)

	// Add stores fav. It reports false when the movie is already a favorite.
	Add(ctx context.Context, fav *models.FavoriteMovie) (bool, error)

	// Remove deletes a favorite. It reports false when it was not present.
	Remove(ctx context.Context, id string) (bool, error)

	// IsFavorite reports whether id is a favorite.
	IsFavorite(ctx context.Context, id string) (bool, error)

	// IDs returns the favorite ids in List order.
	IDs(ctx context.Context) ([]string, error)

	// Clear removes every favorite and returns how many were removed.
	Clear(ctx context.Context) (int, error)

	// Count returns the number of favorites.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying database.
	Close() error
}

// BadgerStore implements Store using BadgerDB for durable storage.
type BadgerStore struct {
	db  *badger.DB
	now func() time.Time

	// mu serializes Add so the existence check and write are atomic
	// with respect to other writers in this process.
	mu     sync.Mutex
	closed bool
}

// Open opens (or creates) the favorites database described by cfg.
func Open(cfg *config.FavoritesConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("favorites path is required")
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := NewBadgerStore(db)
	if n, err := s.Count(context.Background()); err == nil {
		metrics.SetFavoritesCount(n)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Favorites store opened")

	return s, nil
}

// NewBadgerStore wraps an already open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, now: time.Now}
}

func favoriteKey(id string) []byte {
	return []byte(favoriteKeyPrefix + id)
}

func (s *BadgerStore) checkOpen(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	return nil
}

// List implements Store.
func (s *BadgerStore) List(ctx context.Context) ([]models.FavoriteMovie, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}

	favs := make([]models.FavoriteMovie, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(favoriteKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var fav models.FavoriteMovie
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &fav)
			}); err != nil {
				return fmt.Errorf("decode favorite %s: %w", it.Item().Key(), err)
			}
			favs = append(favs, fav)
		}
		return nil
	})
	metrics.RecordFavoritesOperation("list", err == nil)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(favs, func(i, j int) bool {
		if !favs[i].SavedAt.Equal(favs[j].SavedAt) {
			return favs[i].SavedAt.Before(favs[j].SavedAt)
		}
		return favs[i].ID < favs[j].ID
	})
	return favs, nil
}

// Get implements Store.
func (s *BadgerStore) Get(ctx context.Context, id string) (*models.FavoriteMovie, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}

	var fav models.FavoriteMovie
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(favoriteKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get favorite: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &fav)
		})
	})
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

// Add implements Store. A zero SavedAt is stamped with the current time.
func (s *BadgerStore) Add(ctx context.Context, fav *models.FavoriteMovie) (bool, error) {
	if err := s.checkOpen(ctx); err != nil {
		return false, err
	}
	if verr := validation.ValidateStruct(fav); verr != nil {
		return false, fmt.Errorf("invalid favorite: %w", verr)
	}

	stored := *fav
	if stored.SavedAt.IsZero() {
		stored.SavedAt = s.now().UTC()
	}
	data, err := json.Marshal(&stored)
	if err != nil {
		return false, fmt.Errorf("marshal favorite: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := false
	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(favoriteKey(stored.ID))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check favorite: %w", err)
		}
		if err := txn.Set(favoriteKey(stored.ID), data); err != nil {
			return fmt.Errorf("set favorite: %w", err)
		}
		added = true
		return nil
	})
	metrics.RecordFavoritesOperation("add", err == nil)
	if err != nil {
		return false, err
	}
	if added {
		s.refreshCount()
		logging.Ctx(ctx).Debug().Str("movie_id", stored.ID).Msg("Favorite added")
	}
	return added, nil
}

// Remove implements Store.
func (s *BadgerStore) Remove(ctx context.Context, id string) (bool, error) {
	if err := s.checkOpen(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(favoriteKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("check favorite: %w", err)
		}
		if err := txn.Delete(favoriteKey(id)); err != nil {
			return fmt.Errorf("delete favorite: %w", err)
		}
		removed = true
		return nil
	})
	metrics.RecordFavoritesOperation("remove", err == nil)
	if err != nil {
		return false, err
	}
	if removed {
		s.refreshCount()
		logging.Ctx(ctx).Debug().Str("movie_id", id).Msg("Favorite removed")
	}
	return removed, nil
}

// IsFavorite implements Store.
func (s *BadgerStore) IsFavorite(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// IDs implements Store.
func (s *BadgerStore) IDs(ctx context.Context) ([]string, error) {
	favs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(favs))
	for i := range favs {
		ids[i] = favs[i].ID
	}
	return ids, nil
}

// Clear implements Store.
func (s *BadgerStore) Clear(ctx context.Context) (int, error) {
	if err := s.checkOpen(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(favoriteKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err == nil && len(keys) > 0 {
		wb := s.db.NewWriteBatch()
		defer wb.Cancel()
		for _, k := range keys {
			if err = wb.Delete(k); err != nil {
				break
			}
		}
		if err == nil {
			err = wb.Flush()
		}
	}
	metrics.RecordFavoritesOperation("clear", err == nil)
	if err != nil {
		return 0, fmt.Errorf("clear favorites: %w", err)
	}

	metrics.SetFavoritesCount(0)
	logging.Ctx(ctx).Info().Int("removed", len(keys)).Msg("Favorites cleared")
	return len(keys), nil
}

// Count implements Store.
func (s *BadgerStore) Count(ctx context.Context) (int, error) {
	if err := s.checkOpen(ctx); err != nil {
		return 0, err
	}

	return s.countKeys()
}

// Ping verifies the database is readable.
func (s *BadgerStore) Ping(ctx context.Context) error {
	_, err := s.Count(ctx)
	return err
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *BadgerStore) countKeys() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(favoriteKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func (s *BadgerStore) refreshCount() {
	if n, err := s.countKeys(); err == nil {
		metrics.SetFavoritesCount(n)
	}
}
