// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscout/internal/catalog"
)

// defaultRefreshTimeout bounds a single catalog load.
const defaultRefreshTimeout = 2 * time.Minute

// CatalogLoader builds and publishes a catalog snapshot.
// Satisfied by *catalog.Loader.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
}

// CatalogServiceConfig holds configuration for the catalog service.
type CatalogServiceConfig struct {
	// InitialLoad loads the catalog as soon as the service starts.
	InitialLoad bool

	// RefreshInterval schedules periodic reloads. 0 disables them.
	RefreshInterval time.Duration

	// RefreshTimeout bounds one load. Default: 2m
	RefreshTimeout time.Duration
}

// CatalogService keeps the catalog snapshot fresh under Suture supervision.
// It reloads on a schedule and on demand (POST /catalog/refresh). A failed
// load is logged and the previous snapshot keeps serving.
type CatalogService struct {
	loader  CatalogLoader
	config  CatalogServiceConfig
	logger  zerolog.Logger
	trigger chan struct{}
	name    string

	mu    sync.Mutex
	hooks []func(*catalog.Snapshot)
}

// NewCatalogService creates a new catalog service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogService(loader CatalogLoader, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = defaultRefreshTimeout
	}
	return &CatalogService{
		loader:  loader,
		config:  cfg,
		logger:  logger.With().Str("service", "catalog").Logger(),
		trigger: make(chan struct{}, 1),
		name:    "catalog-service",
	}
}

// OnRefresh registers fn to run after every successful load.
func (s *CatalogService) OnRefresh(fn func(*catalog.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// TriggerRefresh queues a reload. It returns false when one is already
// queued; the queued reload covers this request too.
func (s *CatalogService) TriggerRefresh() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Refresh loads the catalog synchronously and runs the refresh hooks.
func (s *CatalogService) Refresh(ctx context.Context) (*catalog.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.RefreshTimeout)
	defer cancel()

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	hooks := append([]func(*catalog.Snapshot){}, s.hooks...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(snap)
	}
	return snap, nil
}

// Serve implements the suture.Service interface.
func (s *CatalogService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("initial_load", s.config.InitialLoad).
		Dur("refresh_interval", s.config.RefreshInterval).
		Msg("catalog service starting")

	if s.config.InitialLoad {
		s.refresh(ctx, "startup")
	}

	// A nil channel never fires, which disables scheduled reloads.
	var tick <-chan time.Time
	if s.config.RefreshInterval > 0 {
		ticker := time.NewTicker(s.config.RefreshInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog service shutting down")
			return ctx.Err()

		case <-tick:
			s.refresh(ctx, "schedule")

		case <-s.trigger:
			s.refresh(ctx, "request")
		}
	}
}

func (s *CatalogService) refresh(ctx context.Context, reason string) {
	start := time.Now()
	snap, err := s.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).
			Str("reason", reason).
			Msg("catalog refresh failed, keeping previous snapshot")
		return
	}

	s.logger.Info().
		Str("reason", reason).
		Uint64("version", snap.Version).
		Int("movies", snap.Len()).
		Dur("duration", time.Since(start)).
		Msg("catalog refreshed")
}

// String returns the service name for logging.
func (s *CatalogService) String() string {
	return s.name
}
