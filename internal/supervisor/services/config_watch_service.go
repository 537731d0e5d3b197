// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// WatchFunc starts watching a source and calls onChange for every change.
// The returned stop function ends the watch. config.WatchConfigFile
// bound to a path satisfies it.
type WatchFunc func(onChange func()) (stop func() error, err error)

// ReloadFunc applies the changed configuration.
type ReloadFunc func(ctx context.Context) error

// ConfigWatchService hot-reloads configuration under Suture supervision.
// Change events are coalesced: a burst of writes triggers one reload once
// the previous reload has finished.
type ConfigWatchService struct {
	watch   WatchFunc
	reload  ReloadFunc
	logger  zerolog.Logger
	changes chan struct{}
	name    string
}

// NewConfigWatchService creates a new config watch service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConfigWatchService(watch WatchFunc, reload ReloadFunc, logger zerolog.Logger) *ConfigWatchService {
	return &ConfigWatchService{
		watch:   watch,
		reload:  reload,
		logger:  logger.With().Str("service", "config-watch").Logger(),
		changes: make(chan struct{}, 1),
		name:    "config-watch-service",
	}
}

// Serve implements the suture.Service interface.
func (s *ConfigWatchService) Serve(ctx context.Context) error {
	stop, err := s.watch(s.notify)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer func() {
		if err := stop(); err != nil {
			s.logger.Debug().Err(err).Msg("stop config watch")
		}
	}()

	s.logger.Info().Msg("config watch started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.changes:
			if err := s.reload(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("config reload failed, keeping current configuration")
				continue
			}
			s.logger.Info().Msg("config reloaded")
		}
	}
}

func (s *ConfigWatchService) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// String returns the service name for logging.
func (s *ConfigWatchService) String() string {
	return s.name
}
