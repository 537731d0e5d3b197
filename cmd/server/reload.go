// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/recommend"
	"github.com/tomtom215/reelscout/internal/supervisor/services"
)

// scoringUpdater receives scoring configuration changes.
type scoringUpdater interface {
	UpdateConfig(cfg *recommend.Config) error
}

// reloadConfig re-reads path and applies the settings that can change at
// runtime: the log level and the recommendation scoring thresholds. Server,
// upstream and storage settings need a restart.
func reloadConfig(path string, target scoringUpdater) services.ReloadFunc {
	return func(_ context.Context) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := target.UpdateConfig(&cfg.Recommend.Scoring); err != nil {
			return fmt.Errorf("apply scoring config: %w", err)
		}
		logging.SetLevelString(cfg.Logging.Level)
		logging.Info().
			Str("path", path).
			Str("log_level", cfg.Logging.Level).
			Msg("Configuration reloaded")
		return nil
	}
}
