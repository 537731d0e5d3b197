// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

// Package logging provides centralized zerolog-based structured logging for Reelscout.
//
// JSON output is the default for production; console output is available
// for development and is what the reelscout CLI uses on stderr.
//
// # Quick Start
//
//	import "github.com/tomtom215/reelscout/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("source", "tmdb").Int("movies", 60).Msg("Catalog loaded")
//	logging.Error().Err(err).Msg("Refresh failed")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// SetLevelString changes the level at runtime; the server calls it when the
// config file is reloaded.
//
// # Component Loggers
//
//	logger := logging.WithComponent("catalog")
//	logger.Info().Uint64("version", snap.Version).Msg("Snapshot published")
//
// # Context-Aware Logging
//
// Request handlers log through the request context so every line carries
// the request ID assigned by the router (header X-Request-ID):
//
//	logging.Ctx(r.Context()).Warn().Str("movie_id", id).Msg("Upstream lookup failed")
//
// # slog Adapter
//
// NewSlogLogger bridges log/slog to the global zerolog logger. The
// supervisor tree uses it for Suture events through sutureslog.
//
// # Thread Safety
//
// The global logger is guarded by a RWMutex; Init and SetLogger may be
// called at any time.
package logging
