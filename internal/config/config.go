// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package config

import (
	"time"

	"github.com/tomtom215/reelscout/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. Catalog:
//     - Upstream: movie provider (TMDB or IMDb via RapidAPI) and transport
//     - Catalog: snapshot size and refresh schedule
//
//  2. Storage:
//     - Favorites: BadgerDB path or in-memory mode
//
//  3. Engine:
//     - Recommend: scoring weights, thresholds and response caching
//
//  4. API & Security:
//     - Server: HTTP listener and timeouts
//     - Security: CORS and rate limiting
//
//  5. Observability:
//     - Logging: Log levels and output formats
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
// Hot reload builds a fresh Config rather than mutating a shared one.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Favorites FavoritesConfig `koanf:"favorites"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int           `koanf:"port"`
	Host         string        `koanf:"host"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	Environment  string        `koanf:"environment"` // Environment mode: "development", "production" (default: "development")
}

// SecurityConfig holds request-level protections for the public API
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// UpstreamConfig selects and tunes the movie metadata provider.
//
// Environment Variables:
//   - UPSTREAM_PROVIDER: tmdb or imdb (default: tmdb)
//   - UPSTREAM_TIMEOUT: per-request timeout (default: 15s)
//   - UPSTREAM_MAX_RETRIES: retries on HTTP 429 (default: 3)
//   - UPSTREAM_RATE_LIMIT: client-side requests per second (default: 10)
//   - TMDB_API_KEY / TMDB_ACCESS_TOKEN: TMDB credentials
//   - RAPIDAPI_KEY / RAPIDAPI_HOST: IMDb via RapidAPI credentials
type UpstreamConfig struct {
	Provider       string        `koanf:"provider"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`

	// RateLimit is the sustained request rate in requests per second.
	RateLimit float64 `koanf:"rate_limit"`
	// RateBurst is the token bucket burst size.
	RateBurst int `koanf:"rate_burst"`

	// CacheSize bounds the upstream response cache (entries). 0 disables it.
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	TMDB TMDBConfig `koanf:"tmdb"`
	IMDb IMDbConfig `koanf:"imdb"`
}

// TMDBConfig holds The Movie Database API settings.
// Either APIKey (v3 query parameter) or AccessToken (v4 bearer) is required.
type TMDBConfig struct {
	BaseURL      string `koanf:"base_url"`
	ImageBaseURL string `koanf:"image_base_url"`
	APIKey       string `koanf:"api_key"`
	AccessToken  string `koanf:"access_token"`
	Language     string `koanf:"language"`
}

// IMDbConfig holds the RapidAPI IMDb endpoint settings.
type IMDbConfig struct {
	// BaseURL overrides https://{RapidAPIHost}/api/imdb.
	BaseURL     string `koanf:"base_url"`
	RapidAPIKey string `koanf:"rapidapi_key"`
	RapidHost   string `koanf:"rapidapi_host"`
}

// CatalogConfig controls the in-memory catalog snapshot.
type CatalogConfig struct {
	// Pages is the number of upstream listing pages loaded per refresh.
	// Default: 3
	Pages int `koanf:"pages"`

	// RefreshInterval schedules background refreshes. 0 disables them.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// LoadOnStartup loads the catalog before the API starts serving.
	LoadOnStartup bool `koanf:"load_on_startup"`

	// File seeds the catalog from a JSON file instead of the upstream.
	File string `koanf:"file"`
}

// FavoritesConfig holds favorites store settings.
type FavoritesConfig struct {
	// Path is the BadgerDB directory.
	Path string `koanf:"path"`

	// InMemory keeps favorites in memory only (lost on restart).
	InMemory bool `koanf:"in_memory"`
}

// RecommendConfig holds recommendation engine and response settings.
type RecommendConfig struct {
	// CacheTTL is how long assembled recommendation responses are cached.
	// Entries are also keyed by catalog version. 0 disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// PageLimit is the per-section size of the combined recommendations page.
	// Default: 12
	PageLimit int `koanf:"page_limit"`

	// Scoring holds the engine weights and thresholds.
	Scoring recommend.Config `koanf:"scoring"`
}

// Load reads configuration using Koanf with layered sources.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction returns true when running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
