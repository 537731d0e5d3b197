// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/reelscout/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelscout/config.yaml",
	"/etc/reelscout/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			Environment:  "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Upstream: UpstreamConfig{
			Provider:       ProviderTMDB,
			Timeout:        15 * time.Second,
			MaxRetries:     3,
			RetryBaseDelay: time.Second,
			RateLimit:      10,
			RateBurst:      5,
			CacheSize:      1024,
			CacheTTL:       10 * time.Minute,
			TMDB: TMDBConfig{
				BaseURL:      "https://api.themoviedb.org/3",
				ImageBaseURL: "https://image.tmdb.org/t/p/w500",
				Language:     "en-US",
			},
		},
		Catalog: CatalogConfig{
			Pages:           3,
			RefreshInterval: 6 * time.Hour,
			LoadOnStartup:   true,
		},
		Favorites: FavoritesConfig{
			Path:     "/data/favorites",
			InMemory: false,
		},
		Recommend: RecommendConfig{
			CacheTTL:  5 * time.Minute,
			PageLimit: 12,
			Scoring:   *recommend.DefaultConfig(),
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults (from DefaultConfig)
//  2. Config file (optional, YAML)
//  3. Environment variables (highest priority)
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

// LoadFile loads configuration with an explicit config file path.
// An empty path behaves like LoadWithKoanf.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return LoadWithKoanf()
	}
	return loadFrom(path)
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := DefaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TMDB_API_KEY -> upstream.tmdb.api_key
	// CATALOG_PAGES -> catalog.pages
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default locations.
// Returns the path to the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ConfigFilePath returns the config file LoadWithKoanf would read, or "".
func ConfigFilePath() string {
	return findConfigFile()
}

// sliceConfigPaths lists config paths that should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":           "server.port",
	"http_host":           "server.host",
	"http_read_timeout":   "server.read_timeout",
	"http_write_timeout":  "server.write_timeout",
	"environment":         "server.environment",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Upstream provider
	"upstream_provider":         "upstream.provider",
	"upstream_timeout":          "upstream.timeout",
	"upstream_max_retries":      "upstream.max_retries",
	"upstream_retry_base_delay": "upstream.retry_base_delay",
	"upstream_rate_limit":       "upstream.rate_limit",
	"upstream_rate_burst":       "upstream.rate_burst",
	"upstream_cache_size":       "upstream.cache_size",
	"upstream_cache_ttl":        "upstream.cache_ttl",
	"tmdb_base_url":             "upstream.tmdb.base_url",
	"tmdb_image_base_url":       "upstream.tmdb.image_base_url",
	"tmdb_api_key":              "upstream.tmdb.api_key",
	"tmdb_access_token":         "upstream.tmdb.access_token",
	"tmdb_language":             "upstream.tmdb.language",
	"imdb_base_url":             "upstream.imdb.base_url",
	"rapidapi_key":              "upstream.imdb.rapidapi_key",
	"rapidapi_host":             "upstream.imdb.rapidapi_host",

	// Catalog
	"catalog_pages":            "catalog.pages",
	"catalog_refresh_interval": "catalog.refresh_interval",
	"catalog_load_on_startup":  "catalog.load_on_startup",
	"catalog_file":             "catalog.file",

	// Favorites
	"favorites_path":      "favorites.path",
	"favorites_in_memory": "favorites.in_memory",

	// Recommendation engine
	"recommend_cache_ttl":               "recommend.cache_ttl",
	"recommend_page_limit":              "recommend.page_limit",
	"recommend_similar_min_score":       "recommend.scoring.similar.min_score",
	"recommend_favorites_min_score":     "recommend.scoring.favorites.min_score",
	"recommend_favorites_vote_cutoff":   "recommend.scoring.favorites.popular_vote_cutoff",
	"recommend_trending_recent_years":   "recommend.scoring.trending.recent_years",
	"recommend_because_watched_limit":   "recommend.scoring.because_you_watched.default_limit",
	"recommend_reason_separator":        "recommend.scoring.reason_separator",
	"recommend_similarity_year_window":  "recommend.scoring.similarity.year_window",
	"recommend_trending_vote_cutoff":    "recommend.scoring.trending.vote_count_cutoff",
	"recommend_trending_popularity_cap": "recommend.scoring.trending.popularity_cap",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - TMDB_API_KEY -> upstream.tmdb.api_key
//   - RAPIDAPI_HOST -> upstream.imdb.rapidapi_host
//   - FAVORITES_PATH -> favorites.path
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// The callback runs on every change event; the caller reloads and swaps.
// The returned stop function ends the watch.
//
// Example usage:
//
//	stop, err := WatchConfigFile(path, func() {
//	    newCfg, err := LoadFile(path)
//	    if err != nil {
//	        logging.Warn().Err(err).Msg("Config reload failed")
//	        return
//	    }
//	    _ = engine.UpdateConfig(&newCfg.Recommend.Scoring)
//	})
//	defer stop()
func WatchConfigFile(path string, callback func()) (stop func() error, err error) {
	provider := file.Provider(path)

	err = provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
	if err != nil {
		return nil, err
	}
	return provider.Unwatch, nil
}
