// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package config

import (
	"fmt"
	"time"
)

// Upstream provider names
const (
	ProviderTMDB = "tmdb"
	ProviderIMDb = "imdb"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateUpstream(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateFavorites(); err != nil {
		return err
	}

	return c.validateRecommend()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates rate limiting bounds
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateUpstream validates the provider selection and transport bounds.
// Credentials are not required here: a service seeded from CATALOG_FILE
// runs without an upstream, and clients report ErrNotConfigured on use.
func (c *Config) validateUpstream() error {
	switch c.Upstream.Provider {
	case ProviderTMDB, ProviderIMDb:
	default:
		return fmt.Errorf("UPSTREAM_PROVIDER must be one of: tmdb, imdb")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Upstream.MaxRetries < 0 || c.Upstream.MaxRetries > 10 {
		return fmt.Errorf("UPSTREAM_MAX_RETRIES must be between 0 and 10")
	}
	if c.Upstream.RateLimit <= 0 {
		return fmt.Errorf("UPSTREAM_RATE_LIMIT must be positive")
	}
	if c.Upstream.RateBurst < 1 {
		return fmt.Errorf("UPSTREAM_RATE_BURST must be at least 1")
	}
	if c.Upstream.CacheSize < 0 {
		return fmt.Errorf("UPSTREAM_CACHE_SIZE must not be negative")
	}
	return c.validateUpstreamURLs()
}

// validateCatalog validates catalog snapshot settings
func (c *Config) validateCatalog() error {
	if c.Catalog.Pages < 1 || c.Catalog.Pages > 500 {
		return fmt.Errorf("CATALOG_PAGES must be between 1 and 500")
	}
	if c.Catalog.RefreshInterval < 0 {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must not be negative")
	}
	if c.Catalog.RefreshInterval > 0 && c.Catalog.RefreshInterval < time.Minute {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must be at least 1m when enabled")
	}
	return nil
}

// validateFavorites validates favorites store settings
func (c *Config) validateFavorites() error {
	if !c.Favorites.InMemory && c.Favorites.Path == "" {
		return fmt.Errorf("FAVORITES_PATH is required unless FAVORITES_IN_MEMORY=true")
	}
	return nil
}

// validateRecommend validates engine and response settings
func (c *Config) validateRecommend() error {
	if c.Recommend.CacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must not be negative")
	}
	if c.Recommend.PageLimit < 1 || c.Recommend.PageLimit > 100 {
		return fmt.Errorf("RECOMMEND_PAGE_LIMIT must be between 1 and 100")
	}
	if err := c.Recommend.Scoring.Validate(); err != nil {
		return fmt.Errorf("recommend.scoring: %w", err)
	}
	return nil
}
