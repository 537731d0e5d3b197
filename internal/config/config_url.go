// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package config

import (
	"fmt"
	"net/url"
)

// validateEndpointURL checks an upstream endpoint or image base URL:
// http or https scheme, a host, and no query or fragment. Paths are
// allowed since both TMDB URLs carry one (/3, /t/p/w500).
func validateEndpointURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return fmt.Errorf("%s should not contain query parameters or a fragment", fieldName)
	}

	return nil
}

// validateUpstreamURLs checks every configured upstream URL. Empty values
// are skipped; the clients fall back to their defaults.
func (c *Config) validateUpstreamURLs() error {
	urls := []struct {
		value string
		name  string
	}{
		{c.Upstream.TMDB.BaseURL, "TMDB_BASE_URL"},
		{c.Upstream.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"},
		{c.Upstream.IMDb.BaseURL, "IMDB_BASE_URL"},
	}
	for _, u := range urls {
		if u.value == "" {
			continue
		}
		if err := validateEndpointURL(u.value, u.name); err != nil {
			return err
		}
	}
	return nil
}
