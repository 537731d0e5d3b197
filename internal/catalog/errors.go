// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by sources and the catalog store.
var (
	// ErrNotConfigured is returned when the provider credentials are missing.
	ErrNotConfigured = errors.New("API keys are not configured")

	// ErrNotFound is returned when a movie id is unknown to the source or snapshot.
	ErrNotFound = errors.New("movie not found")

	// ErrUnsupported is returned when a source cannot serve an operation.
	ErrUnsupported = errors.New("operation not supported by source")

	// ErrNotLoaded is returned when no catalog snapshot has been loaded yet.
	ErrNotLoaded = errors.New("catalog not loaded")
)

// StatusError is a non-2xx response from an upstream provider.
type StatusError struct {
	Source     string
	Endpoint   string
	StatusCode int
	Body       string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is maps a 404 onto ErrNotFound so callers can use errors.Is.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsRetryable reports whether the request may succeed on retry.
func (e *StatusError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
