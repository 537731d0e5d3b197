// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelscout/internal/catalog"
	"github.com/tomtom215/reelscout/internal/favorites"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/recommend"
)

// Common API errors
var (
	// ErrRefreshUnavailable indicates no catalog refresher is wired in.
	ErrRefreshUnavailable = errors.New("catalog refresh is not available")

	// ErrStoreUnavailable indicates no favorites store is wired in.
	ErrStoreUnavailable = errors.New("favorites store is not available")

	// ErrNoSource indicates the catalog has no upstream source to fall back to.
	ErrNoSource = errors.New("no upstream movie source configured")
)

// respondServiceError maps domain errors to the response envelope.
func respondServiceError(rw *ResponseWriter, err error) {
	var statusErr *catalog.StatusError

	switch {
	case errors.Is(err, catalog.ErrNotLoaded):
		rw.ServiceUnavailable("Catalog is not loaded yet")
	case errors.Is(err, catalog.ErrNotConfigured), errors.Is(err, ErrNoSource):
		rw.ServiceUnavailable("Movie provider is not configured")
	case errors.Is(err, catalog.ErrNotFound):
		rw.NotFound("Movie not found")
	case errors.Is(err, favorites.ErrNotFound):
		rw.NotFound("Favorite not found")
	case errors.Is(err, catalog.ErrUnsupported):
		rw.Error(http.StatusNotImplemented, ErrCodeNotImplemented, "Operation not supported by the movie provider")
	case errors.Is(err, recommend.ErrMissingSubject), errors.Is(err, recommend.ErrUnknownMode):
		rw.BadRequest(err.Error())
	case errors.Is(err, favorites.ErrClosed), errors.Is(err, ErrRefreshUnavailable), errors.Is(err, ErrStoreUnavailable):
		rw.ServiceUnavailable(err.Error())
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		rw.ServiceUnavailable("Movie provider is temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeServiceUnavailable, "Request timed out")
	case errors.As(err, &statusErr):
		rw.ExternalServiceError(statusErr.Source, err)
	default:
		logging.CtxErr(rw.r.Context(), err).Msg("Unhandled API error")
		rw.InternalError("An unexpected error occurred")
	}
}
