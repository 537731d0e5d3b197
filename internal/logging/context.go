// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Request correlation
//
// middleware.RequestID puts an id on every API request: the X-Request-ID
// value a proxy sent, or a fresh UUID. Handlers log through Ctx, the API
// envelope echoes the id in meta.request_id, and the recommendation
// engine tags its debug lines with the same id through
// recommend.Request.RequestID. One grep then follows a request from the
// access log through scoring to the response.

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// RequestIDHeader carries request ids in both directions.
const RequestIDHeader = "X-Request-ID"

// GenerateRequestID mints a request id for callers that sent none.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID tags ctx with a request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id of ctx, or "" outside a
// request (catalog refreshes, CLI runs).
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextWithLogger overrides the logger Ctx starts from. Tests use it to
// capture request-scoped output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Ctx returns the logger for ctx with its request id attached.
//
//	logging.Ctx(ctx).Info().Str("movie_id", id).Msg("favorite added")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger, ok := ctx.Value(loggerKey).(zerolog.Logger)
	if !ok {
		logger = Logger()
	}
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With().Str("request_id", id).Logger()
	}
	return &logger
}

// CtxErr is Ctx(ctx).Err(err).
func CtxErr(ctx context.Context, err error) *zerolog.Event {
	return Ctx(ctx).Err(err)
}

// WithComponent returns a child of the global logger tagged with a
// component such as "catalog", "favorites" or "recommend".
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
