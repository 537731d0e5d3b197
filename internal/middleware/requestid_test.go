// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/reelscout/internal/logging"
)

func serveWithRequestID(t *testing.T, incoming string) (header, fromContext string) {
	t.Helper()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromContext = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	if incoming != "" {
		req.Header.Set(logging.RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec.Header().Get(logging.RequestIDHeader), fromContext
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	header, ctxID := serveWithRequestID(t, "")
	if _, err := uuid.Parse(header); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", header, err)
	}
	if ctxID != header {
		t.Errorf("context id %q != header id %q", ctxID, header)
	}
}

func TestRequestID_PreservesExistingID(t *testing.T) {
	t.Parallel()

	header, ctxID := serveWithRequestID(t, "proxy-abc-123")
	if header != "proxy-abc-123" || ctxID != "proxy-abc-123" {
		t.Errorf("got header %q, context %q; want proxy-abc-123", header, ctxID)
	}
}

func TestRequestID_RejectsMalformedIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
	}{
		{name: "newline injection", id: "abc\nlevel=error"},
		{name: "space", id: "abc def"},
		{name: "too long", id: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "non ascii", id: "req-é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			header, ctxID := serveWithRequestID(t, tt.id)
			if header == tt.id {
				t.Errorf("malformed id %q was echoed", tt.id)
			}
			if _, err := uuid.Parse(ctxID); err != nil {
				t.Errorf("replacement id %q is not a UUID", ctxID)
			}
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, _ := serveWithRequestID(t, "")
		if seen[id] {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = true
	}
}
