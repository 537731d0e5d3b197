// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

import (
	"bytes"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/metrics"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// =====================================================
// ChiMiddleware Configuration Tests
// =====================================================

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(nil)

	if m == nil {
		t.Fatal("NewChiMiddleware returned nil")
	}
	if m.config == nil {
		t.Fatal("config is nil")
	}
	// Default should be empty (requires explicit configuration)
	if len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want []", m.config.CORSAllowedOrigins)
	}
	if m.config.CORSMaxAge != 86400 {
		t.Errorf("CORSMaxAge = %d, want 86400", m.config.CORSMaxAge)
	}
	if m.config.RateLimitRequests != 100 || m.config.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/1m", m.config.RateLimitRequests, m.config.RateLimitWindow)
	}
}

func TestNewChiMiddlewareFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		sec         *config.SecurityConfig
		wantReqs    int
		wantWindow  time.Duration
		wantOrigins int
		wantOff     bool
	}{
		{name: "nil keeps defaults", sec: nil, wantReqs: 100, wantWindow: time.Minute},
		{
			name:        "overrides",
			sec:         &config.SecurityConfig{RateLimitReqs: 200, RateLimitWindow: 2 * time.Minute, CORSOrigins: []string{"https://a.example", "https://b.example"}},
			wantReqs:    200,
			wantWindow:  2 * time.Minute,
			wantOrigins: 2,
		},
		{
			name:       "zero values keep defaults",
			sec:        &config.SecurityConfig{RateLimitDisabled: true},
			wantReqs:   100,
			wantWindow: time.Minute,
			wantOff:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewChiMiddlewareFromConfig(tt.sec)

			if m.config.RateLimitRequests != tt.wantReqs {
				t.Errorf("RateLimitRequests = %d, want %d", m.config.RateLimitRequests, tt.wantReqs)
			}
			if m.config.RateLimitWindow != tt.wantWindow {
				t.Errorf("RateLimitWindow = %v, want %v", m.config.RateLimitWindow, tt.wantWindow)
			}
			if len(m.config.CORSAllowedOrigins) != tt.wantOrigins {
				t.Errorf("CORSAllowedOrigins = %v, want %d entries", m.config.CORSAllowedOrigins, tt.wantOrigins)
			}
			if m.config.RateLimitDisabled != tt.wantOff {
				t.Errorf("RateLimitDisabled = %v, want %v", m.config.RateLimitDisabled, tt.wantOff)
			}
		})
	}
}

// =====================================================
// CORS Middleware Tests
// =====================================================

func TestChiMiddleware_CORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantHeader string
	}{
		{name: "wildcard", origins: []string{"*"}, origin: "https://example.com", wantHeader: "*"},
		{name: "specific allowed", origins: []string{"https://allowed.com"}, origin: "https://allowed.com", wantHeader: "https://allowed.com"},
		{name: "disallowed", origins: []string{"https://allowed.com"}, origin: "https://evil.com", wantHeader: ""},
		{name: "no origin header", origins: []string{"https://allowed.com"}, origin: "", wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultChiMiddlewareConfig()
			cfg.CORSAllowedOrigins = tt.origins
			m := NewChiMiddleware(cfg)

			handlerCalled := false
			handler := m.CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			// Simple requests reach the handler either way; the browser enforces the header.
			if !handlerCalled {
				t.Error("Handler should be called")
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestChiMiddleware_CORS_PreflightRequest(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.example"}
	m := NewChiMiddleware(cfg)

	handlerCalled := false
	handler := m.CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/favorites", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if handlerCalled {
		t.Error("Handler should not be called for preflight")
	}
	if w.Code != http.StatusOK && w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 200 or 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin = %q, want https://app.example", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Errorf("Access-Control-Allow-Methods = %q, want POST", got)
	}
}

// =====================================================
// Rate Limiting Middleware Tests
// =====================================================

func TestChiMiddleware_RateLimit_Disabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitDisabled: true,
		RateLimitRequests: 3,
		RateLimitWindow:   time.Second,
	})

	callCount := 0
	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Request %d: status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}

	if callCount != 10 {
		t.Errorf("callCount = %d, want 10", callCount)
	}
}

func TestChiMiddleware_RateLimit_Enabled(t *testing.T) {
	// Not parallel: reads the global rate limit counter.
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 3,
		RateLimitWindow:   time.Minute, // Longer window for test stability
	})
	handler := m.RateLimit()(okHandler())

	const path = "/api/v1/ratelimit-test"
	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues(path))

	successCount := 0
	var limited *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
			successCount++
		case http.StatusTooManyRequests:
			limited = w
		}
	}

	if successCount != 3 {
		t.Errorf("successCount = %d, want 3", successCount)
	}
	if limited == nil {
		t.Fatal("expected a rate limited response")
	}

	response := decodeResponse(t, limited)
	if response.Error == nil || response.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("limited response error = %+v, want %s", response.Error, ErrCodeTooManyRequests)
	}
	if got := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues(path)) - before; got != 2 {
		t.Errorf("rate limit hits delta = %v, want 2", got)
	}
}

func TestChiMiddleware_RateLimit_DifferentIPs(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})
	handler := m.RateLimit()(okHandler())

	// Different IPs have separate budgets
	for _, ip := range []string{"192.168.1.1:12345", "192.168.1.2:12345", "192.168.1.3:12345"} {
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = ip
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("IP %s request %d: status = %d, want %d", ip, i, w.Code, http.StatusOK)
			}
		}
	}
}

func TestChiMiddleware_RateLimitRefresh(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(nil)
	handler := m.RateLimitRefresh()(okHandler())

	codes := make([]int, 0, RateLimitRefresh.Requests+1)
	for i := 0; i <= RateLimitRefresh.Requests; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh", nil)
		req.RemoteAddr = "10.0.0.9:4000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if last := codes[len(codes)-1]; last != http.StatusTooManyRequests {
		t.Errorf("request %d status = %d, want 429 (codes %v)", len(codes), last, codes)
	}
}

// =====================================================
// Header and Logging Middleware Tests
// =====================================================

func TestAPISecurityHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantHSTS bool
	}{
		{name: "plain http", setup: func(r *http.Request) {}, wantHSTS: false},
		{name: "tls", setup: func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, wantHSTS: true},
		{name: "forwarded https", setup: func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") }, wantHSTS: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			APISecurityHeaders()(okHandler()).ServeHTTP(w, req)

			if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q, want DENY", got)
			}
			if hsts := w.Header().Get("Strict-Transport-Security") != ""; hsts != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", hsts, tt.wantHSTS)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)

	handler := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil)
	ctx := logging.ContextWithLogger(req.Context(), logger)
	req = req.WithContext(logging.ContextWithRequestID(ctx, "req-log"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	output := buf.String()
	for _, want := range []string{`"level":"warn"`, `"status":503`, `"request_id":"req-log"`, `"path":"/api/v1/health/ready"`} {
		if !strings.Contains(output, want) {
			t.Errorf("log output missing %s: %s", want, output)
		}
	}
}
