// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/metrics"
)

const (
	// maxErrorBodySize bounds how much of an error response is kept (64KB).
	maxErrorBodySize = 64 * 1024

	// maxResponseBodySize bounds successful response bodies (16MB).
	maxResponseBodySize = 16 * 1024 * 1024

	upstreamCacheName = "upstream"
)

// readBodyForError reads up to maxErrorBodySize bytes for error messages.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// upstream is the HTTP transport shared by every provider client: client
// side rate limiting, 429 backoff, a circuit breaker and a response cache.
type upstream struct {
	source         string
	baseURL        string
	client         *http.Client
	limiter        *rate.Limiter
	breaker        *circuitBreaker
	cache          *expirable.LRU[string, []byte]
	maxRetries     int
	retryBaseDelay time.Duration
	configured     bool
	authorize      func(req *http.Request)
}

func newUpstream(source, baseURL string, cfg *config.UpstreamConfig, configured bool, authorize func(req *http.Request)) *upstream {
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	u := &upstream{
		source:         source,
		baseURL:        baseURL,
		client:         &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(limit, burst),
		breaker:        newCircuitBreaker(source + "-api"),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		configured:     configured,
		authorize:      authorize,
	}
	if cfg.CacheSize > 0 && cfg.CacheTTL > 0 {
		u.cache = expirable.NewLRU[string, []byte](cfg.CacheSize, func(string, []byte) {
			metrics.CacheEvictions.WithLabelValues(upstreamCacheName).Inc()
		}, cfg.CacheTTL)
	}
	return u
}

// get fetches path and decodes the JSON body into out.
func (u *upstream) get(ctx context.Context, endpoint, path string, query url.Values, out interface{}) error {
	body, err := u.getRaw(ctx, endpoint, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", u.source, endpoint, err)
	}
	return nil
}

// getRaw fetches path and returns the response body. Successful bodies are
// cached by URL.
func (u *upstream) getRaw(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	if !u.configured {
		return nil, ErrNotConfigured
	}

	reqURL := u.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	if u.cache != nil {
		if body, ok := u.cache.Get(reqURL); ok {
			metrics.RecordCacheHit(upstreamCacheName)
			return body, nil
		}
		metrics.RecordCacheMiss(upstreamCacheName)
	}

	body, err := u.breaker.execute(func() ([]byte, error) {
		return u.fetch(ctx, endpoint, reqURL)
	})
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		u.cache.Add(reqURL, body)
		metrics.CacheSize.WithLabelValues(upstreamCacheName).Set(float64(u.cache.Len()))
	}
	return body, nil
}

func (u *upstream) fetch(ctx context.Context, endpoint, reqURL string) ([]byte, error) {
	start := time.Now()
	resp, err := u.doRequestWithRateLimit(ctx, endpoint, reqURL)
	if err != nil {
		metrics.RecordUpstreamRequest(u.source, endpoint, 0, time.Since(start))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordUpstreamRequest(u.source, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			Source:     u.source,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", u.source, endpoint, err)
	}
	return body, nil
}

// doRequestWithRateLimit performs the request, retrying HTTP 429 responses
// with exponential backoff. Retry-After (seconds) overrides the computed delay.
func (u *upstream) doRequestWithRateLimit(ctx context.Context, endpoint, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if err := u.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if u.authorize != nil {
			u.authorize(req)
		}

		resp, err := u.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		metrics.RecordUpstreamRateLimited(u.source)
		_ = resp.Body.Close()

		if attempt == u.maxRetries {
			lastErr = &StatusError{
				Source:     u.source,
				Endpoint:   endpoint,
				StatusCode: http.StatusTooManyRequests,
				Body:       fmt.Sprintf("rate limit exceeded after %d retries", u.maxRetries),
			}
			break
		}

		delay := u.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		logging.Warn().
			Str("source", u.source).
			Str("endpoint", endpoint).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Upstream rate limited, backing off")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// breakerState returns the circuit breaker state name.
func (u *upstream) breakerState() string {
	return u.breaker.State()
}

// purge drops every cached response.
func (u *upstream) purge() {
	if u.cache != nil {
		u.cache.Purge()
		metrics.CacheSize.WithLabelValues(upstreamCacheName).Set(0)
	}
}
