// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelscout/internal/metrics"
)

// Version is reported by the health endpoint. Overridden at build time with
// -ldflags "-X github.com/tomtom215/reelscout/internal/api.Version=...".
var Version = "dev"

// healthCheckTimeout bounds the favorites probe of the health endpoints.
const healthCheckTimeout = 2 * time.Second

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status             string        `json:"status"`
	Version            string        `json:"version"`
	Uptime             float64       `json:"uptime"`
	Catalog            CatalogStatus `json:"catalog"`
	FavoritesReachable bool          `json:"favorites_reachable"`
	FavoritesCount     int           `json:"favorites_count"`
}

// Health handles GET /api/v1/health
// Reports catalog generation and size and whether the favorites store answers.
// The service is degraded, not down, while the catalog is still loading.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	count, favErr := h.probeFavorites(r.Context())
	catalog := h.catalogStatus()

	status := "healthy"
	if favErr != nil || !catalog.Loaded {
		status = "degraded"
	}

	uptime := time.Since(h.startTime).Seconds()
	metrics.AppUptime.Set(uptime)

	rw.Success(HealthStatus{
		Status:             status,
		Version:            Version,
		Uptime:             uptime,
		Catalog:            catalog,
		FavoritesReachable: favErr == nil,
		FavoritesCount:     count,
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only when a catalog snapshot is loaded and the favorites
// store answers; 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	_, favErr := h.probeFavorites(r.Context())
	catalogLoaded := h.catalog != nil && h.catalog.Store != nil && h.catalog.Store.Loaded()
	ready := catalogLoaded && favErr == nil

	data := map[string]interface{}{
		"catalog_loaded":      catalogLoaded,
		"favorites_reachable": favErr == nil,
		"ready_to_serve":      ready,
		"uptime":              time.Since(h.startTime).Seconds(),
	}

	if !ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service is not ready", data)
		return
	}
	rw.Success(data)
}

func (h *Handler) probeFavorites(ctx context.Context) (int, error) {
	if h.favorites == nil {
		return 0, ErrStoreUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return h.favorites.Count(ctx)
}
