// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelscout/internal/logging"
)

// CatalogStatus is the payload of GET /catalog.
type CatalogStatus struct {
	Loaded       bool       `json:"loaded"`
	Version      uint64     `json:"version,omitempty"`
	Movies       int        `json:"movies"`
	Genres       int        `json:"genres"`
	Source       string     `json:"source,omitempty"`
	LoadedAt     *time.Time `json:"loaded_at,omitempty"`
	Provider     string     `json:"provider,omitempty"`
	BreakerState string     `json:"breaker_state,omitempty"`
}

// CatalogStatus handles GET /api/v1/catalog
func (h *Handler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.catalogStatus())
}

func (h *Handler) catalogStatus() CatalogStatus {
	var status CatalogStatus
	if h.catalog == nil {
		return status
	}

	if src := h.catalog.Source; src != nil {
		status.Provider = src.Name()
		if br, ok := src.(breakerReporter); ok {
			status.BreakerState = br.BreakerState()
		}
	}

	snap, err := h.catalog.snapshot()
	if err != nil {
		return status
	}
	loadedAt := snap.LoadedAt
	status.Loaded = true
	status.Version = snap.Version
	status.Movies = snap.Len()
	status.Genres = len(snap.Genres)
	status.Source = snap.Source
	status.LoadedAt = &loadedAt
	return status
}

// RefreshCatalog handles POST /api/v1/catalog/refresh
// Queues a background reload and answers 202 without waiting for it.
func (h *Handler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.refresher == nil {
		respondServiceError(rw, ErrRefreshUnavailable)
		return
	}

	queued := h.refresher.TriggerRefresh()
	logging.Ctx(r.Context()).Info().Bool("queued", queued).Msg("Catalog refresh requested")

	rw.Accepted(map[string]interface{}{
		"queued":  queued,
		"message": refreshMessage(queued),
		"catalog": h.catalogStatus(),
	})
}

func refreshMessage(queued bool) string {
	if queued {
		return "Catalog refresh queued"
	}
	return "Catalog refresh already pending"
}
