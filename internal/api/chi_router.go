// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelscout/internal/middleware"
)

// Router wires the HTTP handlers onto a Chi mux.
type Router struct {
	handler          *Handler
	recommendHandler *RecommendHandler
	chiMiddleware    *ChiMiddleware
}

// NewRouter creates a router. A nil middleware factory uses the defaults.
func NewRouter(handler *Handler, recommendHandler *RecommendHandler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:          handler,
		recommendHandler: recommendHandler,
		chiMiddleware:    mw,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)        // Accept or mint X-Request-ID, add it to the log context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(RequestLogger())             // Access log through the request-scoped logger
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).MethodNotAllowed()
	})

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting for monitoring probes.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// API v1
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/genres", router.handler.Genres)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", router.handler.Movies)
			r.Get("/{id}", router.handler.Movie)
			r.Get("/{id}/similar", router.recommendHandler.SimilarMovies)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", router.recommendHandler.RecommendationsPage)
			r.Get("/because-you-watched/{id}", router.recommendHandler.BecauseYouWatched)
			r.Get("/favorites", router.recommendHandler.FavoriteRecommendations)
			r.Get("/genres", router.recommendHandler.GenreRecommendations)
			r.Get("/trending", router.recommendHandler.TrendingRecommendations)
			r.Get("/status", router.recommendHandler.GetRecommendationStatus)
			r.Get("/config", router.recommendHandler.GetRecommendationConfig)
			r.With(router.chiMiddleware.RateLimitWrite()).Put("/config", router.recommendHandler.UpdateRecommendationConfig)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", router.handler.ListFavorites)
			r.Get("/{id}", router.handler.GetFavorite)

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitWrite())
				r.Post("/", router.handler.AddFavorite)
				r.Delete("/", router.handler.ClearFavorites)
				r.Delete("/{id}", router.handler.RemoveFavorite)
			})
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", router.handler.CatalogStatus)
			r.With(router.chiMiddleware.RateLimitRefresh()).Post("/refresh", router.handler.RefreshCatalog)
		})
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
