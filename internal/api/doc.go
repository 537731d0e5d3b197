// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Package api provides the HTTP REST API layer for Reelscout.

Handlers read the current catalog snapshot, run the recommendation engine
and manage the favorites list. Every response uses the same JSON envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "Movie not found"}}

Key Components:

  - Router: Chi route table and middleware stack
  - Handler: catalog, favorites and health endpoints
  - RecommendHandler: recommendation endpoints with a response cache keyed
    by catalog version
  - ResponseWriter: envelope formatting and error codes
  - ChiMiddleware: CORS (go-chi/cors) and rate limiting (go-chi/httprate)

Routes (/api/v1):

	GET    /health, /health/live, /health/ready
	GET    /genres
	GET    /movies?q=&genre=&limit=&offset=
	GET    /movies/{id}
	GET    /movies/{id}/similar?limit=
	GET    /recommendations
	GET    /recommendations/because-you-watched/{id}
	GET    /recommendations/favorites
	GET    /recommendations/genres?genres=28,12
	GET    /recommendations/trending
	GET    /recommendations/status
	GET    /recommendations/config
	PUT    /recommendations/config
	GET    /favorites
	POST   /favorites
	DELETE /favorites
	GET    /favorites/{id}
	DELETE /favorites/{id}
	GET    /catalog
	POST   /catalog/refresh

Prometheus metrics are served at /metrics.

Usage Example:

	access := &api.CatalogAccess{Store: store, Genres: genres, Source: source}
	handler := api.NewHandler(access, favs, catalogService, cfg)
	recs := api.NewRecommendHandler(engine, access, favs, &cfg.Recommend)
	router := api.NewRouter(handler, recs, api.NewChiMiddlewareFromConfig(&cfg.Security))

	http.ListenAndServe(":8080", router.SetupChi())

Thread Safety:

Handlers are safe for concurrent use. The catalog snapshot is immutable once
published and the favorites store and response cache synchronize internally.
*/
package api
