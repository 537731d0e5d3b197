// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelscout/internal/api"
	"github.com/tomtom215/reelscout/internal/catalog"
	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/favorites"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/recommend"
	"github.com/tomtom215/reelscout/internal/supervisor"
	"github.com/tomtom215/reelscout/internal/supervisor/services"
)

const httpShutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg, config.ConfigFilePath()); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // Sequential component setup
func run(cfg *config.Config, configPath string) error {
	logging.Info().
		Str("provider", cfg.Upstream.Provider).
		Str("catalog_file", cfg.Catalog.File).
		Bool("favorites_in_memory", cfg.Favorites.InMemory).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Reelscout")

	genres := catalog.NewGenreIndex()
	source, err := catalog.NewSource(&cfg.Upstream, genres)
	if err != nil {
		return fmt.Errorf("create upstream source: %w", err)
	}
	store := catalog.NewStore()
	loader := catalog.NewLoader(source, store, genres, &cfg.Catalog, cfg.Upstream.TMDB.ImageBaseURL)

	favStore, err := favorites.Open(&cfg.Favorites)
	if err != nil {
		return fmt.Errorf("open favorites store: %w", err)
	}
	defer func() {
		if err := favStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing favorites store")
		}
	}()

	engine, err := recommend.NewEngine(&cfg.Recommend.Scoring, logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}

	catalogSvc := services.NewCatalogService(loader, services.CatalogServiceConfig{
		InitialLoad:     !cfg.Catalog.LoadOnStartup,
		RefreshInterval: cfg.Catalog.RefreshInterval,
	}, logging.WithComponent("catalog"))

	access := &api.CatalogAccess{Store: store, Genres: genres, Source: source}
	handler := api.NewHandler(access, favStore, catalogSvc, cfg)
	recs := api.NewRecommendHandler(engine, access, favStore, &cfg.Recommend)
	defer recs.Close()

	// Cached results are keyed by catalog version; drop them once a new
	// generation is current.
	catalogSvc.OnRefresh(func(*catalog.Snapshot) { recs.ClearCache() })

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Catalog.LoadOnStartup {
		if _, err := catalogSvc.Refresh(ctx); err != nil {
			// The API answers 503 until a scheduled or manual refresh succeeds.
			logging.Warn().Err(err).Msg("Initial catalog load failed")
		}
	}

	router := api.NewRouter(handler, recs, api.NewChiMiddlewareFromConfig(&cfg.Security))
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  httpShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(catalogSvc)
	if configPath != "" {
		tree.AddMessagingService(services.NewConfigWatchService(
			func(onChange func()) (func() error, error) {
				return config.WatchConfigFile(configPath, onChange)
			},
			reloadConfig(configPath, recs),
			logging.WithComponent("config"),
		))
		logging.Info().Str("path", configPath).Msg("Config hot reload enabled")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownTimeout, logging.WithComponent("http")))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	return nil
}
