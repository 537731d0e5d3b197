// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelscout/internal/catalog"
	"github.com/tomtom215/reelscout/internal/config"
	"github.com/tomtom215/reelscout/internal/favorites"
	"github.com/tomtom215/reelscout/internal/logging"
	"github.com/tomtom215/reelscout/internal/models"
	"github.com/tomtom215/reelscout/internal/recommend"
)

// cliOptions holds the persistent flags.
type cliOptions struct {
	configPath  string
	catalogPath string
	logLevel    string
	jsonOutput  bool
}

type commandContext struct {
	opts *cliOptions

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

// loadedCatalog is one catalog load with the pieces needed to resolve
// movies and genres.
type loadedCatalog struct {
	snapshot *catalog.Snapshot
	genres   *catalog.GenreIndex
	source   catalog.Source
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}
	ctx := &commandContext{opts: opts}

	rootCmd := &cobra.Command{
		Use:           "reelscout",
		Short:         "Browse movies and get recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(logging.Config{
				Level:  opts.logLevel,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.StringVar(&opts.catalogPath, "catalog", "", "Load the catalog from this JSON file instead of the upstream")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Write JSON instead of a table")

	rootCmd.AddCommand(newRecommendCommand(ctx))
	rootCmd.AddCommand(newGenresCommand(ctx))
	rootCmd.AddCommand(newFavoritesCommand(ctx))

	return rootCmd
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.LoadFile(strings.TrimSpace(c.opts.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		if path := strings.TrimSpace(c.opts.catalogPath); path != "" {
			cfg.Catalog.File = path
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loadCatalog loads one catalog generation. The upstream source is created
// only when no catalog file is configured.
func (c *commandContext) loadCatalog(ctx context.Context) (*loadedCatalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	genres := catalog.NewGenreIndex()
	var source catalog.Source
	if cfg.Catalog.File == "" {
		source, err = catalog.NewSource(&cfg.Upstream, genres)
		if err != nil {
			return nil, err
		}
	}

	loader := catalog.NewLoader(source, catalog.NewStore(), genres, &cfg.Catalog, cfg.Upstream.TMDB.ImageBaseURL)
	snap, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return &loadedCatalog{snapshot: snap, genres: genres, source: source}, nil
}

func (c *commandContext) withFavorites(fn func(favorites.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := favorites.Open(&cfg.Favorites)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func (c *commandContext) engine() (*recommend.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(&cfg.Recommend.Scoring, logging.WithComponent("recommend"))
}

// resolveMovie finds id in the loaded catalog, then asks the upstream.
func (l *loadedCatalog) resolveMovie(ctx context.Context, id string) (*models.Movie, error) {
	if m, ok := l.snapshot.Find(id); ok {
		return m, nil
	}
	if l.source == nil {
		return nil, fmt.Errorf("movie %s: %w", id, catalog.ErrNotFound)
	}
	m, err := l.source.Movie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up movie %s: %w", id, err)
	}
	return m, nil
}
