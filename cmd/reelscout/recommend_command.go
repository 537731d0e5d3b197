// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelscout/internal/catalog"
	"github.com/tomtom215/reelscout/internal/favorites"
	"github.com/tomtom215/reelscout/internal/models"
	"github.com/tomtom215/reelscout/internal/recommend"
)

// recommendationOutput is the --json shape of every recommend subcommand.
type recommendationOutput struct {
	Mode    string             `json:"mode"`
	Subject string             `json:"subject,omitempty"`
	Results []recommend.Result `json:"results"`
}

// recommendFunc computes results for one subcommand.
type recommendFunc func(cmd *cobra.Command, args []string, lc *loadedCatalog, engine *recommend.Engine, limit int) (*recommendationOutput, error)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Compute recommendations over the catalog",
	}

	cmd.AddCommand(newRecommendSubcommand(ctx, &cobra.Command{
		Use:   "similar <movie-id>",
		Short: "Movies similar to one movie",
		Args:  cobra.ExactArgs(1),
	}, recommendSimilar))

	cmd.AddCommand(newRecommendSubcommand(ctx, &cobra.Command{
		Use:     "because <movie-id>",
		Aliases: []string{"because-you-watched"},
		Short:   "Movies to watch after a catalog movie",
		Args:    cobra.ExactArgs(1),
	}, recommendBecauseYouWatched))

	cmd.AddCommand(newRecommendSubcommand(ctx, &cobra.Command{
		Use:   "favorites",
		Short: "Movies matching the taste profile of your favorites",
		Args:  cobra.NoArgs,
	}, func(cmd *cobra.Command, _ []string, lc *loadedCatalog, engine *recommend.Engine, limit int) (*recommendationOutput, error) {
		var ids []string
		err := ctx.withFavorites(func(store favorites.Store) error {
			var err error
			ids, err = store.IDs(cmd.Context())
			return err
		})
		if err != nil {
			return nil, err
		}
		return &recommendationOutput{
			Mode:    recommend.ModeFavorites.String(),
			Results: engine.FromFavorites(ids, lc.snapshot.Movies, lc.snapshot, limit),
		}, nil
	}))

	cmd.AddCommand(newRecommendSubcommand(ctx, &cobra.Command{
		Use:   "genres <genre>...",
		Short: "Movies in preferred genres (names or ids)",
		Args:  cobra.MinimumNArgs(1),
	}, recommendGenres))

	cmd.AddCommand(newRecommendSubcommand(ctx, &cobra.Command{
		Use:   "trending",
		Short: "Highly rated, popular and recent movies",
		Args:  cobra.NoArgs,
	}, func(_ *cobra.Command, _ []string, lc *loadedCatalog, engine *recommend.Engine, limit int) (*recommendationOutput, error) {
		return &recommendationOutput{
			Mode:    recommend.ModeTrending.String(),
			Results: engine.Trending(lc.snapshot.Movies, limit),
		}, nil
	}))

	return cmd
}

// newRecommendSubcommand wires the shared --limit flag, catalog load and
// output to run.
func newRecommendSubcommand(ctx *commandContext, cmd *cobra.Command, run recommendFunc) *cobra.Command {
	var limit int
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (0 uses the strategy default)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if limit < 0 {
			return errors.New("--limit must not be negative")
		}
		engine, err := ctx.engine()
		if err != nil {
			return err
		}
		lc, err := ctx.loadCatalog(cmd.Context())
		if err != nil {
			return err
		}
		out, err := run(cmd, args, lc, engine, limit)
		if err != nil {
			return err
		}
		if ctx.opts.jsonOutput {
			return writeJSON(cmd, out)
		}
		return writeResults(cmd, out)
	}
	return cmd
}

func recommendSimilar(cmd *cobra.Command, args []string, lc *loadedCatalog, engine *recommend.Engine, limit int) (*recommendationOutput, error) {
	target, err := lc.resolveMovie(cmd.Context(), args[0])
	if err != nil {
		return nil, err
	}
	return &recommendationOutput{
		Mode:    recommend.ModeSimilar.String(),
		Subject: target.Title,
		Results: engine.SimilarToMovie(target, lc.snapshot.Movies, lc.snapshot, limit),
	}, nil
}

func recommendBecauseYouWatched(cmd *cobra.Command, args []string, lc *loadedCatalog, engine *recommend.Engine, limit int) (*recommendationOutput, error) {
	id := args[0]
	if m, ok := lc.snapshot.Find(id); ok {
		return &recommendationOutput{
			Mode:    recommend.ModeBecauseYouWatched.String(),
			Subject: m.Title,
			Results: engine.BecauseYouWatched(id, lc.snapshot.Movies, lc.snapshot, limit),
		}, nil
	}

	// Upstream-only movies are scored as a plain similarity query.
	target, err := lc.resolveMovie(cmd.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return &recommendationOutput{
			Mode:    recommend.ModeBecauseYouWatched.String(),
			Results: []recommend.Result{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = engine.GetConfig().BecauseYouWatched.DefaultLimit
	}
	return &recommendationOutput{
		Mode:    recommend.ModeBecauseYouWatched.String(),
		Subject: target.Title,
		Results: engine.SimilarToMovie(target, lc.snapshot.Movies, lc.snapshot, limit),
	}, nil
}

func recommendGenres(_ *cobra.Command, args []string, lc *loadedCatalog, engine *recommend.Engine, limit int) (*recommendationOutput, error) {
	ids, err := parseGenreArgs(args, lc.genres)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := lc.snapshot.GenreName(id); ok {
			names = append(names, name)
		}
	}
	return &recommendationOutput{
		Mode:    recommend.ModeGenres.String(),
		Subject: strings.Join(names, ", "),
		Results: engine.ByGenrePreference(ids, lc.snapshot.Movies, lc.snapshot, limit),
	}, nil
}

// parseGenreArgs accepts numeric ids and genre names, in order, without
// duplicates.
func parseGenreArgs(args []string, idx *catalog.GenreIndex) ([]models.GenreID, error) {
	ids := make([]models.GenreID, 0, len(args))
	seen := make(map[models.GenreID]struct{}, len(args))
	var unknown []string
	for _, arg := range args {
		var id models.GenreID
		if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil && n > 0 {
			id = models.GenreID(n)
		} else if resolved, ok := idx.Lookup(arg); ok {
			id = resolved
		} else {
			unknown = append(unknown, arg)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown genre(s): %s", strings.Join(unknown, ", "))
	}
	return ids, nil
}

func writeResults(cmd *cobra.Command, out *recommendationOutput) error {
	if out.Subject != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Mode, out.Subject)
	}
	if len(out.Results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recommendations.")
		return nil
	}

	rows := make([][]string, 0, len(out.Results))
	for i, r := range out.Results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Movie.ID,
			r.Movie.Title,
			formatYear(r.Movie.ReleaseYear),
			formatRating(r.Movie.Rating),
			strconv.FormatFloat(r.Score, 'f', 3, 64),
			r.Reason,
		})
	}
	return writeTable(cmd,
		[]string{"#", "ID", "Title", "Year", "Rating", "Score", "Reason"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}
