// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelscout/internal/favorites"
	"github.com/tomtom215/reelscout/internal/models"
	"github.com/tomtom215/reelscout/internal/validation"
)

func newFavoritesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage the favorites list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorites, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var favs []models.FavoriteMovie
			err := ctx.withFavorites(func(store favorites.Store) error {
				var err error
				favs, err = store.List(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			if ctx.opts.jsonOutput {
				return writeJSON(cmd, favs)
			}
			if len(favs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
				return nil
			}
			rows := make([][]string, 0, len(favs))
			for _, f := range favs {
				rows = append(rows, []string{
					f.ID,
					f.Title,
					formatYear(f.Year),
					formatRating(f.Rating),
					f.SavedAt.Local().Format(time.DateTime),
				})
			}
			return writeTable(cmd,
				[]string{"ID", "Title", "Year", "Rating", "Saved"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <movie-id>",
		Short: "Add a catalog or upstream movie to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			movie, err := lc.resolveMovie(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fav := models.NewFavorite(movie, time.Now())
			if err := validation.ValidateStruct(&fav); err != nil {
				return fmt.Errorf("invalid favorite: %w", err)
			}

			var added bool
			err = ctx.withFavorites(func(store favorites.Store) error {
				added, err = store.Add(cmd.Context(), &fav)
				return err
			})
			if err != nil {
				return err
			}
			if ctx.opts.jsonOutput {
				return writeJSON(cmd, map[string]any{"favorite": fav, "added": added})
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to favorites.\n", fav.Title, fav.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is already a favorite.\n", fav.Title, fav.ID)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "remove <movie-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a movie from favorites",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed bool
			err := ctx.withFavorites(func(store favorites.Store) error {
				var err error
				removed, err = store.Remove(cmd.Context(), args[0])
				return err
			})
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("movie %s: %w", args[0], favorites.ErrNotFound)
			}
			if ctx.opts.jsonOutput {
				return writeJSON(cmd, map[string]any{"id": args[0], "removed": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites.\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var n int
			err := ctx.withFavorites(func(store favorites.Store) error {
				var err error
				n, err = store.Clear(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			if ctx.opts.jsonOutput {
				return writeJSON(cmd, map[string]any{"cleared": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d favorite(s).\n", n)
			return nil
		},
	})

	return cmd
}
