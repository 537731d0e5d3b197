// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelscout/internal/catalog"
	"github.com/tomtom215/reelscout/internal/models"
)

func newGenresCommand(ctx *commandContext) *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List known genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var genres []models.Genre
			if builtin {
				genres = catalog.NewGenreIndex().Genres()
			} else {
				lc, err := ctx.loadCatalog(cmd.Context())
				if err != nil {
					return err
				}
				genres = lc.snapshot.Genres
			}

			if ctx.opts.jsonOutput {
				return writeJSON(cmd, genres)
			}
			rows := make([][]string, 0, len(genres))
			for _, g := range genres {
				rows = append(rows, []string{strconv.Itoa(int(g.ID)), g.Name})
			}
			return writeTable(cmd, []string{"ID", "Name"}, rows, []columnAlignment{alignRight, alignLeft})
		},
	}

	cmd.Flags().BoolVar(&builtin, "builtin", false, "List the built-in genres without loading a catalog")
	return cmd
}
