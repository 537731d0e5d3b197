// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package recommend

import (
	"sort"

	"github.com/tomtom215/reelscout/internal/models"
)

// rank sorts results by descending score and truncates to limit. The sort is
// stable so equal scores keep catalog order.
func rank(results []Result, limit int) []Result {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// resolveLimit returns limit, or def when limit is not positive.
func resolveLimit(limit, def int) int {
	if limit > 0 {
		return limit
	}
	return def
}

// genreNames resolves ids to names in order, skipping misses, and stops
// after maxNames names when maxNames is positive.
func genreNames(lookup GenreLookup, ids []models.GenreID, maxNames int) []string {
	if lookup == nil || len(ids) == 0 {
		return nil
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := lookup.GenreName(id)
		if !ok {
			continue
		}
		names = append(names, name)
		if maxNames > 0 && len(names) == maxNames {
			break
		}
	}
	return names
}

// matchingGenres returns the movie's distinct genres contained in set, in
// the movie's own order.
func matchingGenres(m *models.Movie, set map[models.GenreID]struct{}) []models.GenreID {
	var matched []models.GenreID
	seen := make(map[models.GenreID]struct{}, len(m.Genres))
	for _, g := range m.Genres {
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		if _, ok := set[g]; ok {
			matched = append(matched, g)
		}
	}
	return matched
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
