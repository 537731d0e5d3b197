// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelscout/internal/favorites"
)

const testCatalog = `{"results":[
	{"id":603,"title":"The Matrix","genre_ids":[28,878],"vote_average":8.2,"vote_count":24000,"popularity":80,"release_date":"1999-03-30"},
	{"id":604,"title":"The Matrix Reloaded","genre_ids":[28,878],"vote_average":7.0,"vote_count":10000,"popularity":50,"release_date":"2003-05-15"},
	{"id":862,"title":"Toy Story","genre_ids":[16,35,10751],"vote_average":8.0,"vote_count":17000,"popularity":60,"release_date":"1995-11-22"},
	{"id":13,"title":"Forrest Gump","genre_ids":[35,18,10749],"vote_average":8.5,"vote_count":26000,"popularity":70,"release_date":"1994-07-06"}
]}`

type cliTestEnv struct {
	configPath  string
	catalogPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	catalogPath := filepath.Join(base, "movies.json")
	if err := os.WriteFile(catalogPath, []byte(testCatalog), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	configPath := filepath.Join(base, "config.yaml")
	content := "favorites:\n  path: " + filepath.Join(base, "favorites") + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{configPath: configPath, catalogPath: catalogPath}
}

// run executes the CLI against the test catalog and config.
func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	full := append([]string{"--config", e.configPath, "--catalog", e.catalogPath}, args...)
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(full)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func decodeRecommendations(t *testing.T, out string) recommendationOutput {
	t.Helper()
	var got recommendationOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return got
}

func resultIDs(out recommendationOutput) []string {
	ids := make([]string, 0, len(out.Results))
	for _, r := range out.Results {
		ids = append(ids, r.Movie.ID)
	}
	return ids
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestGenresCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "genres")
	if err != nil {
		t.Fatalf("genres: %v", err)
	}
	requireContains(t, out, "Science Fiction")
	requireContains(t, out, "878")

	out, _, err = env.run(t, "genres", "--builtin", "--json")
	if err != nil {
		t.Fatalf("genres --builtin --json: %v", err)
	}
	requireContains(t, out, `"Animation"`)
}

func TestRecommendSimilar(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "recommend", "similar", "603", "--json")
	if err != nil {
		t.Fatalf("recommend similar: %v", err)
	}
	got := decodeRecommendations(t, out)
	if got.Mode != "similar" || got.Subject != "The Matrix" {
		t.Errorf("mode=%q subject=%q", got.Mode, got.Subject)
	}
	ids := resultIDs(got)
	if !containsID(ids, "604") {
		t.Errorf("expected 604 in %v", ids)
	}
	if containsID(ids, "603") {
		t.Errorf("target must not be recommended: %v", ids)
	}
	for _, r := range got.Results {
		if r.Reason == "" {
			t.Errorf("empty reason for %s", r.Movie.ID)
		}
	}

	if _, _, err := env.run(t, "recommend", "similar", "999999"); err == nil {
		t.Error("expected error for a movie outside the catalog")
	}
}

func TestRecommendBecauseYouWatched_Table(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "recommend", "because", "603")
	if err != nil {
		t.Fatalf("recommend because: %v", err)
	}
	requireContains(t, out, "because_you_watched: The Matrix")
	requireContains(t, out, "The Matrix Reloaded")
}

func TestRecommendBecauseYouWatched_UnknownMovie(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "recommend", "because", "424242")
	if err != nil {
		t.Fatalf("recommend because unknown: %v", err)
	}
	requireContains(t, out, "No recommendations.")

	out, _, err = env.run(t, "recommend", "because", "424242", "--json")
	if err != nil {
		t.Fatalf("recommend because unknown --json: %v", err)
	}
	got := decodeRecommendations(t, out)
	if got.Mode != "because_you_watched" || got.Subject != "" {
		t.Errorf("mode=%q subject=%q", got.Mode, got.Subject)
	}
	if got.Results == nil || len(got.Results) != 0 {
		t.Errorf("results = %v, want an empty list", got.Results)
	}
}

func TestRecommendGenres(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "recommend", "genres", "Animation", "--json")
	if err != nil {
		t.Fatalf("recommend genres: %v", err)
	}
	got := decodeRecommendations(t, out)
	ids := resultIDs(got)
	if len(ids) != 1 || ids[0] != "862" {
		t.Errorf("ids = %v, want [862]", ids)
	}
	if got.Subject != "Animation" {
		t.Errorf("subject = %q, want Animation", got.Subject)
	}

	_, _, err = env.run(t, "recommend", "genres", "not-a-genre")
	if err == nil || !strings.Contains(err.Error(), "unknown genre") {
		t.Errorf("expected unknown genre error, got %v", err)
	}
}

func TestRecommendTrending_Limit(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "recommend", "trending", "--limit", "2", "--json")
	if err != nil {
		t.Fatalf("recommend trending: %v", err)
	}
	got := decodeRecommendations(t, out)
	if len(got.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(got.Results))
	}
	if got.Results[0].Score < got.Results[1].Score {
		t.Errorf("results not sorted by score: %v", got.Results)
	}

	if _, _, err := env.run(t, "recommend", "trending", "--limit", "-1"); err == nil {
		t.Error("expected error for a negative limit")
	}
}

func TestFavoritesLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "favorites", "list")
	if err != nil {
		t.Fatalf("favorites list: %v", err)
	}
	requireContains(t, out, "No favorites yet.")

	out, _, err = env.run(t, "favorites", "add", "603")
	if err != nil {
		t.Fatalf("favorites add: %v", err)
	}
	requireContains(t, out, "Added The Matrix (603)")

	out, _, err = env.run(t, "favorites", "add", "603")
	if err != nil {
		t.Fatalf("favorites add again: %v", err)
	}
	requireContains(t, out, "already a favorite")

	out, _, err = env.run(t, "favorites", "list")
	if err != nil {
		t.Fatalf("favorites list: %v", err)
	}
	requireContains(t, out, "The Matrix")

	out, _, err = env.run(t, "recommend", "favorites", "--json")
	if err != nil {
		t.Fatalf("recommend favorites: %v", err)
	}
	ids := resultIDs(decodeRecommendations(t, out))
	if containsID(ids, "603") {
		t.Errorf("favorites must not be recommended back: %v", ids)
	}

	if _, _, err := env.run(t, "favorites", "remove", "603"); err != nil {
		t.Fatalf("favorites remove: %v", err)
	}
	_, _, err = env.run(t, "favorites", "remove", "603")
	if !errors.Is(err, favorites.ErrNotFound) {
		t.Errorf("second remove: err = %v, want ErrNotFound", err)
	}

	if _, _, err := env.run(t, "favorites", "add", "862"); err != nil {
		t.Fatalf("favorites add: %v", err)
	}
	out, _, err = env.run(t, "favorites", "clear")
	if err != nil {
		t.Fatalf("favorites clear: %v", err)
	}
	requireContains(t, out, "Removed 1 favorite(s).")
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := renderTable([]string{"ID", "Name"}, [][]string{{"28", "Action"}, {"16"}}, []columnAlignment{alignRight}, false)
	requireContains(t, out, "NAME")
	requireContains(t, out, "Action")
	requireContains(t, out, "16")

	if renderTable(nil, nil, nil, false) != "" {
		t.Error("no headers should render nothing")
	}
}
