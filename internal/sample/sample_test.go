// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sample

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sitescope/pkg/types"
)

// makeCorpus creates n site folders, each with one nested text file named
// after the site and one shared file name.
func makeCorpus(t *testing.T, n int) string {
	t.Helper()
	root := t.TempDir()
	for i := range n {
		site := fmt.Sprintf("site%02d.com", i)
		dir := filepath.Join(root, site, "2015")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, site+".txt"), []byte(site), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>x</p>"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, site, "robots.txt"), []byte(site), 0o644))
	}
	return root
}

func TestFolders_ExcludesDestination(t *testing.T) {
	root := makeCorpus(t, 3)
	require.NoError(t, os.Mkdir(filepath.Join(root, "random_select"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), nil, 0o644))

	got, err := Folders(root, "random_select")
	require.NoError(t, err)
	assert.Equal(t, []string{"site00.com", "site01.com", "site02.com"}, got)
}

func TestPick_Deterministic(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f"}
	first := Pick(names, 3, NewRand(42))
	second := Pick(names, 3, NewRand(42))

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, names)

	seen := map[string]bool{}
	for _, n := range first {
		assert.False(t, seen[n], "duplicate pick %s", n)
		seen[n] = true
	}
}

func TestRun(t *testing.T) {
	root := makeCorpus(t, 5)
	dest := filepath.Join(t.TempDir(), "random_select")

	old := time.Date(2016, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(root, "site00.com", "2015", "site00.com.txt"), old, old))

	cfg := types.SampleConfig{
		WebsitesDir: root,
		DestDir:     dest,
		Count:       5,
		MinFolders:  3,
		Pattern:     "*.txt",
		Seed:        7,
	}
	var buf bytes.Buffer
	result, err := Run(cfg, &buf)
	require.NoError(t, err)

	assert.Len(t, result.Folders, 5)
	// Five per-site files plus the first robots.txt; four robots.txt duplicates.
	assert.Equal(t, 6, result.Copied)
	assert.Equal(t, 4, result.Duplicates)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
	assert.NoFileExists(t, filepath.Join(dest, "index.html"))

	info, err := os.Stat(filepath.Join(dest, "site00.com.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	out := buf.String()
	assert.Contains(t, out, "Selected 5 folders:")
	assert.Contains(t, out, "duplicate skipped: robots.txt")
}

func TestRun_TooFewFolders(t *testing.T) {
	tests := []struct {
		name  string
		count int
		min   int
	}{
		{name: "below minimum", count: 1, min: 10},
		{name: "count exceeds corpus", count: 4, min: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.SampleConfig{
				WebsitesDir: makeCorpus(t, 3),
				DestDir:     filepath.Join(t.TempDir(), "out"),
				Count:       tt.count,
				MinFolders:  tt.min,
				Pattern:     "*.txt",
			}
			_, err := Run(cfg, &bytes.Buffer{})
			assert.ErrorIs(t, err, ErrTooFewFolders)
			assert.NoDirExists(t, cfg.DestDir)
		})
	}
}

func TestRun_InvalidCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		t.Run(fmt.Sprint(count), func(t *testing.T) {
			cfg := types.SampleConfig{
				WebsitesDir: makeCorpus(t, 3),
				DestDir:     filepath.Join(t.TempDir(), "out"),
				Count:       count,
				Pattern:     "*.txt",
			}
			var result Result
			require.NotPanics(t, func() {
				var err error
				result, err = Run(cfg, &bytes.Buffer{})
				assert.Error(t, err)
			})
			assert.Empty(t, result.Folders)
			assert.NoDirExists(t, cfg.DestDir)
		})
	}
}

func TestRun_MissingRoot(t *testing.T) {
	cfg := types.SampleConfig{WebsitesDir: filepath.Join(t.TempDir(), "missing"), Pattern: "*.txt"}
	_, err := Run(cfg, &bytes.Buffer{})
	assert.Error(t, err)
}
