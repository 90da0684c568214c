// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sitescope/pkg/types"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.com", "2010", "a_index.html"))
	touch(t, filepath.Join(root, "b.com", "2010", "b_index.html"))
	touch(t, filepath.Join(root, "b.com", "2012", "z_index.html"))
	touch(t, filepath.Join(root, "b.com", "2012", "m_index.html"))
	touch(t, filepath.Join(root, "b.com", "2013", "page.html"))
	touch(t, filepath.Join(root, "b.com", "2030", "late_index.html"))
	touch(t, filepath.Join(root, "b.com", "misc", "x_index.html"))
	touch(t, filepath.Join(root, "stray_index.html"))

	got, err := Walk(root, types.DefaultConfig().Analysis)
	require.NoError(t, err)

	assert.Equal(t, []Snapshot{
		{Website: "a.com", Year: 2010, Path: filepath.Join(root, "a.com", "2010", "a_index.html")},
		{Website: "b.com", Year: 2010, Path: filepath.Join(root, "b.com", "2010", "b_index.html")},
		{Website: "b.com", Year: 2012, Path: filepath.Join(root, "b.com", "2012", "m_index.html")},
	}, got)
	assert.Equal(t, "b.com/2012", got[2].ID())
}

func TestWalkYearBounds(t *testing.T) {
	root := t.TempDir()
	for _, y := range []string{"2008", "2009", "2025", "2026"} {
		touch(t, filepath.Join(root, "c.org", y, "c_index.html"))
	}

	got, err := Walk(root, types.DefaultConfig().Analysis)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2009, got[0].Year)
	assert.Equal(t, 2025, got[1].Year)
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"), types.DefaultConfig().Analysis)
	assert.ErrorIs(t, err, ErrMissingRoot)

	file := filepath.Join(t.TempDir(), "f.txt")
	touch(t, file)
	_, err = Walk(file, types.DefaultConfig().Analysis)
	assert.ErrorIs(t, err, ErrMissingRoot)
}

func TestWalkSiteNamesWithPatternCharacters(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "shop[1].com", "2014", "s_index.html"))
	touch(t, filepath.Join(root, "star*.net", "2014", "t_index.html"))
	touch(t, filepath.Join(root, "q?.org", "2014", "q_index.html"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.com", "2014", "a_index.html"), 0o755))
	touch(t, filepath.Join(root, "dir.com", "2014", "b_index.html"))

	got, err := Walk(root, types.DefaultConfig().Analysis)
	require.NoError(t, err)

	assert.Equal(t, []Snapshot{
		{Website: "dir.com", Year: 2014, Path: filepath.Join(root, "dir.com", "2014", "b_index.html")},
		{Website: "q?.org", Year: 2014, Path: filepath.Join(root, "q?.org", "2014", "q_index.html")},
		{Website: "shop[1].com", Year: 2014, Path: filepath.Join(root, "shop[1].com", "2014", "s_index.html")},
		{Website: "star*.net", Year: 2014, Path: filepath.Join(root, "star*.net", "2014", "t_index.html")},
	}, got)
}
