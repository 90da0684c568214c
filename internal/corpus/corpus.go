// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus locates the representative snapshot of every website and
// year in a downloaded archive tree laid out as
// <root>/<website>/<year>/<name>_index.html.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/sitescope/pkg/types"
)

// ErrMissingRoot reports a corpus root that does not exist or is not a directory.
var ErrMissingRoot = errors.New("corpus root missing")

// Snapshot is one (website, year) document selected for analysis.
type Snapshot struct {
	Website string
	Year    int
	Path    string
}

// ID returns "website/year".
func (s Snapshot) ID() string {
	return s.Website + "/" + strconv.Itoa(s.Year)
}

// Walk lists websites in lexical order and, for every year in
// [cfg.MinYear, cfg.MaxYear], selects the first file matching cfg.IndexGlob.
// Websites or years without a match are skipped.
func Walk(root string, cfg types.AnalysisConfig) ([]Snapshot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrMissingRoot, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading corpus root %s: %w", root, err)
	}

	var out []Snapshot
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		siteDir := filepath.Join(root, entry.Name())
		for year := cfg.MinYear; year <= cfg.MaxYear; year++ {
			path, ok := firstMatch(filepath.Join(siteDir, strconv.Itoa(year)), cfg.IndexGlob)
			if !ok {
				continue
			}
			out = append(out, Snapshot{Website: entry.Name(), Year: year, Path: path})
		}
	}
	return out, nil
}

// firstMatch returns the lexically first regular file in dir whose name
// matches glob. Only the name is matched, so dir may contain pattern
// metacharacters.
func firstMatch(dir, glob string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if ok, err := filepath.Match(glob, e.Name()); err != nil || !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}
