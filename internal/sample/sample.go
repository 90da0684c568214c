// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sample draws a random set of downloaded site folders and copies
// their text files into one flat directory for manual review.
package sample

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pdiddy/sitescope/pkg/types"
)

// ErrTooFewFolders reports a corpus smaller than the configured minimum
// or smaller than the requested sample.
var ErrTooFewFolders = errors.New("too few folders to sample")

// Result holds the outcome of a sampling run.
type Result struct {
	Folders    []string
	Copied     int
	Duplicates int
}

// Folders lists the first-level directories of root in lexical order.
// A directory with the same name as exclude is left out, so a destination
// nested inside the corpus is never sampled.
func Folders(root, exclude string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == exclude {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

// Pick draws n distinct names using rng, clamped to [0, len(names)]. The
// input is not modified.
func Pick(names []string, n int, rng *rand.Rand) []string {
	n = min(max(n, 0), len(names))
	pool := slices.Clone(names)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n]
}

// NewRand returns a PCG source seeded with seed, or with a time-derived
// seed when seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Run samples cfg.Count folders from cfg.WebsitesDir and copies every file
// whose name matches cfg.Pattern, at any depth, into cfg.DestDir. Files
// are stored by base name; a name already present in DestDir is reported
// on w and skipped.
func Run(cfg types.SampleConfig, w io.Writer) (Result, error) {
	var result Result
	if cfg.Count < 1 {
		return result, fmt.Errorf("sample count must be at least 1, got %d", cfg.Count)
	}

	folders, err := Folders(cfg.WebsitesDir, filepath.Base(cfg.DestDir))
	if err != nil {
		return result, err
	}
	if len(folders) < cfg.MinFolders || len(folders) < cfg.Count {
		return result, fmt.Errorf("%w: %d folders in %s, need at least %d",
			ErrTooFewFolders, len(folders), cfg.WebsitesDir, max(cfg.MinFolders, cfg.Count))
	}
	if _, err := filepath.Match(cfg.Pattern, ""); err != nil {
		return result, fmt.Errorf("invalid pattern %q: %w", cfg.Pattern, err)
	}
	if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
		return result, fmt.Errorf("creating %s: %w", cfg.DestDir, err)
	}

	result.Folders = Pick(folders, cfg.Count, NewRand(cfg.Seed))

	fmt.Fprintf(w, "Selected %d folders:\n", len(result.Folders))
	for _, name := range result.Folders {
		fmt.Fprintf(w, " - %s\n", name)
	}

	for _, name := range result.Folders {
		err := filepath.WalkDir(filepath.Join(cfg.WebsitesDir, name), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if ok, _ := filepath.Match(cfg.Pattern, d.Name()); !ok {
				return nil
			}
			dest := filepath.Join(cfg.DestDir, d.Name())
			if _, err := os.Stat(dest); err == nil {
				fmt.Fprintf(w, "duplicate skipped: %s\n", d.Name())
				result.Duplicates++
				return nil
			}
			if err := copyFile(path, dest); err != nil {
				return err
			}
			result.Copied++
			return nil
		})
		if err != nil {
			return result, fmt.Errorf("copying from %s: %w", name, err)
		}
	}

	fmt.Fprintf(w, "\nCopied %d files to %s (%d duplicates skipped)\n", result.Copied, cfg.DestDir, result.Duplicates)
	return result, nil
}

// copyFile copies src to dst and carries over the modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
