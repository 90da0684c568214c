// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze runs the personalization and tracking profiles over single
// documents and over a whole corpus.
package analyze

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/sourcegraph/conc/iter"

	"github.com/pdiddy/sitescope/internal/catalogue"
	"github.com/pdiddy/sitescope/internal/corpus"
	"github.com/pdiddy/sitescope/internal/extract"
	"github.com/pdiddy/sitescope/internal/logging"
	"github.com/pdiddy/sitescope/internal/score"
	"github.com/pdiddy/sitescope/pkg/types"
)

// NewScorer builds the scorer for profile. A non-empty cataloguePath
// replaces the built-in catalogue. The tracking profile also carries the
// structural probes.
func NewScorer(profile types.Profile, cataloguePath string) (*score.Scorer, error) {
	var (
		cat *catalogue.Catalogue
		err error
	)
	if cataloguePath != "" {
		cat, err = catalogue.LoadFile(cataloguePath)
	} else {
		cat, err = catalogue.ByName(string(profile))
	}
	if err != nil {
		return nil, err
	}

	switch profile {
	case types.ProfilePersonalization:
		return score.New(cat), nil
	case types.ProfileTracking:
		if _, ok := cat.Category(score.MarkupSignals); ok {
			return nil, fmt.Errorf("catalogue %s: category %q is reserved for markup probes", cat.Name(), score.MarkupSignals)
		}
		return score.New(cat, score.WithProbes(score.MarkupSignals, score.TrackingProbes(cat)...)), nil
	default:
		return nil, fmt.Errorf("unknown profile %q", profile)
	}
}

// Analyzer scores documents for one profile.
type Analyzer struct {
	Profile types.Profile
	Scorer  *score.Scorer

	// Workers bounds concurrent document analysis. Values below 1 mean 1.
	Workers int

	// Corpus selects snapshots in AnalyzeCorpus.
	Corpus types.AnalysisConfig

	Logger *slog.Logger
}

// New returns an Analyzer configured from cfg.
func New(profile types.Profile, cfg types.AnalysisConfig, log *slog.Logger) (*Analyzer, error) {
	s, err := NewScorer(profile, cfg.CataloguePath)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Analyzer{Profile: profile, Scorer: s, Workers: cfg.Workers, Corpus: cfg, Logger: log}, nil
}

// AnalyzeFile reads and scores one document. Read and parse failures never
// escape: they yield a zero-score result with Error set.
func (a *Analyzer) AnalyzeFile(path string) types.DocumentResult {
	id := filepath.Base(path)
	doc, err := extract.ReadFile(path)
	if err != nil {
		a.Logger.Warn("document failed", "path", path, "error", err)
		res := a.Scorer.Empty(id)
		res.FilePath = path
		res.Error = err.Error()
		return res
	}

	res := a.Scorer.Score(id, doc)
	res.FilePath = path
	a.Logger.Debug("document scored", "path", path, "score", res.TotalScore, "max", res.MaxScore)
	return res
}

// AnalyzeCorpus scores every snapshot under root, printing one line per
// document and a summary to w. Results keep corpus order regardless of
// Workers. A missing root fails before any document is read; cancellation
// stops between documents and returns what was analyzed so far.
func (a *Analyzer) AnalyzeCorpus(ctx context.Context, root string, w io.Writer) (types.BatchResult, error) {
	snaps, err := corpus.Walk(root, a.Corpus)
	if err != nil {
		return types.BatchResult{}, err
	}
	fmt.Fprintf(w, "Found %d website/year snapshots to analyze\n", len(snaps))

	type outcome struct {
		site types.SiteResult
		done bool
	}

	var (
		mu    sync.Mutex
		count int
	)
	mapper := iter.Mapper[corpus.Snapshot, outcome]{MaxGoroutines: max(a.Workers, 1)}
	outcomes := mapper.Map(snaps, func(s *corpus.Snapshot) outcome {
		if ctx.Err() != nil {
			return outcome{}
		}
		res := a.AnalyzeFile(s.Path)
		res.DocumentID = s.ID()

		mu.Lock()
		count++
		if res.Error != "" {
			fmt.Fprintf(w, "[%d/%d] failed:  %s (%s)\n", count, len(snaps), s.ID(), res.Error)
		} else {
			fmt.Fprintf(w, "[%d/%d] analyzed: %s score %d/%d, %d features\n",
				count, len(snaps), s.ID(), res.TotalScore, res.MaxScore, res.FeatureCount())
		}
		mu.Unlock()

		return outcome{site: types.SiteResult{Website: s.Website, Year: s.Year, Result: res}, done: true}
	})

	batch := types.BatchResult{Profile: a.Profile}
	for _, o := range outcomes {
		if !o.done {
			continue
		}
		batch.Sites = append(batch.Sites, o.site)
		if o.site.Result.Error != "" {
			batch.Failed++
		} else {
			batch.Analyzed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d analyzed, %d failed (total: %d)\n",
		batch.Analyzed, batch.Failed, batch.Total())

	if err := ctx.Err(); err != nil {
		return batch, fmt.Errorf("analysis interrupted: %w", err)
	}
	return batch, nil
}
