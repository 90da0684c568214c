// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score applies a pattern catalogue to an extracted document and
// produces a DocumentResult.
//
// Items are scanned in a fixed order: scripts, then text nodes, then
// attributes, each in document order. Every subcategory scores 0 or 1 and
// keeps the first evidence found in that order. Optional probes add their
// own binary subcategories under a separate category after the scans.
package score

import (
	"unicode/utf8"

	"github.com/pdiddy/sitescope/internal/catalogue"
	"github.com/pdiddy/sitescope/internal/extract"
	"github.com/pdiddy/sitescope/pkg/types"
)

// MaxEvidenceLen is the number of characters kept from a matched value.
const MaxEvidenceLen = 100

// Truncate shortens s to MaxEvidenceLen characters plus "..." when longer.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxEvidenceLen {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxEvidenceLen {
			return s[:i] + "..."
		}
		n++
	}
	return s
}

// Probe is a structural check that contributes one binary subcategory.
type Probe interface {
	// Name is the subcategory name the probe scores under.
	Name() string

	// Probe returns every candidate evidence in document order.
	Probe(doc *extract.Document) []types.Evidence
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithProbes registers probes under the given category name.
func WithProbes(category string, probes ...Probe) Option {
	return func(s *Scorer) {
		s.probeCategory = category
		s.probes = append(s.probes, probes...)
	}
}

// Scorer scores documents against one catalogue. It holds no per-document
// state and is safe for concurrent use.
type Scorer struct {
	cat           *catalogue.Catalogue
	probeCategory string
	probes        []Probe
}

// New returns a Scorer for cat.
func New(cat *catalogue.Catalogue, opts ...Option) *Scorer {
	s := &Scorer{cat: cat}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Catalogue returns the catalogue the scorer matches against.
func (s *Scorer) Catalogue() *catalogue.Catalogue { return s.cat }

// MaxScore returns the highest score any document can reach.
func (s *Scorer) MaxScore() int {
	return s.cat.MaxScore() + len(s.probes)
}

// CategoryOrder lists every scored category, probe category last.
func (s *Scorer) CategoryOrder() []string {
	order := s.cat.CategoryNames()
	if len(s.probes) > 0 {
		order = append(order, s.probeCategory)
	}
	return order
}

// CategoryMax returns the maximum score of one category.
func (s *Scorer) CategoryMax(name string) int {
	if len(s.probes) > 0 && name == s.probeCategory {
		return len(s.probes)
	}
	return s.cat.CategoryMax(name)
}

// CategoryLabel returns the display name of one category.
func (s *Scorer) CategoryLabel(name string) string {
	if len(s.probes) > 0 && name == s.probeCategory {
		return "Markup tracking signals"
	}
	if c, ok := s.cat.Category(name); ok {
		return c.DisplayName()
	}
	return name
}

// slot accumulates matches for one subcategory.
type slot struct {
	hits     int
	evidence types.Evidence
}

func (sl *slot) record(ev types.Evidence) {
	if sl.hits == 0 {
		sl.evidence = ev
	}
	sl.hits++
}

// Score matches doc against the catalogue and probes.
func (s *Scorer) Score(id string, doc *extract.Document) types.DocumentResult {
	cats := s.cat.Categories()
	slots := make([][]slot, len(cats))
	for i, c := range cats {
		slots[i] = make([]slot, len(c.Subcategories))
	}

	s.scanScripts(doc, slots)
	s.scanTexts(doc, slots)
	s.scanAttributes(doc, slots)

	probeSlots := make([]slot, len(s.probes))
	for i, p := range s.probes {
		for _, ev := range p.Probe(doc) {
			ev.Value = Truncate(ev.Value)
			probeSlots[i].record(ev)
		}
	}

	res := s.newResult(id)
	for ci, c := range cats {
		for si, sub := range c.Subcategories {
			res.add(c.Name, sub.Name, slots[ci][si])
		}
	}
	for i, p := range s.probes {
		res.add(s.probeCategory, p.Name(), probeSlots[i])
	}
	return res.DocumentResult
}

// Empty returns a zero-score result that still carries every category and
// the full MaxScore. Failed documents are reported this way.
func (s *Scorer) Empty(id string) types.DocumentResult {
	return s.newResult(id).DocumentResult
}

func (s *Scorer) newResult(id string) *result {
	r := types.DocumentResult{
		DocumentID:     id,
		CategoryScores: make(map[string]int),
		CategoryOrder:  s.CategoryOrder(),
		MaxScore:       s.MaxScore(),
		Features:       []types.Feature{},
	}
	for _, c := range r.CategoryOrder {
		r.CategoryScores[c] = 0
	}
	return &result{r}
}

// result wraps DocumentResult with the aggregation step.
type result struct {
	types.DocumentResult
}

func (r *result) add(category, subcategory string, sl slot) {
	if sl.hits == 0 {
		return
	}
	r.CategoryScores[category]++
	r.TotalScore++
	r.TotalHits += sl.hits
	r.Features = append(r.Features, types.Feature{
		Category:    category,
		Subcategory: subcategory,
		Hits:        sl.hits,
		Evidence:    sl.evidence,
	})
}

func (s *Scorer) scanScripts(doc *extract.Document, slots [][]slot) {
	for _, sc := range doc.Scripts {
		for ci, c := range s.cat.Categories() {
			for si, sub := range c.Subcategories {
				for _, p := range sub.Patterns {
					if sc.Kind == extract.ScriptExternal {
						if p.Matches(sc.Content) {
							slots[ci][si].record(types.Evidence{
								Source:    types.SourceScriptExternal,
								Element:   "script",
								Attribute: "src",
								Pattern:   p.Source,
								Value:     Truncate(sc.Content),
							})
						}
						continue
					}
					for _, m := range p.FindAll(sc.Content) {
						slots[ci][si].record(types.Evidence{
							Source:  types.SourceScriptInline,
							Element: "script",
							Pattern: p.Source,
							Value:   Truncate(m),
						})
					}
				}
			}
		}
	}
}

func (s *Scorer) scanTexts(doc *extract.Document, slots [][]slot) {
	for _, it := range doc.Texts {
		for ci, c := range s.cat.Categories() {
			for si, sub := range c.Subcategories {
				for _, p := range sub.Patterns {
					if !p.Matches(it.Text) {
						continue
					}
					slots[ci][si].record(types.Evidence{
						Source:  types.SourceElementText,
						Element: it.Parent,
						Pattern: p.Source,
						Value:   Truncate(it.Text),
					})
					break
				}
			}
		}
	}
}

func (s *Scorer) scanAttributes(doc *extract.Document, slots [][]slot) {
	for _, a := range doc.Attributes {
		for ci, c := range s.cat.Categories() {
			for si, sub := range c.Subcategories {
				for _, p := range sub.Patterns {
					if !p.Matches(a.Value) {
						continue
					}
					slots[ci][si].record(types.Evidence{
						Source:    types.SourceElementAttribute,
						Element:   a.Tag,
						Attribute: a.Name,
						Pattern:   p.Source,
						Value:     Truncate(a.Value),
					})
					break
				}
			}
		}
	}
}
