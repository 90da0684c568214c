// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the sitescope pipelines:
// stage configuration, per-document scoring results, and batch results.
package types

// SourceKind identifies where in a document a piece of evidence was found.
type SourceKind string

const (
	SourceScriptExternal   SourceKind = "script_external"
	SourceScriptInline     SourceKind = "script_inline"
	SourceElementText      SourceKind = "element_text"
	SourceElementAttribute SourceKind = "element_attribute"

	// Structural probe sources.
	SourceTrackingAttribute SourceKind = "tracking_attribute"
	SourceMetaTag           SourceKind = "meta_tag"
	SourceImagePixel        SourceKind = "img_pixel"
	SourceIframe            SourceKind = "iframe"
	SourceJSONLD            SourceKind = "json_ld"
	SourceDataLayerPush     SourceKind = "datalayer_push"
	SourceInlineHandler     SourceKind = "inline_handler"
)

// Evidence is the retained proof that a subcategory matched.
type Evidence struct {
	// Source is the kind of item the match was found in.
	Source SourceKind `json:"source" yaml:"source"`

	// Element is the tag name of the element involved, when known.
	Element string `json:"element,omitempty" yaml:"element,omitempty"`

	// Attribute is the attribute name for attribute matches.
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`

	// Pattern is the source text of the pattern that matched.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Value is the matched text, at most 100 characters plus an ellipsis.
	Value string `json:"value" yaml:"value"`
}

// Feature records one matched subcategory of a document.
type Feature struct {
	Category    string `json:"category" yaml:"category"`
	Subcategory string `json:"subcategory" yaml:"subcategory"`

	// Hits counts every candidate evidence seen for the subcategory; only
	// the first is kept in Evidence.
	Hits int `json:"hits" yaml:"hits"`

	Evidence Evidence `json:"evidence" yaml:"evidence"`
}

// DocumentResult is the scored outcome for one document.
type DocumentResult struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	FilePath   string `json:"file_path,omitempty" yaml:"file_path,omitempty"`

	// CategoryScores maps category name to the number of matched subcategories.
	CategoryScores map[string]int `json:"category_scores" yaml:"category_scores"`

	// CategoryOrder lists every scored category in catalogue order.
	CategoryOrder []string `json:"category_order" yaml:"category_order"`

	TotalScore int `json:"total_score" yaml:"total_score"`
	MaxScore   int `json:"max_score" yaml:"max_score"`

	// TotalHits sums Feature.Hits.
	TotalHits int `json:"total_hits" yaml:"total_hits"`

	Features []Feature `json:"features" yaml:"features"`

	// Error records a read or parse failure. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// FeatureCount returns the number of matched subcategories.
func (r DocumentResult) FeatureCount() int {
	return len(r.Features)
}

// DetectedCategories returns the categories with a non-zero score in
// catalogue order.
func (r DocumentResult) DetectedCategories() []string {
	var out []string
	for _, c := range r.CategoryOrder {
		if r.CategoryScores[c] > 0 {
			out = append(out, c)
		}
	}
	return out
}

// SiteResult ties a DocumentResult to its website and snapshot year.
type SiteResult struct {
	Website string         `json:"website" yaml:"website"`
	Year    int            `json:"year" yaml:"year"`
	Result  DocumentResult `json:"result" yaml:"result"`
}

// BatchResult holds the outcome of a corpus analysis run.
type BatchResult struct {
	Profile Profile      `json:"profile" yaml:"profile"`
	Sites   []SiteResult `json:"sites" yaml:"sites"`

	Analyzed int `json:"analyzed" yaml:"analyzed"`
	Failed   int `json:"failed" yaml:"failed"`
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Analyzed + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}
