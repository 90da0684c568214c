// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report serializes analysis results as Markdown, JSON, YAML, or
// spreadsheet workbooks.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sitescope/pkg/types"
)

var (
	// ErrInvalidOutputPath reports an output path that is a directory or
	// whose parent directory does not exist.
	ErrInvalidOutputPath = errors.New("invalid output path")

	// ErrZeroMaxScore reports a percentage requested against a zero maximum.
	ErrZeroMaxScore = errors.New("max score is zero")
)

// Layout describes the scored categories of a profile.
type Layout interface {
	CategoryOrder() []string
	CategoryMax(name string) int
	CategoryLabel(name string) string
}

// ValidateOutputPath checks that path can be created as a file. It must not
// be an existing directory and its parent directory must exist.
func ValidateOutputPath(path string) error {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return fmt.Errorf("%w: %s is a directory, give a file path such as ./outputs/report.xlsx",
			ErrInvalidOutputPath, path)
	}
	parent := filepath.Dir(path)
	fi, err := os.Stat(parent)
	if err != nil {
		return fmt.Errorf("%w: directory %s does not exist", ErrInvalidOutputPath, parent)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidOutputPath, parent)
	}
	return nil
}

// Percentage returns total/maxScore*100 rounded to two decimal places.
func Percentage(total, maxScore int) (float64, error) {
	if maxScore == 0 {
		return 0, ErrZeroMaxScore
	}
	return math.Round(float64(total)/float64(maxScore)*100*100) / 100, nil
}

func formatPercent(total, maxScore int) string {
	p, err := Percentage(total, maxScore)
	if err != nil {
		return "n/a"
	}
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// WriteDocument writes a single document result to path. The format follows
// the extension: .json, .yaml/.yml, .xlsx, otherwise Markdown.
func WriteDocument(path, title string, res types.DocumentResult, layout Layout) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return WriteWorkbook(path, types.BatchResult{Sites: []types.SiteResult{{Result: res}}}, layout, true)
	case ".json":
		return writeFile(path, func(w io.Writer) error { return WriteJSON(w, res) })
	case ".yaml", ".yml":
		return writeFile(path, func(w io.Writer) error { return WriteYAML(w, res) })
	default:
		return writeFile(path, func(w io.Writer) error { return WriteMarkdown(w, title, res, layout) })
	}
}

// WriteBatch writes a batch result to path: .json and .yaml/.yml dump the
// records, anything else produces a workbook.
func WriteBatch(path string, batch types.BatchResult, layout Layout, detailed bool) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return writeFile(path, func(w io.Writer) error { return WriteJSON(w, batch) })
	case ".yaml", ".yml":
		return writeFile(path, func(w io.Writer) error { return WriteYAML(w, batch) })
	default:
		return WriteWorkbook(path, batch, layout, detailed)
	}
}

// WriteMarkdown renders one document as a Markdown report.
func WriteMarkdown(w io.Writer, title string, res types.DocumentResult, layout Layout) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "## File: %s\n\n", res.FilePath)
	fmt.Fprintf(&b, "Total score: %d/%d (%s)\n\n", res.TotalScore, res.MaxScore, formatPercent(res.TotalScore, res.MaxScore))
	if res.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n\n", res.Error)
	}

	b.WriteString("## Category scores\n\n")
	b.WriteString("| Category | Score | Max |\n")
	b.WriteString("|----------|-------|-----|\n")
	for _, c := range layout.CategoryOrder() {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", layout.CategoryLabel(c), res.CategoryScores[c], layout.CategoryMax(c))
	}

	b.WriteString("\n## Detected features\n\n")
	if len(res.Features) == 0 {
		b.WriteString("No features detected\n")
	}
	for _, f := range res.Features {
		ev := f.Evidence
		fmt.Fprintf(&b, "### %s - %s\n\n", layout.CategoryLabel(f.Category), f.Subcategory)
		fmt.Fprintf(&b, "- Source: %s\n", ev.Source)
		if ev.Element != "" {
			fmt.Fprintf(&b, "- Element: %s\n", ev.Element)
		}
		if ev.Attribute != "" {
			fmt.Fprintf(&b, "- Attribute: %s\n", ev.Attribute)
		}
		fmt.Fprintf(&b, "- Value: %s\n", ev.Value)
		if ev.Pattern != "" {
			fmt.Fprintf(&b, "- Pattern: `%s`\n", ev.Pattern)
		}
		fmt.Fprintf(&b, "- Hits: %d\n\n", f.Hits)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// PrintSummary writes a short human-readable summary of one document.
func PrintSummary(w io.Writer, res types.DocumentResult, layout Layout) {
	fmt.Fprintf(w, "Analyzed: %s\n", res.FilePath)
	if res.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", res.Error)
	}
	fmt.Fprintf(w, "Score: %d/%d (%s)\n", res.TotalScore, res.MaxScore, formatPercent(res.TotalScore, res.MaxScore))
	fmt.Fprintf(w, "Features: %d (hits: %d)\n", res.FeatureCount(), res.TotalHits)

	fmt.Fprintln(w, "\nCategory scores:")
	for _, c := range layout.CategoryOrder() {
		fmt.Fprintf(w, "- %s: %d/%d\n", layout.CategoryLabel(c), res.CategoryScores[c], layout.CategoryMax(c))
	}

	if len(res.Features) > 0 {
		fmt.Fprintln(w, "\nDetected features:")
	}
	for i, f := range res.Features {
		fmt.Fprintf(w, "- [%d/%d] %s / %s\n", i+1, len(res.Features), layout.CategoryLabel(f.Category), f.Subcategory)
		fmt.Fprintf(w, "  evidence: %s - %s\n", f.Evidence.Source, f.Evidence.Value)
	}
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
