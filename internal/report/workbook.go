// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/sitescope/pkg/types"
)

const (
	summarySheet  = "Summary"
	evidenceSheet = "Evidence"
)

// SummaryHeader returns the Summary sheet columns for layout.
func SummaryHeader(layout Layout) []string {
	h := []string{"website", "year", "file_path", "total_score", "max_score", "score_percentage", "feature_count", "total_hits"}
	for _, c := range layout.CategoryOrder() {
		h = append(h, c+"_score")
	}
	return append(h, "detected_categories", "detected_features", "error")
}

var evidenceHeader = []string{
	"website", "year", "category", "subcategory", "hits",
	"source", "element", "attribute", "pattern", "value",
}

// WriteWorkbook writes batch to an .xlsx file: one Summary row per site and,
// when detailed, one Evidence row per matched subcategory.
func WriteWorkbook(path string, batch types.BatchResult, layout Layout, detailed bool) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	if err := writeRows(f, summarySheet, toRow(SummaryHeader(layout)), summaryRows(batch, layout)); err != nil {
		return err
	}

	if detailed {
		if _, err := f.NewSheet(evidenceSheet); err != nil {
			return fmt.Errorf("creating evidence sheet: %w", err)
		}
		if err := writeRows(f, evidenceSheet, toRow(evidenceHeader), evidenceRows(batch)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func summaryRows(batch types.BatchResult, layout Layout) [][]any {
	rows := make([][]any, 0, len(batch.Sites))
	for _, s := range batch.Sites {
		r := s.Result
		pct, _ := Percentage(r.TotalScore, r.MaxScore)
		row := []any{s.Website, yearCell(s.Year), r.FilePath, r.TotalScore, r.MaxScore, pct, r.FeatureCount(), r.TotalHits}
		for _, c := range layout.CategoryOrder() {
			row = append(row, r.CategoryScores[c])
		}
		features := make([]string, len(r.Features))
		for i, ft := range r.Features {
			features[i] = ft.Category + "/" + ft.Subcategory
		}
		row = append(row,
			strings.Join(r.DetectedCategories(), ", "),
			strings.Join(features, ", "),
			r.Error,
		)
		rows = append(rows, row)
	}
	return rows
}

func evidenceRows(batch types.BatchResult) [][]any {
	var rows [][]any
	for _, s := range batch.Sites {
		for _, ft := range s.Result.Features {
			ev := ft.Evidence
			rows = append(rows, []any{
				s.Website, yearCell(s.Year), ft.Category, ft.Subcategory, ft.Hits,
				string(ev.Source), ev.Element, ev.Attribute, ev.Pattern, ev.Value,
			})
		}
	}
	return rows
}

// yearCell leaves the year blank for single-document reports.
func yearCell(y int) any {
	if y == 0 {
		return ""
	}
	return y
}

func toRow(cols []string) []any {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return row
}

func writeRows(f *excelize.File, sheet string, header []any, rows [][]any) error {
	all := append([][]any{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
