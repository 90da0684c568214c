// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wayback

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PendingHeader is the column title of the pending-domains workbook.
const PendingHeader = "Pending URLs"

// CleanDomain trims, lower-cases, and strips the http:// and https://
// prefixes from a domain list entry.
func CleanDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.ReplaceAll(d, "http://", "")
	return strings.ReplaceAll(d, "https://", "")
}

// Dedupe cleans domains and drops blanks and repeats, keeping first-seen order.
func Dedupe(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		d := CleanDomain(r)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// ReadDomains reads the first column of the first sheet of an .xlsx
// workbook. The first row is a header and is skipped. Entries are cleaned
// and deduplicated.
func ReadDomains(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening domain list %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("domain list %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		raw = append(raw, row[0])
	}
	return Dedupe(raw), nil
}

// Pending returns the domains that have no entry under baseDir yet. A
// missing baseDir means nothing has been downloaded.
func Pending(domains []string, baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("listing %s: %w", baseDir, err)
	}
	existing := make(map[string]bool, len(entries))
	for _, e := range entries {
		existing[e.Name()] = true
	}

	var out []string
	for _, d := range domains {
		if !existing[d] {
			out = append(out, d)
		}
	}
	return out, nil
}

// WritePending saves domains as a one-column workbook under PendingHeader.
func WritePending(path string, domains []string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", PendingHeader); err != nil {
		return err
	}
	for i, d := range domains {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, d); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving pending list %s: %w", path, err)
	}
	return nil
}
