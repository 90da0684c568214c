// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wayback

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// ledgerTimeLayout formats the Time column.
const ledgerTimeLayout = "2006-01-02 15:04:05"

var ledgerHeader = []string{"Time", "URL", "Error"}

// Failure is one row of the failure ledger.
type Failure struct {
	Time  time.Time
	URL   string
	Error string
}

// Ledger is an append-only CSV of failed downloads. The header, preceded
// by a UTF-8 byte order mark for spreadsheet tools, is written only when
// the file is created.
type Ledger struct {
	Path string
}

// Append adds one row, creating the file if needed.
func (l Ledger) Append(rec Failure) error {
	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger %s: %w", l.Path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat ledger %s: %w", l.Path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if _, err := f.WriteString("\uFEFF"); err != nil {
			f.Close()
			return err
		}
		w.Write(ledgerHeader)
	}
	w.Write([]string{rec.Time.Format(ledgerTimeLayout), rec.URL, rec.Error})
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing ledger %s: %w", l.Path, err)
	}
	return f.Close()
}
