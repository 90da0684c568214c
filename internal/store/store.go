// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a SQLite history of analysis runs so scores for a
// website can be compared across runs and profiles.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sitescope/pkg/types"
)

// Store manages the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and bootstraps the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			profile TEXT NOT NULL,
			started_at TEXT NOT NULL,
			analyzed INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			website TEXT NOT NULL,
			year INTEGER,
			file_path TEXT,
			total_score INTEGER NOT NULL,
			max_score INTEGER NOT NULL,
			total_hits INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS features (
			document_id INTEGER NOT NULL REFERENCES documents(rowid) ON DELETE CASCADE,
			category TEXT NOT NULL,
			subcategory TEXT NOT NULL,
			hits INTEGER NOT NULL,
			source TEXT,
			value TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_website ON documents(website)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run ON documents(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_features_document ON features(document_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveBatch records a corpus run and returns its run identifier.
func (s *Store) SaveBatch(ctx context.Context, batch types.BatchResult) (string, error) {
	return s.save(ctx, batch.Profile, batch.Analyzed, batch.Failed, batch.Sites)
}

// SaveDocument records a single-file analysis as a one-document run. The
// website column holds the document identifier.
func (s *Store) SaveDocument(ctx context.Context, profile types.Profile, res types.DocumentResult) (string, error) {
	analyzed, failed := 1, 0
	if res.Error != "" {
		analyzed, failed = 0, 1
	}
	site := types.SiteResult{Website: res.DocumentID, Result: res}
	return s.save(ctx, profile, analyzed, failed, []types.SiteResult{site})
}

func (s *Store) save(ctx context.Context, profile types.Profile, analyzed, failed int, sites []types.SiteResult) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := sq.Insert("runs").
		Columns("id", "profile", "started_at", "analyzed", "failed").
		Values(runID, string(profile), s.now().UTC().Format(time.RFC3339), analyzed, failed).
		ToSql()
	if err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, site := range sites {
		if err := insertDocument(ctx, tx, runID, site); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

func insertDocument(ctx context.Context, tx *sql.Tx, runID string, site types.SiteResult) error {
	res := site.Result
	var year any
	if site.Year > 0 {
		year = site.Year
	}

	query, args, err := sq.Insert("documents").
		Columns("run_id", "website", "year", "file_path", "total_score", "max_score", "total_hits", "error").
		Values(runID, site.Website, year, res.FilePath, res.TotalScore, res.MaxScore, res.TotalHits, res.Error).
		ToSql()
	if err != nil {
		return err
	}
	r, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting document %s: %w", site.Website, err)
	}
	docID, err := r.LastInsertId()
	if err != nil {
		return err
	}

	if len(res.Features) == 0 {
		return nil
	}
	ins := sq.Insert("features").Columns("document_id", "category", "subcategory", "hits", "source", "value")
	for _, f := range res.Features {
		ins = ins.Values(docID, f.Category, f.Subcategory, f.Hits, string(f.Evidence.Source), f.Evidence.Value)
	}
	query, args, err = ins.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting features for %s: %w", site.Website, err)
	}
	return nil
}

// Filter narrows a History query. Zero fields match everything.
type Filter struct {
	Website string
	Profile types.Profile
	Limit   int
}

// Record is one stored document score.
type Record struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	Profile    types.Profile `json:"profile" yaml:"profile"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Website    string        `json:"website" yaml:"website"`
	Year       int           `json:"year,omitempty" yaml:"year,omitempty"`
	TotalScore int           `json:"total_score" yaml:"total_score"`
	MaxScore   int           `json:"max_score" yaml:"max_score"`
	TotalHits  int           `json:"total_hits" yaml:"total_hits"`
	Features   []string      `json:"features,omitempty" yaml:"features,omitempty"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// History returns stored document scores, newest run first, then by
// website and year.
func (s *Store) History(ctx context.Context, f Filter) ([]Record, error) {
	b := sq.Select(
		"r.id", "r.profile", "r.started_at", "d.website", "d.year",
		"d.total_score", "d.max_score", "d.total_hits", "d.error",
		"(SELECT group_concat(category || '/' || subcategory, ',') FROM features WHERE document_id = d.rowid)",
	).
		From("documents d").
		Join("runs r ON r.id = d.run_id").
		OrderBy("r.started_at DESC", "r.rowid DESC", "d.website", "d.year")

	if f.Website != "" {
		b = b.Where(sq.Eq{"d.website": f.Website})
	}
	if f.Profile != "" {
		b = b.Where(sq.Eq{"r.profile": string(f.Profile)})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec      Record
			profile  string
			started  string
			year     sql.NullInt64
			errText  sql.NullString
			features sql.NullString
		)
		if err := rows.Scan(&rec.RunID, &profile, &started, &rec.Website, &year,
			&rec.TotalScore, &rec.MaxScore, &rec.TotalHits, &errText, &features); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.Profile = types.Profile(profile)
		rec.StartedAt, _ = time.Parse(time.RFC3339, started)
		rec.Year = int(year.Int64)
		rec.Error = errText.String
		if features.String != "" {
			rec.Features = strings.Split(features.String, ",")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
