// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists fetch runs in a SQLite database so past
// reports can be queried without re-running the pipeline.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/pharma-papers/pkg/types"
)

// Store manages the run-archive SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Run is one archived fetch run.
type Run struct {
	ID             int64     `json:"id"`
	Query          string    `json:"query"`
	RanAt          time.Time `json:"ran_at"`
	TotalArticles  int       `json:"total_articles"`
	Qualifying     int       `json:"qualifying"`
	SkippedBatches int       `json:"skipped_batches"`
}

// Open opens or creates the archive database at path and ensures the
// schema exists.
func Open(path string, cfg types.ArchiveConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			ran_at TEXT NOT NULL,
			total_articles INTEGER NOT NULL,
			qualifying INTEGER NOT NULL,
			skipped_batches INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS report_rows (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			pmid TEXT NOT NULL,
			title TEXT,
			pub_date TEXT,
			authors TEXT,
			companies TEXT,
			email TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_run_id ON report_rows(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_pmid ON report_rows(pmid)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun stores one completed run and its rows in a single transaction,
// returning the new run ID.
func (s *Store) SaveRun(ctx context.Context, run Run, rows []types.ReportRow) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	ranAt := run.RanAt
	if ranAt.IsZero() {
		ranAt = time.Now()
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, ran_at, total_articles, qualifying, skipped_batches)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Query, ranAt.UTC().Format(time.RFC3339), run.TotalArticles, len(rows), run.SkippedBatches)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	for _, row := range rows {
		authors, err := json.Marshal(row.NonAcademicAuthors)
		if err != nil {
			return 0, fmt.Errorf("marshaling authors for %s: %w", row.PMID, err)
		}
		companies, err := json.Marshal(row.CompanyAffiliations)
		if err != nil {
			return 0, fmt.Errorf("marshaling companies for %s: %w", row.PMID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO report_rows (run_id, pmid, title, pub_date, authors, companies, email)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, row.PMID, row.Title, row.PubDate, string(authors), string(companies), row.CorrespondingEmail); err != nil {
			return 0, fmt.Errorf("inserting row %s: %w", row.PMID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns archived runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, ran_at, total_articles, qualifying, skipped_batches
		 FROM runs ORDER BY id DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ranAt string
		if err := rows.Scan(&r.ID, &r.Query, &ranAt, &r.TotalArticles, &r.Qualifying, &r.SkippedBatches); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, ranAt); parseErr == nil {
			r.RanAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RowsForRun returns the report rows archived for runID in insertion order.
func (s *Store) RowsForRun(ctx context.Context, runID int64) ([]types.ReportRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pmid, title, pub_date, authors, companies, email
		 FROM report_rows WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying rows for run %d: %w", runID, err)
	}
	defer rows.Close()

	var out []types.ReportRow
	for rows.Next() {
		var row types.ReportRow
		var authors, companies string
		if err := rows.Scan(&row.PMID, &row.Title, &row.PubDate, &authors, &companies, &row.CorrespondingEmail); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if authors != "" {
			if err := json.Unmarshal([]byte(authors), &row.NonAcademicAuthors); err != nil {
				return nil, fmt.Errorf("parsing authors for %s: %w", row.PMID, err)
			}
		}
		if companies != "" {
			if err := json.Unmarshal([]byte(companies), &row.CompanyAffiliations); err != nil {
				return nil, fmt.Errorf("parsing companies for %s: %w", row.PMID, err)
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
