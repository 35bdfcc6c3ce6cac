// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a SQLite index of conversion runs so results across
// many PDFs can be listed and compared without re-reading the output files.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/costindex/pkg/types"
)

// Store manages the run index database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run index at dbPath, creating the schema when
// it does not exist.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at TEXT NOT NULL,
			schema_id TEXT NOT NULL,
			input_file TEXT NOT NULL,
			output_file TEXT NOT NULL,
			source TEXT NOT NULL,
			city_count INTEGER NOT NULL,
			pages_processed INTEGER NOT NULL,
			page_errors INTEGER NOT NULL,
			valid INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			warning_count INTEGER NOT NULL,
			completeness_pct REAL NOT NULL,
			strategy_hits TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS run_cities (
			run_id INTEGER NOT NULL REFERENCES runs(rowid) ON DELETE CASCADE,
			city_key TEXT NOT NULL,
			division_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_cities_run_id ON run_cities(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_run_cities_city_key ON run_cities(city_key)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one conversion run and its per-city division counts.
func (s *Store) Record(ctx context.Context, summary types.ConversionSummary, cities types.CityMap) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	hitsJSON, _ := json.Marshal(summary.StrategyHits)
	valid := 0
	if summary.Validation.Valid {
		valid = 1
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_at, schema_id, input_file, output_file, source,
			city_count, pages_processed, page_errors, valid,
			error_count, warning_count, completeness_pct, strategy_hits)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		summary.SchemaID, summary.InputFile, summary.OutputFile, string(summary.Source),
		summary.CityCount, summary.PagesProcessed, summary.PageErrors, valid,
		len(summary.Validation.Errors), len(summary.Validation.Warnings),
		summary.Quality.DataCompletenessPct, string(hitsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_cities (run_id, city_key, division_count) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for key, data := range cities {
		if _, err := stmt.ExecContext(ctx, runID, key, len(data)); err != nil {
			return fmt.Errorf("inserting city %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// RunRecord is one row of the run index, newest first in List results.
type RunRecord struct {
	ID              int64
	RunAt           string
	SchemaID        string
	InputFile       string
	OutputFile      string
	Source          string
	CityCount       int
	PagesProcessed  int
	PageErrors      int
	Valid           bool
	ErrorCount      int
	WarningCount    int
	CompletenessPct float64
}

// List returns up to limit recorded runs, newest first. A non-positive
// limit returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT rowid, run_at, schema_id, input_file, output_file, source,
		city_count, pages_processed, page_errors, valid,
		error_count, warning_count, completeness_pct
		FROM runs ORDER BY rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var valid int
		if err := rows.Scan(&r.ID, &r.RunAt, &r.SchemaID, &r.InputFile, &r.OutputFile,
			&r.Source, &r.CityCount, &r.PagesProcessed, &r.PageErrors, &valid,
			&r.ErrorCount, &r.WarningCount, &r.CompletenessPct); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Valid = valid == 1
		records = append(records, r)
	}
	return records, rows.Err()
}
