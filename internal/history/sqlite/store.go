// Package sqlite implements the run-history store on a local SQLite file,
// so CLI batch runs keep history without a database server.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/skuflow/skuflow/internal/history"
)

// Store persists processing runs in a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS processing_runs (
			id          TEXT PRIMARY KEY,
			file_name   TEXT NOT NULL,
			source      TEXT NOT NULL,
			products    INTEGER NOT NULL,
			sizes       INTEGER NOT NULL,
			total_units INTEGER NOT NULL,
			accepted    INTEGER NOT NULL,
			rejected    INTEGER NOT NULL,
			created_at  TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create processing_runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record implements history.Store.
func (s *Store) Record(ctx context.Context, run history.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO processing_runs
			(id, file_name, source, products, sizes, total_units, accepted, rejected, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.FileName, run.Source, run.Products, run.Sizes,
		run.TotalUnits, run.Accepted, run.Rejected, run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent implements history.Store.
func (s *Store) Recent(ctx context.Context, limit int) ([]history.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, source, products, sizes, total_units, accepted, rejected, created_at
		FROM processing_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []history.Run
	for rows.Next() {
		var r history.Run
		var created string
		if err := rows.Scan(&r.ID, &r.FileName, &r.Source, &r.Products, &r.Sizes,
			&r.TotalUnits, &r.Accepted, &r.Rejected, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = ts
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Close implements history.Store.
func (s *Store) Close() error { return s.db.Close() }
