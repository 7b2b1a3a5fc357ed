// Package postgres implements the run-history store on PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skuflow/skuflow/internal/history"
)

// Store persists processing runs in a PostgreSQL table.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given pool. The pool is owned by the
// caller; Close does not close it.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Init creates the processing_runs table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS processing_runs (
			id          UUID PRIMARY KEY,
			file_name   TEXT NOT NULL,
			source      TEXT NOT NULL,
			products    INTEGER NOT NULL,
			sizes       INTEGER NOT NULL,
			total_units INTEGER NOT NULL,
			accepted    INTEGER NOT NULL,
			rejected    INTEGER NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create processing_runs table: %w", err)
	}
	return nil
}

// Record implements history.Store.
func (s *Store) Record(ctx context.Context, run history.Run) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO processing_runs
			(id, file_name, source, products, sizes, total_units, accepted, rejected, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.FileName, run.Source, run.Products, run.Sizes,
		run.TotalUnits, run.Accepted, run.Rejected, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent implements history.Store.
func (s *Store) Recent(ctx context.Context, limit int) ([]history.Run, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, file_name, source, products, sizes, total_units, accepted, rejected, created_at
		FROM processing_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []history.Run
	for rows.Next() {
		var r history.Run
		if err := rows.Scan(&r.ID, &r.FileName, &r.Source, &r.Products, &r.Sizes,
			&r.TotalUnits, &r.Accepted, &r.Rejected, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Close implements history.Store. The pool itself belongs to the caller.
func (s *Store) Close() error { return nil }
