// Package history records processing runs so operators can see what was
// processed, when, and how much of it was usable.
//
// Two backends exist: postgres (server deployments, see the postgres
// subpackage) and sqlite (local CLI runs, see the sqlite subpackage).
// Recording is best-effort everywhere - a failed history write never fails
// the processing run itself.
package history

import (
	"context"
	"time"
)

// Run is one completed processing run.
type Run struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	Source     string    `json:"source"` // "cli" or "web"
	Products   int       `json:"products"`
	Sizes      int       `json:"sizes"`
	TotalUnits int       `json:"total_units"`
	Accepted   int       `json:"accepted"`
	Rejected   int       `json:"rejected"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists processing runs.
type Store interface {
	// Record saves a completed run.
	Record(ctx context.Context, run Run) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Close releases backend resources.
	Close() error
}

// NopStore discards everything. Used when no history backend is configured.
type NopStore struct{}

func (NopStore) Record(context.Context, Run) error          { return nil }
func (NopStore) Recent(context.Context, int) ([]Run, error) { return nil, nil }
func (NopStore) Close() error                               { return nil }
