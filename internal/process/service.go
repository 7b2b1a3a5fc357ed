// Package process orchestrates one inventory processing run: read the
// export, parse each variant, aggregate into the pivot table, and record
// the run in history. It has no UI dependencies and is shared by the web
// handlers and the CLI.
package process

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skuflow/skuflow/internal/csvio"
	"github.com/skuflow/skuflow/internal/history"
	"github.com/skuflow/skuflow/internal/pivot"
)

// Stats summarizes a processing run.
type Stats struct {
	Products    int      `json:"products"`
	Sizes       int      `json:"sizes"`
	TotalUnits  int      `json:"total_units"`
	Accepted    int      `json:"accepted"`
	Rejected    int      `json:"rejected"`
	MergedSizes []string `json:"merged_sizes,omitempty"`
}

// Result is the outcome of a successful processing run.
type Result struct {
	RunID       string                `json:"run_id"`
	Table       *pivot.Table          `json:"table"`
	Diagnostics []pivot.RowDiagnostic `json:"diagnostics,omitempty"`
	Stats       Stats                 `json:"stats"`
}

// Service runs the read-parse-aggregate pipeline. Each call to Run owns its
// own intermediate state, so a single Service is safe for concurrent use.
type Service struct {
	sizes pivot.SizeTable
	store history.Store
}

// NewService creates a Service using the standard EU/US size table.
// Pass history.NopStore{} when run history is not configured.
func NewService(store history.Store) *Service {
	return &Service{sizes: pivot.DefaultSizeTable(), store: store}
}

// NewServiceWithSizes creates a Service with a custom size correspondence
// table. Used by tests and by deployments with non-standard sizing.
func NewServiceWithSizes(store history.Store, sizes pivot.SizeTable) *Service {
	return &Service{sizes: sizes, store: store}
}

// Run processes one inventory export read from r.
//
// Row-level failures (malformed SKU or size) become diagnostics and never
// abort the run. Dataset-level failures - unreadable input, missing
// required columns, zero surviving rows - return an error and no Result.
func (s *Service) Run(ctx context.Context, r io.Reader, fileName, source string) (*Result, error) {
	records, err := csvio.ReadVariants(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileName, err)
	}

	agg := pivot.NewAggregator(s.sizes)
	var diags []pivot.RowDiagnostic
	accepted := 0
	for _, rec := range records {
		v, err := pivot.Parse(rec)
		if err != nil {
			diags = append(diags, pivot.RowDiagnostic{
				Line:   rec.Line,
				SKU:    rec.SKU,
				Reason: err.Error(),
			})
			continue
		}
		agg.Add(v)
		accepted++
	}

	table, err := agg.Table()
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", fileName, err)
	}

	result := &Result{
		RunID:       uuid.NewString(),
		Table:       table,
		Diagnostics: diags,
		Stats: Stats{
			Products:    len(table.Rows),
			Sizes:       len(table.Columns),
			TotalUnits:  table.TotalUnits(),
			Accepted:    accepted,
			Rejected:    len(diags),
			MergedSizes: table.MergedUS,
		},
	}

	s.record(ctx, fileName, source, result)
	return result, nil
}

// record saves the run to history. Best-effort: failures are logged, never
// propagated.
func (s *Service) record(ctx context.Context, fileName, source string, res *Result) {
	err := s.store.Record(ctx, history.Run{
		ID:         res.RunID,
		FileName:   fileName,
		Source:     source,
		Products:   res.Stats.Products,
		Sizes:      res.Stats.Sizes,
		TotalUnits: res.Stats.TotalUnits,
		Accepted:   res.Stats.Accepted,
		Rejected:   res.Stats.Rejected,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("failed to record processing run",
			"run_id", res.RunID,
			"file", fileName,
			"error", err,
		)
	}
}
