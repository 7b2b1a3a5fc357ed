// Package csvio reads Shopify inventory export files into variant records.
//
// The reader is deliberately forgiving about everything except the two
// required columns: header lookup is case-insensitive, ragged rows are
// tolerated, fully empty rows are skipped, and input may carry a BOM or
// stray non-UTF-8 bytes (see streaming.go).
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skuflow/skuflow/internal/pivot"
)

// Required columns in the export. Lookup is case-insensitive.
const (
	ColumnSKU = "Variant SKU"
	ColumnQty = "Variant Inventory Qty"
)

// MissingColumnError reports required columns absent from the CSV header.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

// ReadVariants reads an inventory export from r and returns one
// VariantRecord per data row, tagged with its 1-based CSV line number.
//
// The first non-empty record is the header. Both required columns must be
// present (any casing); otherwise a *MissingColumnError is returned. Fully
// empty data rows are skipped. Values are trimmed of surrounding space.
func ReadVariants(r io.Reader) ([]pivot.VariantRecord, error) {
	cr := csv.NewReader(WrapForStreaming(r, 0))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}

	skuIdx, qtyIdx := -1, -1
	for i, h := range header {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), ColumnSKU):
			if skuIdx < 0 {
				skuIdx = i
			}
		case strings.EqualFold(strings.TrimSpace(h), ColumnQty):
			if qtyIdx < 0 {
				qtyIdx = i
			}
		}
	}

	var missing []string
	if skuIdx < 0 {
		missing = append(missing, ColumnSKU)
	}
	if qtyIdx < 0 {
		missing = append(missing, ColumnQty)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}

	var records []pivot.VariantRecord
	line := 1 // header was line 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("invalid csv at line %d: %w", line, err)
		}

		if isEmptyRow(rec) {
			continue
		}

		records = append(records, pivot.VariantRecord{
			SKU:      strings.TrimSpace(field(rec, skuIdx)),
			Quantity: strings.TrimSpace(field(rec, qtyIdx)),
			Line:     line,
		})
	}

	return records, nil
}

// ReadVariantsFile reads an inventory export from a file on disk.
func ReadVariantsFile(path string) ([]pivot.VariantRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return ReadVariants(f)
}

// field returns rec[i] or "" when the row is too short.
func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func isEmptyRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
