package pivot

// VariantRecord is one row of the inventory export as read from the source
// file. Quantity is kept as the raw string because exports routinely contain
// blanks, "N/A", or float-formatted values.
type VariantRecord struct {
	SKU      string // "Variant SKU" column
	Quantity string // "Variant Inventory Qty" column
	Line     int    // 1-based line number in the source file
}

// ParsedVariant is the result of splitting a variant SKU.
type ParsedVariant struct {
	BaseKey  string // product identifier shared by all size variants
	Size     string // normalized numeric size label, e.g. "41" or "41.5"
	Quantity int    // coerced inventory quantity, never negative
}

// RowDiagnostic describes a rejected input row. Rejections are informational:
// processing continues and the caller surfaces them alongside the output.
type RowDiagnostic struct {
	Line   int    `json:"line"`
	SKU    string `json:"sku"`
	Reason string `json:"reason"`
}

// Row is one output row: a base key with its per-size quantities.
// Cells is sparse - a missing size label means no variant of that size
// exists for this base key, which is distinct from an explicit 0.
type Row struct {
	BaseKey string         `json:"base_key"`
	Cells   map[string]int `json:"cells"`
	Total   int            `json:"total"`
}

// Table is the pivoted output: rows in first-seen input order, columns
// (size labels) sorted numerically ascending with any non-numeric labels
// sorted lexically after the numeric ones.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`

	// MergedUS lists the US size labels that were folded into their EU
	// equivalents during consolidation, sorted ascending.
	MergedUS []string `json:"merged_us,omitempty"`
}

// TotalUnits returns the sum of every populated cell in the table.
func (t *Table) TotalUnits() int {
	var sum int
	for _, r := range t.Rows {
		sum += r.Total
	}
	return sum
}
