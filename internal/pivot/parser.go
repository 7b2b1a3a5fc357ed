package pivot

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Rejection reasons. These are stable strings: they appear verbatim in
// RowDiagnostic.Reason and in user-facing skipped-row exports.
var (
	ErrMalformedSKU  = errors.New("malformed SKU")
	ErrMalformedSize = errors.New("malformed size")
)

// Parse derives (base key, size, quantity) from a variant record.
//
// The variant SKU is split on hyphens: the last segment is the size token,
// the remaining segments rejoined with hyphens form the base key. This
// preserves embedded hyphens in multi-word base identifiers such as color
// names ("sku-1234-lt-brown-41" -> "sku-1234-lt-brown" / "41").
//
// Size tokens may carry underscore-separated qualifier suffixes
// ("40_AN_AN" -> "40"); only the leading sub-segment is the size.
//
// A SKU with fewer than two segments or an empty base key is rejected with
// ErrMalformedSKU. A size token whose leading sub-segment is not a
// non-negative number is rejected with ErrMalformedSize. A bad quantity is
// NOT a rejection: it coerces to 0 and the row is kept.
func Parse(rec VariantRecord) (ParsedVariant, error) {
	sku := strings.TrimSpace(rec.SKU)
	parts := strings.Split(sku, "-")
	if len(parts) < 2 {
		return ParsedVariant{}, ErrMalformedSKU
	}

	base := strings.Join(parts[:len(parts)-1], "-")
	if base == "" {
		return ParsedVariant{}, ErrMalformedSKU
	}

	token := parts[len(parts)-1]
	lead, _, _ := strings.Cut(token, "_")
	size, ok := NormalizeSize(lead)
	if !ok {
		return ParsedVariant{}, ErrMalformedSize
	}

	return ParsedVariant{
		BaseKey:  base,
		Size:     size,
		Quantity: CoerceQuantity(rec.Quantity),
	}, nil
}

// NormalizeSize parses a size sub-segment into its canonical numeric label.
// Integral values drop any fractional part formatting ("40.0" -> "40"),
// half sizes keep it ("41.5" -> "41.5"). Returns ok=false for empty,
// non-numeric, or negative input.
func NormalizeSize(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	if f == math.Trunc(f) {
		return strconv.Itoa(int(f)), true
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// CoerceQuantity converts a raw quantity string to a non-negative integer.
// Blank, non-numeric, and negative values all coerce to 0; fractional
// quantities truncate. Coercion never rejects the row: a garbled count
// still identifies a real variant, while a garbled SKU identifies nothing.
func CoerceQuantity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// ParseFloat accepts "inf" and "NaN"; both would corrupt totals when
	// truncated to int, so they coerce to 0 like any other garbage value.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return int(f)
}
