package pivot

import (
	"math"
	"strconv"
)

// SizeTable is an immutable US -> EU shoe size correspondence. It is fixed
// domain data, injected into the Aggregator so tests can substitute a
// smaller table.
type SizeTable struct {
	usToEU map[string]string
}

// NewSizeTable builds a SizeTable from US -> EU label pairs. Labels are
// normalized through NormalizeSize; pairs that fail to normalize are
// dropped.
func NewSizeTable(pairs map[string]string) SizeTable {
	m := make(map[string]string, len(pairs))
	for us, eu := range pairs {
		nu, ok1 := NormalizeSize(us)
		ne, ok2 := NormalizeSize(eu)
		if ok1 && ok2 {
			m[nu] = ne
		}
	}
	return SizeTable{usToEU: m}
}

// DefaultSizeTable returns the standard US -> EU conversion used for
// adult shoe sizes, including half sizes.
func DefaultSizeTable() SizeTable {
	return NewSizeTable(map[string]string{
		"5": "38", "5.5": "38.5",
		"6": "39", "6.5": "39.5",
		"7": "40", "7.5": "40.5",
		"8": "41", "8.5": "41.5",
		"9": "42", "9.5": "42.5",
		"10": "43", "10.5": "43.5",
		"11": "44", "11.5": "44.5",
		"12": "45", "12.5": "45.5",
		"13": "46", "13.5": "46.5",
		"14": "47", "14.5": "47.5",
		"15": "48", "15.5": "48.5",
	})
}

// IsEU reports whether a size label falls in the typical EU adult shoe
// range (35-50).
func (t SizeTable) IsEU(label string) bool {
	f, err := strconv.ParseFloat(label, 64)
	return err == nil && f >= 35 && f <= 50
}

// IsUS reports whether a size label falls in the typical US adult shoe
// range (5-15).
func (t SizeTable) IsUS(label string) bool {
	f, err := strconv.ParseFloat(label, 64)
	return err == nil && f >= 5 && f <= 15
}

// EUEquivalent returns the EU label corresponding to a US size label.
// Exact matches are tried first, then near matches within 0.1 to absorb
// float formatting drift in source data.
func (t SizeTable) EUEquivalent(us string) (string, bool) {
	if eu, ok := t.usToEU[us]; ok {
		return eu, true
	}
	f, err := strconv.ParseFloat(us, 64)
	if err != nil {
		return "", false
	}
	for key, eu := range t.usToEU {
		k, err := strconv.ParseFloat(key, 64)
		if err == nil && math.Abs(f-k) < 0.1 {
			return eu, true
		}
	}
	return "", false
}
