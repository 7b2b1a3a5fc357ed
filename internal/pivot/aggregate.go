package pivot

import (
	"errors"
	"sort"
	"strconv"
)

// ErrNoValidRows is returned when aggregation is asked to produce a table
// from zero accepted variants. This is a dataset-level failure: the caller
// should fail the whole operation rather than emit an empty table.
var ErrNoValidRows = errors.New("no valid inventory data found")

// Aggregator accumulates parsed variants into a pivot table. It holds no
// global state; create one per dataset.
type Aggregator struct {
	sizes SizeTable
	cells *cellMap
}

// NewAggregator returns an empty Aggregator using the given size
// correspondence table.
func NewAggregator(sizes SizeTable) *Aggregator {
	return &Aggregator{sizes: sizes, cells: newCellMap()}
}

// Add folds one parsed variant into the accumulator. Quantities for a
// recurring (base key, size) pair sum rather than overwrite.
func (a *Aggregator) Add(v ParsedVariant) {
	a.cells.add(v.BaseKey, v.Size, v.Quantity)
}

// Table consolidates EU/US duplicate sizes and emits the dense pivot table.
// Rows appear in first-seen input order; columns are the union of surviving
// size labels across all base keys, sorted ascending.
func (a *Aggregator) Table() (*Table, error) {
	if a.cells.len() == 0 {
		return nil, ErrNoValidRows
	}

	merged := a.consolidate()

	labelSet := make(map[string]struct{})
	for _, key := range a.cells.keys() {
		for label := range a.cells.get(key) {
			labelSet[label] = struct{}{}
		}
	}
	columns := make([]string, 0, len(labelSet))
	for label := range labelSet {
		columns = append(columns, label)
	}
	sortSizeLabels(columns)

	rows := make([]Row, 0, a.cells.len())
	for _, key := range a.cells.keys() {
		sizes := a.cells.get(key)
		row := Row{BaseKey: key, Cells: make(map[string]int, len(sizes))}
		for label, qty := range sizes {
			row.Cells[label] = qty
			row.Total += qty
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows, MergedUS: merged}, nil
}

// consolidate merges US-labeled sizes into their EU equivalents and returns
// the removed US labels sorted ascending.
//
// The pairing is dataset-wide: a US label is merged only when its EU
// equivalent appears somewhere in the dataset. A US label whose EU
// counterpart never occurs keeps its original label and its own column.
func (a *Aggregator) consolidate() []string {
	present := make(map[string]struct{})
	for _, key := range a.cells.keys() {
		for label := range a.cells.get(key) {
			present[label] = struct{}{}
		}
	}

	usToEU := make(map[string]string)
	for label := range present {
		if !a.sizes.IsUS(label) {
			continue
		}
		eu, ok := a.sizes.EUEquivalent(label)
		if !ok || !a.sizes.IsEU(eu) {
			continue
		}
		if _, ok := present[eu]; ok {
			usToEU[label] = eu
		}
	}
	if len(usToEU) == 0 {
		return nil
	}

	for _, key := range a.cells.keys() {
		for us, eu := range usToEU {
			a.cells.merge(key, us, eu)
		}
	}

	removed := make([]string, 0, len(usToEU))
	for us := range usToEU {
		removed = append(removed, us)
	}
	sortSizeLabels(removed)
	return removed
}

// Aggregate is the one-shot form: it feeds every variant through an
// Aggregator and returns the resulting table.
func Aggregate(parsed []ParsedVariant, sizes SizeTable) (*Table, error) {
	agg := NewAggregator(sizes)
	for _, v := range parsed {
		agg.Add(v)
	}
	return agg.Table()
}

// sortSizeLabels orders labels by numeric value ascending. Labels that do
// not parse as numbers sort lexically after all numeric ones.
func sortSizeLabels(labels []string) {
	sort.Slice(labels, func(i, j int) bool {
		fi, erri := strconv.ParseFloat(labels[i], 64)
		fj, errj := strconv.ParseFloat(labels[j], 64)
		switch {
		case erri == nil && errj == nil:
			if fi != fj {
				return fi < fj
			}
			return labels[i] < labels[j]
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return labels[i] < labels[j]
		}
	})
}
