package pivot

// cellMap is an insertion-ordered base-key -> size-label -> quantity map.
//
// Output row order is defined as first-seen order of the input, so the
// ordering must be explicit rather than inherited from Go's randomized map
// iteration.
type cellMap struct {
	order []string
	cells map[string]map[string]int
}

func newCellMap() *cellMap {
	return &cellMap{cells: make(map[string]map[string]int)}
}

// add accumulates qty into (key, label), registering key on first sight.
func (m *cellMap) add(key, label string, qty int) {
	sizes, ok := m.cells[key]
	if !ok {
		sizes = make(map[string]int)
		m.cells[key] = sizes
		m.order = append(m.order, key)
	}
	sizes[label] += qty
}

// merge moves the quantity under from into to for a single key, deleting
// the from label. No-op if the key has no cell under from.
func (m *cellMap) merge(key, from, to string) {
	sizes := m.cells[key]
	qty, ok := sizes[from]
	if !ok {
		return
	}
	sizes[to] += qty
	delete(sizes, from)
}

// keys returns base keys in insertion order. The returned slice is owned by
// the map and must not be mutated.
func (m *cellMap) keys() []string { return m.order }

func (m *cellMap) get(key string) map[string]int { return m.cells[key] }

func (m *cellMap) len() int { return len(m.order) }
