package pivot

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func parseAll(t *testing.T, rows [][2]string) []ParsedVariant {
	t.Helper()
	var parsed []ParsedVariant
	for _, row := range rows {
		v, err := Parse(VariantRecord{SKU: row[0], Quantity: row[1]})
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", row[0], err)
		}
		parsed = append(parsed, v)
	}
	return parsed
}

func TestAggregate_WorkedExample(t *testing.T) {
	parsed := parseAll(t, [][2]string{
		{"sku-1234-black-41", "5"},
		{"sku-1234-black-42", "3"},
		{"sku-1234-black-43", "2"},
		{"sku-1234-red-40", "4"},
		{"sku-1234-red-41", "6"},
	})

	table, err := Aggregate(parsed, DefaultSizeTable())
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	wantCols := []string{"40", "41", "42", "43"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", table.Columns, wantCols)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(table.Rows))
	}

	black := table.Rows[0]
	if black.BaseKey != "sku-1234-black" {
		t.Errorf("Rows[0].BaseKey = %q, want sku-1234-black", black.BaseKey)
	}
	if want := map[string]int{"41": 5, "42": 3, "43": 2}; !reflect.DeepEqual(black.Cells, want) {
		t.Errorf("black cells = %v, want %v", black.Cells, want)
	}
	if black.Total != 10 {
		t.Errorf("black Total = %d, want 10", black.Total)
	}

	red := table.Rows[1]
	if red.BaseKey != "sku-1234-red" {
		t.Errorf("Rows[1].BaseKey = %q, want sku-1234-red", red.BaseKey)
	}
	if want := map[string]int{"40": 4, "41": 6}; !reflect.DeepEqual(red.Cells, want) {
		t.Errorf("red cells = %v, want %v", red.Cells, want)
	}
	if red.Total != 10 {
		t.Errorf("red Total = %d, want 10", red.Total)
	}

	// Sparse cells: black has no 40, red has no 42 or 43.
	if _, ok := black.Cells["40"]; ok {
		t.Error("black should have no cell for size 40")
	}
	if _, ok := red.Cells["42"]; ok {
		t.Error("red should have no cell for size 42")
	}
}

func TestAggregate_MergesUSIntoEU(t *testing.T) {
	// US 7 is the same physical size as EU 40. Both occur for base key X,
	// so they must collapse into one EU-labeled column with summed qty.
	parsed := parseAll(t, [][2]string{
		{"X-7", "4"},
		{"X-40", "6"},
	})

	table, err := Aggregate(parsed, DefaultSizeTable())
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	if want := []string{"40"}; !reflect.DeepEqual(table.Columns, want) {
		t.Fatalf("Columns = %v, want %v", table.Columns, want)
	}
	if got := table.Rows[0].Cells["40"]; got != 10 {
		t.Errorf("cell 40 = %d, want 10", got)
	}
	if want := []string{"7"}; !reflect.DeepEqual(table.MergedUS, want) {
		t.Errorf("MergedUS = %v, want %v", table.MergedUS, want)
	}
}

func TestAggregate_MergePairingIsDatasetWide(t *testing.T) {
	// EU 42 appears only under base key A, but US 9 under base key B still
	// merges into the 42 column because the pairing is built dataset-wide.
	parsed := parseAll(t, [][2]string{
		{"A-42", "1"},
		{"B-9", "2"},
	})

	table, err := Aggregate(parsed, DefaultSizeTable())
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	if want := []string{"42"}; !reflect.DeepEqual(table.Columns, want) {
		t.Fatalf("Columns = %v, want %v", table.Columns, want)
	}
	if got := table.Rows[1].Cells["42"]; got != 2 {
		t.Errorf("B cell 42 = %d, want 2", got)
	}
}

func TestAggregate_IsolatedUSSizeKeepsLabel(t *testing.T) {
	// US 9's EU counterpart (42) never occurs anywhere, so the label stays.
	parsed := parseAll(t, [][2]string{
		{"X-9", "3"},
		{"X-41", "1"},
	})

	table, err := Aggregate(parsed, DefaultSizeTable())
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	if want := []string{"9", "41"}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Columns = %v, want %v", table.Columns, want)
	}
	if table.MergedUS != nil {
		t.Errorf("MergedUS = %v, want nil", table.MergedUS)
	}
}

func TestAggregate_DuplicatePairsSum(t *testing.T) {
	parsed := parseAll(t, [][2]string{
		{"X-41", "2"},
		{"X-41", "3"},
	})

	table, err := Aggregate(parsed, DefaultSizeTable())
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}
	if got := table.Rows[0].Cells["41"]; got != 5 {
		t.Errorf("cell 41 = %d, want 5", got)
	}
}

func TestAggregate_RowOrderFollowsInput(t *testing.T) {
	rows := [][2]string{
		{"alpha-41", "1"},
		{"bravo-41", "1"},
		{"charlie-41", "1"},
		{"alpha-42", "1"},
	}

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([][2]string, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		table, err := Aggregate(parseAll(t, shuffled), DefaultSizeTable())
		if err != nil {
			t.Fatalf("Aggregate() unexpected error: %v", err)
		}

		// Expected order is first-seen order of the shuffled input.
		var want []string
		seen := make(map[string]bool)
		for _, row := range shuffled {
			v, _ := Parse(VariantRecord{SKU: row[0], Quantity: row[1]})
			if !seen[v.BaseKey] {
				seen[v.BaseKey] = true
				want = append(want, v.BaseKey)
			}
		}

		got := make([]string, len(table.Rows))
		for i, r := range table.Rows {
			got[i] = r.BaseKey
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("trial %d: row order = %v, want %v", trial, got, want)
		}
	}
}

func TestAggregate_ConcatenatedInputDoubles(t *testing.T) {
	rows := [][2]string{
		{"sku-1-40", "4"},
		{"sku-1-41", "6"},
		{"sku-2-7", "2"},
		{"sku-2-40", "1"},
	}
	single, err := Aggregate(parseAll(t, rows), DefaultSizeTable())
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	doubled, err := Aggregate(parseAll(t, append(append([][2]string{}, rows...), rows...)), DefaultSizeTable())
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	if !reflect.DeepEqual(doubled.Columns, single.Columns) {
		t.Errorf("doubled Columns = %v, want %v", doubled.Columns, single.Columns)
	}
	if len(doubled.Rows) != len(single.Rows) {
		t.Fatalf("doubled has %d rows, want %d", len(doubled.Rows), len(single.Rows))
	}
	for i := range single.Rows {
		for label, qty := range single.Rows[i].Cells {
			if got := doubled.Rows[i].Cells[label]; got != 2*qty {
				t.Errorf("row %s cell %s = %d, want %d", single.Rows[i].BaseKey, label, got, 2*qty)
			}
		}
		if doubled.Rows[i].Total != 2*single.Rows[i].Total {
			t.Errorf("row %s Total = %d, want %d", single.Rows[i].BaseKey, doubled.Rows[i].Total, 2*single.Rows[i].Total)
		}
	}
}

func TestAggregate_ExplicitZeroDistinctFromAbsent(t *testing.T) {
	parsed := parseAll(t, [][2]string{
		{"X-41", "N/A"}, // coerces to 0 but the variant exists
		{"Y-42", "5"},
	})

	table, err := Aggregate(parsed, DefaultSizeTable())
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	x := table.Rows[0]
	if qty, ok := x.Cells["41"]; !ok || qty != 0 {
		t.Errorf("X cell 41 = (%d, %v), want explicit 0", qty, ok)
	}
	if _, ok := x.Cells["42"]; ok {
		t.Error("X should have no cell for size 42")
	}
	if x.Total != 0 {
		t.Errorf("X Total = %d, want 0", x.Total)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	_, err := Aggregate(nil, DefaultSizeTable())
	if !errors.Is(err, ErrNoValidRows) {
		t.Errorf("Aggregate(nil) error = %v, want ErrNoValidRows", err)
	}
}

func TestAggregate_InjectedSizeTable(t *testing.T) {
	// A tiny table pairing only 9 -> 42 keeps other US sizes untouched.
	small := NewSizeTable(map[string]string{"9": "42"})
	parsed := parseAll(t, [][2]string{
		{"X-9", "1"},
		{"X-42", "1"},
		{"X-7", "1"},
		{"X-40", "1"},
	})

	table, err := Aggregate(parsed, small)
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}
	if want := []string{"7", "40", "42"}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Columns = %v, want %v", table.Columns, want)
	}
}

func TestSortSizeLabels(t *testing.T) {
	labels := []string{"43", "9.5", "40", "41.5", "oddball", "38"}
	sortSizeLabels(labels)
	want := []string{"9.5", "38", "40", "41.5", "43", "oddball"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("sorted = %v, want %v", labels, want)
	}
}
