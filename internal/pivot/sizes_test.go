package pivot

import "testing"

func TestSizeTable_Ranges(t *testing.T) {
	table := DefaultSizeTable()

	tests := []struct {
		label  string
		wantEU bool
		wantUS bool
	}{
		{"38", true, false},
		{"50", true, false},
		{"35", true, false},
		{"41.5", true, false},
		{"5", false, true},
		{"9.5", false, true},
		{"15", false, true},
		{"15.5", false, false}, // above the US detection range
		{"34", false, false},
		{"51", false, false},
		{"4", false, false},
		{"XL", false, false},
	}

	for _, tt := range tests {
		if got := table.IsEU(tt.label); got != tt.wantEU {
			t.Errorf("IsEU(%q) = %v, want %v", tt.label, got, tt.wantEU)
		}
		if got := table.IsUS(tt.label); got != tt.wantUS {
			t.Errorf("IsUS(%q) = %v, want %v", tt.label, got, tt.wantUS)
		}
	}
}

func TestSizeTable_EUEquivalent(t *testing.T) {
	table := DefaultSizeTable()

	tests := []struct {
		us     string
		want   string
		wantOK bool
	}{
		{"5", "38", true},
		{"8", "41", true},
		{"8.5", "41.5", true},
		{"15", "48", true},
		{"9.05", "42", true}, // near match within 0.1
		{"16", "", false},
		{"4.5", "", false},
		{"XL", "", false},
	}

	for _, tt := range tests {
		got, ok := table.EUEquivalent(tt.us)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("EUEquivalent(%q) = (%q, %v), want (%q, %v)", tt.us, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNewSizeTable_DropsBadPairs(t *testing.T) {
	table := NewSizeTable(map[string]string{
		"9":   "42",
		"bad": "41",
		"8":   "junk",
	})

	if eu, ok := table.EUEquivalent("9"); !ok || eu != "42" {
		t.Errorf("EUEquivalent(9) = (%q, %v), want (42, true)", eu, ok)
	}
	if _, ok := table.EUEquivalent("8"); ok {
		t.Error("EUEquivalent(8) should not resolve through a malformed pair")
	}
}
