package cmd

import (
	"path/filepath"
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"export.csv", filepath.Join("output", "export.xlsx")},
		{"data/export.csv", filepath.Join("output", "export.xlsx")},
		{"inventory_2026-08.csv", filepath.Join("output", "inventory_2026-08.xlsx")},
		{"noext", filepath.Join("output", "noext.xlsx")},
	}

	for _, tt := range tests {
		if got := defaultOutputPath(tt.input); got != tt.want {
			t.Errorf("defaultOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
