package process

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, ""},
		{"missing column", errors.New("missing required column(s): Variant SKU"), "VAL001"},
		{"no valid rows", errors.New("no valid inventory data found"), "VAL002"},
		{"wrapped no valid rows", fmt.Errorf("aggregate x.csv: %w", errors.New("no valid inventory data found")), "VAL002"},
		{"file too large", errors.New("file too large"), "FILE001"},
		{"no file", errors.New("no file provided"), "FILE002"},
		{"empty file", errors.New("empty file: no header row"), "FILE003"},
		{"invalid csv", errors.New("invalid csv at line 3: bare quote"), "FILE004"},
		{"unreadable input", errors.New("open input: no such file or directory"), "FILE005"},
		{"db down", errors.New("dial tcp: connection refused"), "DB001"},
		{"cancelled", errors.New("context canceled"), "REQ001"},
		{"deadline", errors.New("context deadline exceeded"), "REQ002"},
		{"unknown", errors.New("something else entirely"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_CaseInsensitive(t *testing.T) {
	got := MapError(errors.New("MISSING REQUIRED COLUMN(S): Variant SKU"))
	if got.Code != "VAL001" {
		t.Errorf("Code = %q, want VAL001", got.Code)
	}
}

func TestFormatUserError(t *testing.T) {
	msg := UserMessage{Message: "No rows could be processed", Action: "Check the SKU format", Code: "VAL002"}
	got := FormatUserError(msg)
	if !strings.Contains(got, "VAL002") || !strings.Contains(got, "Check the SKU format") {
		t.Errorf("FormatUserError = %q", got)
	}
}
