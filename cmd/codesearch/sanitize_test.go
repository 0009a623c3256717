package main

import (
	"strings"
	"testing"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		maxLen  int
		want    string
		wantErr bool
	}{
		{"plain", "email validation", 100, "email validation", false},
		{"trims whitespace", "  retry logic  ", 100, "retry logic", false},
		{"strips control chars", "retry\x00\x1blogic", 100, "retrylogic", false},
		{"strips newlines and tabs", "retry\n\tlogic", 100, "retrylogic", false},
		{"empty", "", 100, "", true},
		{"only control chars", "\x00\x01\x02", 100, "", true},
		{"too long", strings.Repeat("a", 101), 100, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitizeQuery(tt.raw, tt.maxLen)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("sanitizeQuery(%q) succeeded, want error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("sanitizeQuery(%q) failed: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("sanitizeQuery(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
