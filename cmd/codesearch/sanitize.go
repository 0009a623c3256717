package main

import (
	"fmt"
	"strings"
	"unicode"
)

// sanitizeQuery strips control characters, trims surrounding whitespace,
// and enforces the maximum query length. Invalid queries are rejected
// here, before the pipeline ever sees them.
func sanitizeQuery(raw string, maxLen int) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return "", fmt.Errorf("query is empty after sanitization")
	}
	if len(cleaned) > maxLen {
		return "", fmt.Errorf("query exceeds maximum length of %d bytes", maxLen)
	}
	return cleaned, nil
}
