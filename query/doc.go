// Package query runs the search pipeline end to end.
//
// A [Pipeline] validates the query, limit, and threshold, embeds the
// query, ranks units through the semantic package (or the search
// package's BM25 in lexical mode), extracts a context snippet around
// the best-matching line of each hit, buckets scores into relevance
// labels, and assembles the ordered [Response].
//
// Validation is strict: empty or over-long queries, negative or
// over-cap limits, and thresholds outside [0,1] are rejected with the
// sentinel errors in errors.go, never silently coerced. Use
// [IsInvalidInput] to distinguish them from [index.ErrNotReady] and
// internal failures when mapping to user-facing messages.
//
// The pipeline reads the index and never mutates it, and it never
// returns partial results alongside an error.
package query
