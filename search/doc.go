// Package search provides a BM25 lexical searcher over indexed units.
//
// It exists to:
//   - Keep the semantic package small and dependency-light
//   - Enable stronger lexical ranking without forcing bleve on every
//     consumer
//
// # Usage
//
// The primary type is [BM25Searcher]:
//
//	searcher := search.NewBM25Searcher(search.BM25Config{})
//	results, err := searcher.Search(ctx, "email validation", 10, idx.Units())
//
// # Configuration
//
// [BM25Config] allows safety limits:
//
//	cfg := search.BM25Config{
//	    MaxUnits:      1000, // Limit units to index (0 = unlimited)
//	    MaxContentLen: 5000, // Truncate long files (0 = unlimited)
//	}
//
// # Thread Safety
//
// BM25Searcher is safe for concurrent use. It caches the bleve index
// keyed by a sha256 fingerprint of the unit set, only rebuilding when
// the units change.
//
// # Behavior
//
// Empty queries return the first N units in ID order. Non-empty queries
// use BM25 ranking normalized to (0,1] with deterministic tie-breaking
// (score DESC, then ID ASC).
package search
