// Package index provides the in-memory store of indexed source units.
//
// An [InMemoryIndex] maps unit IDs (file paths) to their embedding, raw
// content, and derived metadata. Re-indexing an ID atomically replaces
// the prior entry; there is no versioning and no automatic eviction.
//
// # Lifecycle
//
// The index is a two-state machine, Empty and Ready. It starts Empty;
// the first successful [InMemoryIndex.IndexUnit] call moves it to Ready,
// and only [InMemoryIndex.Rebuild] moves it back. Searchers check
// [InMemoryIndex.Ready] and fail with [ErrNotReady] rather than silently
// returning nothing, so callers can distinguish "no index yet" from
// "no matches".
//
// # Usage
//
//	idx, err := index.NewInMemoryIndex(index.Options{
//	    Embedder: embedder.NewHashEmbedder(embedder.DefaultDimension),
//	})
//	if err != nil {
//	    ...
//	}
//	if err := idx.IndexUnit(ctx, "auth/login.go", content); err != nil {
//	    ...
//	}
//
// Bulk indexing reports per-unit failures without aborting the run:
//
//	result := idx.IndexBatch(ctx, units)
//	for _, fail := range result.Failed {
//	    log.Printf("skipped %s: %v", fail.ID, fail.Err)
//	}
//
// # Persistence
//
// [InMemoryIndex.SaveSnapshot] and [InMemoryIndex.LoadSnapshot] serialize
// the unit set to a bbolt file as JSON records. The snapshot is a plain
// dump, not a write-ahead log; the in-memory index remains the source of
// truth while the process runs.
//
// # Thread Safety
//
// All methods are safe for concurrent use. The unit map and the ready
// flag are updated in one critical section, so a reader can never
// observe a ready index with zero units.
package index
