package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jonwraymond/codesearch/embedder"
)

// Sentinel errors for consistent error handling.
var (
	ErrNotReady     = errors.New("index not ready: no units indexed")
	ErrUnitNotFound = errors.New("unit not found")
	ErrEmptyUnitID  = errors.New("unit id is empty")
	ErrNilEmbedder  = errors.New("embedder is required")
)

// Unit is one searchable piece of content: typically a source file,
// with its embedding and the raw text retained for snippet extraction.
type Unit struct {
	ID        string
	Embedding []float32
	Content   string
	LineCount int
}

// SourceUnit is a (path, content) pair handed to the bulk indexing API,
// typically produced by a file walker.
type SourceUnit struct {
	ID      string
	Content string
}

// UnitError reports an indexing failure for a single unit.
type UnitError struct {
	ID  string
	Err error
}

func (e UnitError) Error() string {
	return fmt.Sprintf("index %s: %v", e.ID, e.Err)
}

func (e UnitError) Unwrap() error { return e.Err }

// BatchResult summarizes a bulk indexing run. Failed units do not abort
// the batch; each failure is reported individually.
type BatchResult struct {
	Indexed int
	Failed  []UnitError
}

// Options configures an InMemoryIndex.
type Options struct {
	// Embedder generates unit embeddings. Required.
	Embedder embedder.Embedder
}

// InMemoryIndex stores indexed units keyed by unit ID. It is safe for
// concurrent use: reads take a shared lock, all mutation happens under
// the write lock so the unit map and the ready flag move together.
type InMemoryIndex struct {
	mu      sync.RWMutex
	units   map[string]Unit
	ready   bool
	version uint64
	emb     embedder.Embedder
}

// NewInMemoryIndex creates an empty index.
func NewInMemoryIndex(opts Options) (*InMemoryIndex, error) {
	if opts.Embedder == nil {
		return nil, ErrNilEmbedder
	}
	return &InMemoryIndex{
		units: make(map[string]Unit),
		emb:   opts.Embedder,
	}, nil
}

// IndexUnit embeds content and inserts or replaces the unit for id.
// The update is all-or-nothing: if embedding fails, any prior entry for
// id is left untouched. The first successful call flips the ready flag.
func (x *InMemoryIndex) IndexUnit(ctx context.Context, id, content string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyUnitID
	}

	emb, err := x.emb.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("embed %s: %w", id, err)
	}

	unit := Unit{
		ID:        id,
		Embedding: emb,
		Content:   content,
		LineCount: countLines(content),
	}

	x.mu.Lock()
	x.units[id] = unit
	x.ready = true
	x.version++
	x.mu.Unlock()

	return nil
}

// IndexBatch indexes each source unit in turn. A failing unit is recorded
// in the result and the batch continues.
func (x *InMemoryIndex) IndexBatch(ctx context.Context, units []SourceUnit) BatchResult {
	var result BatchResult
	for _, u := range units {
		if err := x.IndexUnit(ctx, u.ID, u.Content); err != nil {
			result.Failed = append(result.Failed, UnitError{ID: u.ID, Err: err})
			continue
		}
		result.Indexed++
	}
	return result
}

// Get returns the unit for id.
func (x *InMemoryIndex) Get(id string) (Unit, error) {
	x.mu.RLock()
	unit, ok := x.units[id]
	x.mu.RUnlock()

	if !ok {
		return Unit{}, fmt.Errorf("%w: %s", ErrUnitNotFound, id)
	}
	return unit, nil
}

// Units returns a snapshot of all indexed units in stable ID order.
func (x *InMemoryIndex) Units() []Unit {
	x.mu.RLock()
	out := make([]Unit, 0, len(x.units))
	for _, unit := range x.units {
		out = append(out, unit)
	}
	x.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of indexed units.
func (x *InMemoryIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.units)
}

// Ready reports whether at least one unit has been indexed. Searches
// against a non-ready index must fail rather than return empty results.
func (x *InMemoryIndex) Ready() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.ready
}

// Version returns a counter incremented on every mutation. Searchers use
// it to invalidate derived structures cheaply.
func (x *InMemoryIndex) Version() uint64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.version
}

// Rebuild clears all units and resets the ready flag. It is the only
// operation that moves the index back to the empty state.
func (x *InMemoryIndex) Rebuild() {
	x.mu.Lock()
	x.units = make(map[string]Unit)
	x.ready = false
	x.version++
	x.mu.Unlock()
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
