package search

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/jonwraymond/codesearch/index"
	"github.com/jonwraymond/codesearch/semantic"
)

// BM25Config configures a BM25Searcher.
type BM25Config struct {
	// MaxUnits limits how many units are indexed (0 = unlimited).
	MaxUnits int

	// MaxContentLen truncates long unit content before indexing
	// (0 = unlimited).
	MaxContentLen int
}

// BM25Searcher ranks units with bleve's BM25 scoring over an in-memory
// index. The bleve index is cached by a fingerprint of the unit set and
// rebuilt only when the units change.
type BM25Searcher struct {
	mu          sync.Mutex
	cfg         BM25Config
	cached      bleve.Index
	fingerprint string
}

// NewBM25Searcher creates a BM25 searcher with the given config.
func NewBM25Searcher(cfg BM25Config) *BM25Searcher {
	return &BM25Searcher{cfg: cfg}
}

// Search ranks the given units against query. Scores are normalized to
// (0,1] by dividing by the top raw BM25 score, so threshold semantics
// line up with cosine scores. An empty query returns the first limit
// units in ID order with score 0.
func (s *BM25Searcher) Search(ctx context.Context, query string, limit int, units []index.Unit) (semantic.Results, error) {
	if limit <= 0 || len(units) == 0 {
		return semantic.Results{}, nil
	}

	if query == "" {
		return firstUnits(units, limit), nil
	}

	idx, err := s.ensureIndex(units)
	if err != nil {
		return nil, err
	}

	// Request every unit so ties can be broken deterministically
	// before truncation.
	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), len(units), 0, false)
	res, err := idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bm25 search: %w", err)
	}

	results := make(semantic.Results, 0, len(res.Hits))
	for _, hit := range res.Hits {
		score := hit.Score
		if res.MaxScore > 0 {
			score = hit.Score / res.MaxScore
		}
		results = append(results, semantic.Result{UnitID: hit.ID, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].UnitID < results[j].UnitID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Close releases the cached bleve index.
func (s *BM25Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil {
		return nil
	}
	err := s.cached.Close()
	s.cached = nil
	s.fingerprint = ""
	return err
}

// ensureIndex returns the cached bleve index, rebuilding it when the
// unit fingerprint has changed.
func (s *BM25Searcher) ensureIndex(units []index.Unit) (bleve.Index, error) {
	fingerprint := computeFingerprint(units)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.fingerprint == fingerprint {
		return s.cached, nil
	}

	built, err := s.buildIndex(units)
	if err != nil {
		return nil, err
	}

	if s.cached != nil {
		_ = s.cached.Close()
	}
	s.cached = built
	s.fingerprint = fingerprint
	return built, nil
}

func (s *BM25Searcher) buildIndex(units []index.Unit) (bleve.Index, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("create bm25 index: %w", err)
	}

	if s.cfg.MaxUnits > 0 && len(units) > s.cfg.MaxUnits {
		units = units[:s.cfg.MaxUnits]
	}

	batch := idx.NewBatch()
	for _, unit := range units {
		content := unit.Content
		if s.cfg.MaxContentLen > 0 && len(content) > s.cfg.MaxContentLen {
			content = content[:s.cfg.MaxContentLen]
		}
		if err := batch.Index(unit.ID, map[string]any{"content": content}); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index %s: %w", unit.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("apply bm25 batch: %w", err)
	}

	return idx, nil
}

func firstUnits(units []index.Unit, limit int) semantic.Results {
	ids := make([]string, 0, len(units))
	for _, unit := range units {
		ids = append(ids, unit.ID)
	}
	sort.Strings(ids)

	if len(ids) > limit {
		ids = ids[:limit]
	}
	results := make(semantic.Results, len(ids))
	for i, id := range ids {
		results[i] = semantic.Result{UnitID: id, Score: 0}
	}
	return results
}
