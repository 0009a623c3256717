package semantic

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/jonwraymond/codesearch/index"
)

// Result is one ranked search hit.
type Result struct {
	// UnitID identifies the matched unit (typically a file path).
	UnitID string

	// Score is the similarity score in [0,1], higher is better.
	Score float64
}

// Results is a slice of Result with helper methods.
type Results []Result

// IDs returns just the unit IDs from the results.
func (r Results) IDs() []string {
	ids := make([]string, len(r))
	for i, result := range r {
		ids[i] = result.UnitID
	}
	return ids
}

// FilterByMinScore returns results with score >= minScore.
func (r Results) FilterByMinScore(minScore float64) Results {
	var filtered Results
	for _, result := range r {
		if result.Score >= minScore {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// Searcher ranks indexed units against query embeddings with a linear
// scan. O(n*d) per query for n units of dimension d, which is fine for
// repository-scale corpora; an approximate-nearest-neighbor structure
// could slot in behind the same contract if corpora outgrow that.
type Searcher struct {
	idx *index.InMemoryIndex
}

// NewSearcher creates a searcher over the given index.
func NewSearcher(idx *index.InMemoryIndex) (*Searcher, error) {
	if idx == nil {
		return nil, ErrInvalidSearcher
	}
	return &Searcher{idx: idx}, nil
}

// Search scores every indexed unit against queryEmbedding by cosine
// similarity, drops scores below threshold, orders by score descending
// with unit ID ascending as the tie-break, and truncates to limit.
// Returns index.ErrNotReady when nothing has been indexed yet, so
// callers can tell "no index" apart from "no matches". A limit of 0
// yields zero results without error.
func (s *Searcher) Search(ctx context.Context, queryEmbedding []float32, limit int, threshold float64) (Results, error) {
	if !s.idx.Ready() {
		return nil, index.ErrNotReady
	}
	if limit == 0 {
		return Results{}, nil
	}

	scored := make(Results, 0, s.idx.Len())
	for _, unit := range s.idx.Units() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		score := CosineSimilarity(queryEmbedding, unit.Embedding)
		if score < threshold {
			continue
		}
		scored = append(scored, Result{UnitID: unit.ID, Score: score})
	}

	return rank(scored, limit), nil
}

// SearchStrategy ranks units with an arbitrary scoring strategy instead
// of a precomputed query embedding. Ready-gate, threshold, ordering, and
// limit semantics match Search.
func (s *Searcher) SearchStrategy(ctx context.Context, query string, strategy Strategy, limit int, threshold float64) (Results, error) {
	if strategy == nil {
		return nil, ErrInvalidStrategy
	}
	if !s.idx.Ready() {
		return nil, index.ErrNotReady
	}
	if limit == 0 {
		return Results{}, nil
	}

	scored := make(Results, 0, s.idx.Len())
	for _, unit := range s.idx.Units() {
		score, err := strategy.Score(ctx, query, unit)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", unit.ID, err)
		}
		if math.IsNaN(score) || score < threshold {
			continue
		}
		scored = append(scored, Result{UnitID: unit.ID, Score: score})
	}

	return rank(scored, limit), nil
}

// rank sorts by score descending, unit ID ascending for determinism,
// then truncates to limit.
func rank(scored Results, limit int) Results {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].UnitID < scored[j].UnitID
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
