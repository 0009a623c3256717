package query

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jonwraymond/codesearch/embedder"
	"github.com/jonwraymond/codesearch/index"
	"github.com/jonwraymond/codesearch/search"
	"github.com/jonwraymond/codesearch/semantic"
)

// Mode selects how units are scored.
type Mode string

const (
	// ModeSemantic scores by cosine similarity of embeddings.
	ModeSemantic Mode = "semantic"

	// ModeLexical scores by BM25 over unit content.
	ModeLexical Mode = "lexical"

	// ModeHybrid blends lexical token overlap with embedding similarity.
	ModeHybrid Mode = "hybrid"
)

// Default option values.
const (
	DefaultMaxLimit       = 100
	DefaultMaxQueryLength = 1000
	DefaultThreshold      = 0.1
	DefaultContextRadius  = 2
	DefaultHybridAlpha    = 0.3
)

// Relevance bucket boundaries.
const (
	highRelevance   = 0.7
	mediumRelevance = 0.4
)

// Options configures a Pipeline. Zero values fall back to the defaults.
type Options struct {
	// MaxLimit caps the limit parameter of a query.
	MaxLimit int

	// MaxQueryLength caps query length in bytes.
	MaxQueryLength int

	// ContextRadius is the number of lines included on each side of the
	// best-matching line in a context snippet.
	ContextRadius int

	// HybridAlpha is the lexical weight in hybrid mode.
	HybridAlpha float64
}

func (o Options) withDefaults() Options {
	if o.MaxLimit <= 0 {
		o.MaxLimit = DefaultMaxLimit
	}
	if o.MaxQueryLength <= 0 {
		o.MaxQueryLength = DefaultMaxQueryLength
	}
	if o.ContextRadius <= 0 {
		o.ContextRadius = DefaultContextRadius
	}
	if o.HybridAlpha <= 0 {
		o.HybridAlpha = DefaultHybridAlpha
	}
	return o
}

// ContextLine is one line of a context snippet, with its 1-based number.
type ContextLine struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Context is the snippet window around the best-matching line of a unit.
type Context struct {
	Lines []ContextLine `json:"lines"`
}

// Result is one formatted search hit.
type Result struct {
	FilePath   string  `json:"filePath"`
	Similarity float64 `json:"similarity"`
	Relevance  string  `json:"relevance"`
	Context    Context `json:"context"`
}

// Response is the ordered outcome of one query.
type Response struct {
	Query       string   `json:"query"`
	ResultCount int      `json:"resultCount"`
	Results     []Result `json:"results"`
}

// Pipeline orchestrates a query end to end: validate, embed, search,
// extract context snippets, and assemble the response. It reads the
// index but never mutates it.
type Pipeline struct {
	idx      *index.InMemoryIndex
	emb      embedder.Embedder
	searcher *semantic.Searcher
	lexical  *search.BM25Searcher
	opts     Options
}

// NewPipeline creates a pipeline over the given index and embedder.
func NewPipeline(idx *index.InMemoryIndex, emb embedder.Embedder, opts Options) (*Pipeline, error) {
	if idx == nil {
		return nil, semantic.ErrInvalidSearcher
	}
	if emb == nil {
		return nil, semantic.ErrInvalidEmbedder
	}

	searcher, err := semantic.NewSearcher(idx)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		idx:      idx,
		emb:      emb,
		searcher: searcher,
		lexical:  search.NewBM25Searcher(search.BM25Config{}),
		opts:     opts.withDefaults(),
	}, nil
}

// Search runs a semantic-mode query. See SearchMode.
func (p *Pipeline) Search(ctx context.Context, query string, limit int, threshold float64) (Response, error) {
	return p.SearchMode(ctx, query, ModeSemantic, limit, threshold)
}

// SearchMode validates inputs, ranks units in the given mode, and
// returns the formatted response. It never returns partial results
// alongside an error.
func (p *Pipeline) SearchMode(ctx context.Context, query string, mode Mode, limit int, threshold float64) (Response, error) {
	if err := p.validate(query, limit, threshold); err != nil {
		return Response{}, err
	}

	results, err := p.rank(ctx, query, mode, limit, threshold)
	if err != nil {
		return Response{}, err
	}

	return p.assemble(query, results)
}

func (p *Pipeline) validate(query string, limit int, threshold float64) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return ErrEmptyQuery
	}
	if len(query) > p.opts.MaxQueryLength {
		return fmt.Errorf("%w: %d > %d bytes", ErrQueryTooLong, len(query), p.opts.MaxQueryLength)
	}
	if limit < 0 || limit > p.opts.MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

func (p *Pipeline) rank(ctx context.Context, query string, mode Mode, limit int, threshold float64) (semantic.Results, error) {
	switch mode {
	case ModeSemantic:
		queryVec, err := p.emb.Embed(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("embed query: %w", err)
		}
		return p.searcher.Search(ctx, queryVec, limit, threshold)

	case ModeLexical:
		if !p.idx.Ready() {
			return nil, index.ErrNotReady
		}
		if limit == 0 {
			return semantic.Results{}, nil
		}
		results, err := p.lexical.Search(ctx, query, limit, p.idx.Units())
		if err != nil {
			return nil, err
		}
		return results.FilterByMinScore(threshold), nil

	case ModeHybrid:
		strategy, err := semantic.NewHybridStrategy(
			semantic.NewLexicalStrategy(nil),
			semantic.NewEmbeddingStrategy(p.emb),
			p.opts.HybridAlpha,
		)
		if err != nil {
			return nil, err
		}
		return p.searcher.SearchStrategy(ctx, query, strategy, limit, threshold)

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

func (p *Pipeline) assemble(query string, results semantic.Results) (Response, error) {
	out := make([]Result, 0, len(results))
	for _, hit := range results {
		unit, err := p.idx.Get(hit.UnitID)
		if err != nil {
			// The index only grows during a query, so a vanished unit
			// means a concurrent rebuild; surface it rather than
			// returning a partial response.
			return Response{}, fmt.Errorf("load %s: %w", hit.UnitID, err)
		}

		out = append(out, Result{
			FilePath:   hit.UnitID,
			Similarity: hit.Score,
			Relevance:  relevanceLabel(hit.Score),
			Context:    extractContext(unit.Content, query, p.opts.ContextRadius),
		})
	}

	return Response{
		Query:       query,
		ResultCount: len(out),
		Results:     out,
	}, nil
}

// relevanceLabel buckets a similarity score into a human-facing label.
func relevanceLabel(score float64) string {
	switch {
	case score >= highRelevance:
		return "high"
	case score >= mediumRelevance:
		return "medium"
	default:
		return "low"
	}
}
