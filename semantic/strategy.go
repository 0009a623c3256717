package semantic

import (
	"context"
	"errors"
	"sync"

	"github.com/jonwraymond/codesearch/embedder"
	"github.com/jonwraymond/codesearch/index"
)

// Sentinel errors for consistent error handling.
var (
	ErrInvalidSearcher     = errors.New("searcher requires an index")
	ErrInvalidStrategy     = errors.New("strategy is required")
	ErrInvalidEmbedder     = errors.New("embedder is required")
	ErrInvalidHybridConfig = errors.New("invalid hybrid strategy configuration")
)

// Strategy scores a single indexed unit against a query. Implementations
// must be safe for concurrent Score calls and should return scores in
// [0,1] so threshold semantics hold across strategies.
type Strategy interface {
	Score(ctx context.Context, query string, unit index.Unit) (float64, error)
}

// LexicalScorer scores a unit by lexical overlap with the query.
// It is the dependency-light seam for plugging in stronger lexical
// ranking (the search package's bleve searcher covers that).
type LexicalScorer interface {
	Score(query string, unit index.Unit) float64
}

type lexicalStrategy struct {
	scorer LexicalScorer
}

// NewLexicalStrategy creates a strategy backed by the given scorer.
// A nil scorer uses the default: the fraction of distinct query tokens
// present in the unit's content.
func NewLexicalStrategy(scorer LexicalScorer) Strategy {
	if scorer == nil {
		scorer = defaultLexicalScorer{}
	}
	return lexicalStrategy{scorer: scorer}
}

func (s lexicalStrategy) Score(_ context.Context, query string, unit index.Unit) (float64, error) {
	return s.scorer.Score(query, unit), nil
}

type defaultLexicalScorer struct{}

func (defaultLexicalScorer) Score(query string, unit index.Unit) float64 {
	queryTokens := embedder.TokenSet(query)
	if len(queryTokens) == 0 {
		return 0
	}

	unitTokens := embedder.TokenSet(unit.Content)
	matched := 0
	for token := range queryTokens {
		if _, ok := unitTokens[token]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(queryTokens))
}

type embeddingStrategy struct {
	emb embedder.Embedder

	mu        sync.Mutex
	lastQuery string
	lastVec   []float32
	hasCached bool
}

// NewEmbeddingStrategy creates a strategy that scores units by cosine
// similarity between the query embedding and the unit's stored embedding.
// Units indexed without an embedding are embedded on the fly. The query
// embedding is computed once and reused while the query is unchanged, so
// a scan over n units embeds the query once, not n times.
func NewEmbeddingStrategy(emb embedder.Embedder) Strategy {
	return &embeddingStrategy{emb: emb}
}

func (s *embeddingStrategy) Score(ctx context.Context, query string, unit index.Unit) (float64, error) {
	if s.emb == nil {
		return 0, ErrInvalidEmbedder
	}

	queryVec, err := s.queryEmbedding(ctx, query)
	if err != nil {
		return 0, err
	}

	unitVec := unit.Embedding
	if len(unitVec) == 0 {
		unitVec, err = s.emb.Embed(ctx, unit.Content)
		if err != nil {
			return 0, err
		}
	}

	return CosineSimilarity(queryVec, unitVec), nil
}

func (s *embeddingStrategy) queryEmbedding(ctx context.Context, query string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasCached && s.lastQuery == query {
		return s.lastVec, nil
	}

	vec, err := s.emb.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	s.lastQuery, s.lastVec, s.hasCached = query, vec, true
	return vec, nil
}

type hybridStrategy struct {
	lexical   Strategy
	embedding Strategy
	alpha     float64
}

// NewHybridStrategy combines a lexical and an embedding strategy with
// weight alpha on the lexical score and 1-alpha on the embedding score.
func NewHybridStrategy(lexical, embedding Strategy, alpha float64) (Strategy, error) {
	if lexical == nil || embedding == nil {
		return nil, ErrInvalidHybridConfig
	}
	if alpha < 0 || alpha > 1 {
		return nil, ErrInvalidHybridConfig
	}
	return hybridStrategy{lexical: lexical, embedding: embedding, alpha: alpha}, nil
}

func (s hybridStrategy) Score(ctx context.Context, query string, unit index.Unit) (float64, error) {
	lexScore, err := s.lexical.Score(ctx, query, unit)
	if err != nil {
		return 0, err
	}

	embScore, err := s.embedding.Score(ctx, query, unit)
	if err != nil {
		return 0, err
	}

	return s.alpha*lexScore + (1-s.alpha)*embScore, nil
}
