// Package semantic provides similarity search over indexed source units.
//
// It defines pluggable scoring strategies (lexical, embedding, hybrid)
// without enforcing any vector backend or network dependency.
//
// # Core Interfaces
//
//   - [Strategy]: scores one unit against a query
//   - [LexicalScorer]: token-overlap scoring seam used by the default
//     lexical strategy
//   - [Searcher]: ranks all indexed units and applies threshold, ordering,
//     and limit semantics
//
// # Search Strategies
//
// Three built-in strategies are provided:
//
//   - Lexical: fraction of query tokens present in the unit, no
//     external dependencies
//   - Embedding: cosine similarity of vector embeddings
//   - Hybrid: weighted combination of the two
//
// Create strategies using the constructor functions:
//
//	lex := semantic.NewLexicalStrategy(nil)          // nil uses default scorer
//	emb := semantic.NewEmbeddingStrategy(embedder)   // requires an Embedder
//	hybrid, _ := semantic.NewHybridStrategy(lex, emb, 0.3)  // 30% lexical
//
// # Basic Usage
//
//	searcher, _ := semantic.NewSearcher(idx)
//	queryVec, _ := emb.Embed(ctx, "email validation")
//	results, err := searcher.Search(ctx, queryVec, 10, 0.1)
//	if errors.Is(err, index.ErrNotReady) {
//	    // nothing indexed yet, not the same as zero matches
//	}
//
// # Determinism
//
// Results are ordered by score descending with unit ID ascending as the
// tie-break, so equal-scoring hits always come back in the same order.
//
// # Thread Safety
//
// Searcher and all built-in strategies are safe for concurrent use.
// The embedding strategy caches the current query embedding behind a
// mutex; everything else is stateless.
package semantic
