// Package embedder generates vector embeddings from source text.
//
// The primary implementation is [HashEmbedder], a deterministic
// token-hash generator with no external dependencies: it tokenizes text,
// hashes each token into a fixed number of dimensions, and L2-normalizes
// the result. Because co-occurring tokens accumulate into shared
// dimensions, texts with overlapping vocabulary score close to each other
// under cosine similarity.
//
// # Guarantees
//
//   - Deterministic: identical input yields an identical vector.
//   - Fixed dimension: every vector has exactly Dimension() entries,
//     for the empty string included.
//   - Unit length: non-empty output is L2-normalized, so cosine
//     similarity reduces to a dot product.
//
// # Substituting a real model
//
// [Embedder] is the narrow seam for upgrading to a trained embedding
// model. Anything that maps text to a fixed-length []float32 can back the
// index and search packages without changes there:
//
//	type OpenAIEmbedder struct{ client *openai.Client }
//
//	func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
//	    ...
//	}
package embedder
