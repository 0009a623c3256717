package embedder

import (
	"context"
	"hash/fnv"
	"math"
)

// DefaultDimension is the embedding width used when none is configured.
const DefaultDimension = 128

// Embedder generates vector embeddings from text.
// Implementations must be deterministic: the same input always produces
// the same vector. They must also be safe for concurrent use.
type Embedder interface {
	// Embed returns a fixed-length vector for the given text.
	// The empty string is valid input and returns a zero vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the length of every vector this embedder produces.
	Dimension() int
}

// HashEmbedder is a dependency-free embedder that hashes tokens into a
// fixed-length vector. Texts sharing more vocabulary land closer together
// under cosine similarity. It captures lexical overlap, not paraphrase-level
// semantics; swap in a model-backed Embedder for the latter.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates a hash embedder with the given dimension.
// Dimensions <= 0 fall back to DefaultDimension.
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashEmbedder{dim: dimension}
}

// Dimension returns the configured vector length.
func (e *HashEmbedder) Dimension() int {
	return e.dim
}

// Embed maps text to an L2-normalized vector. Each token is hashed into
// two dimensions with descending weight, accumulating rather than
// overwriting so that co-occurring tokens reinforce shared dimensions.
func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dim)

	for _, token := range Tokenize(text) {
		h := hashToken(token)
		vec[int(h%uint64(e.dim))] += 1.0
		vec[int((h>>32)%uint64(e.dim))] += 0.5
	}

	normalize(vec)
	return vec, nil
}

func hashToken(token string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(token))
	return h.Sum64()
}

// normalize scales vec to unit length in place. Zero vectors are left
// untouched so that empty input stays a valid, degenerate embedding.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}

	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
