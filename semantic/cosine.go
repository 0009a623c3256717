package semantic

import "math"

// CosineSimilarity returns dot(a,b) / (||a||*||b||). Norms are computed
// here even for embeddings that are expected to already be unit length,
// so non-normalized vectors from future embedders still compare
// correctly. Mismatched lengths, empty vectors, and zero vectors all
// score 0 rather than erroring.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
