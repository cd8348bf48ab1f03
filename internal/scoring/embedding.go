// internal/scoring/embedding.go
package scoring

import "math"

// Embedder is the optional semantic capability. Richer deployments inject an
// implementation; constrained ones leave it nil and the engine falls back to
// keyword similarity. Implementations must be deterministic for a given text.
type Embedder interface {
	Embed(text string) ([]float64, error)
}

// cosineSimilarity returns the cosine of two vectors, clamped to [0, 1] so a
// dissimilar pair never subtracts from the score.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	return sim
}
