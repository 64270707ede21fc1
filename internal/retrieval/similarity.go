package retrieval

import "math"

// CosineSimilarity computes the cosine similarity between two sparse
// term-frequency maps, treating absent keys as zero. It is a total
// function: an empty key union or a zero-magnitude operand yields 0.0.
// For count vectors the result is always within [0, 1].
func CosineSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dot float64
	for key, av := range a {
		if bv, ok := b[key]; ok {
			dot += float64(av) * float64(bv)
		}
	}

	var magA, magB float64
	for _, v := range a {
		magA += float64(v) * float64(v)
	}
	for _, v := range b {
		magB += float64(v) * float64(v)
	}

	if magA == 0 || magB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
