package retrieval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docvault/backend/internal/retrieval"
)

func TestCosineSimilarityIdentical(t *testing.T) {
	vec := map[string]int{"alpha": 2, "beta": 1}
	assert.InDelta(t, 1.0, retrieval.CosineSimilarity(vec, vec), 1e-9)
}

func TestCosineSimilaritySymmetry(t *testing.T) {
	a := map[string]int{"alpha": 3, "beta": 1}
	b := map[string]int{"beta": 2, "gamma": 5}
	assert.Equal(t, retrieval.CosineSimilarity(a, b), retrieval.CosineSimilarity(b, a))
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	a := map[string]int{"alpha": 1}
	b := map[string]int{"beta": 1}
	assert.Equal(t, 0.0, retrieval.CosineSimilarity(a, b))
}

func TestCosineSimilarityKnownValue(t *testing.T) {
	// dot = 1, |a| = sqrt(2), |b| = sqrt(2) -> 0.5
	a := map[string]int{"alpha": 1, "gamma": 1}
	b := map[string]int{"beta": 1, "gamma": 1}
	assert.InDelta(t, 0.5, retrieval.CosineSimilarity(a, b), 1e-9)
}

func TestCosineSimilarityEmptyOperands(t *testing.T) {
	b := map[string]int{"beta": 2}
	assert.Equal(t, 0.0, retrieval.CosineSimilarity(map[string]int{}, b))
	assert.Equal(t, 0.0, retrieval.CosineSimilarity(b, map[string]int{}))
	assert.Equal(t, 0.0, retrieval.CosineSimilarity(nil, nil))
}

func TestCosineSimilarityRange(t *testing.T) {
	a := retrieval.Keywords("cosine similarity ranks keyword vectors")
	b := retrieval.Keywords("keyword vectors rank documents using cosine scores")
	score := retrieval.CosineSimilarity(a, b)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
