package retrieval

import (
	"errors"
	"sort"
)

// ErrInvalidTopK is returned when a caller asks for a non-positive
// number of results.
var ErrInvalidTopK = errors.New("top_k must be a positive integer")

// Rank scores every chunk in the corpus against the query vector and
// returns the topK best matches in descending score order. Ties keep
// corpus iteration order. Zero-score entries are not filtered here;
// callers decide what counts as relevant.
func Rank(queryVec map[string]int, chunks []Chunk, topK int) ([]RankedResult, error) {
	if topK <= 0 {
		return nil, ErrInvalidTopK
	}

	results := make([]RankedResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, RankedResult{
			Score: CosineSimilarity(queryVec, chunk.Keywords),
			Chunk: chunk,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
