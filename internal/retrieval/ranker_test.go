package retrieval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault/backend/internal/retrieval"
)

func chunkWithText(id, text string) retrieval.Chunk {
	return retrieval.Chunk{
		ChunkID:  id,
		Text:     text,
		Keywords: retrieval.Keywords(text),
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	corpus := []retrieval.Chunk{
		chunkWithText("c1", "banana bread recipe"),
		chunkWithText("c2", "golang retrieval engine design"),
		chunkWithText("c3", "retrieval engine scoring internals"),
	}
	query := retrieval.Keywords("retrieval engine scoring")

	results, err := retrieval.Rank(query, corpus, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "c3", results[0].Chunk.ChunkID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRankKeepsZeroScores(t *testing.T) {
	corpus := []retrieval.Chunk{
		chunkWithText("c1", "totally unrelated content"),
		chunkWithText("c2", "matching keywords here"),
	}
	results, err := retrieval.Rank(retrieval.Keywords("matching keywords"), corpus, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "c2", results[0].Chunk.ChunkID)
	assert.Equal(t, 0.0, results[1].Score)
}

func TestRankStableOnTies(t *testing.T) {
	// Identical chunks score identically; corpus order must survive.
	corpus := []retrieval.Chunk{
		chunkWithText("first", "shared vocabulary chunk"),
		chunkWithText("second", "shared vocabulary chunk"),
		chunkWithText("third", "shared vocabulary chunk"),
	}
	results, err := retrieval.Rank(retrieval.Keywords("shared vocabulary"), corpus, 3)
	require.NoError(t, err)
	assert.Equal(t, "first", results[0].Chunk.ChunkID)
	assert.Equal(t, "second", results[1].Chunk.ChunkID)
	assert.Equal(t, "third", results[2].Chunk.ChunkID)
}

func TestRankTruncatesToTopK(t *testing.T) {
	var corpus []retrieval.Chunk
	for i := 0; i < 10; i++ {
		corpus = append(corpus, chunkWithText("c", "common terms everywhere"))
	}
	results, err := retrieval.Rank(retrieval.Keywords("common terms"), corpus, 4)
	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestRankEmptyCorpus(t *testing.T) {
	results, err := retrieval.Rank(retrieval.Keywords("anything"), nil, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankInvalidTopK(t *testing.T) {
	_, err := retrieval.Rank(retrieval.Keywords("query"), nil, 0)
	assert.ErrorIs(t, err, retrieval.ErrInvalidTopK)

	_, err = retrieval.Rank(retrieval.Keywords("query"), nil, -3)
	assert.ErrorIs(t, err, retrieval.ErrInvalidTopK)
}
