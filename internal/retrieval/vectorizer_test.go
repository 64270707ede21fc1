package retrieval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docvault/backend/internal/retrieval"
)

func TestKeywordsFiltersStopWordsAndShortTokens(t *testing.T) {
	kw := retrieval.Keywords("The quick brown fox runs and jumps")

	assert.Equal(t, map[string]int{
		"quick": 1,
		"brown": 1,
		"fox":   1,
		"runs":  1,
		"jumps": 1,
	}, kw)
}

func TestKeywordsCountsRepeats(t *testing.T) {
	kw := retrieval.Keywords("retrieval Retrieval RETRIEVAL engine")
	assert.Equal(t, map[string]int{"retrieval": 3, "engine": 1}, kw)
}

func TestKeywordsDiscardsNumbersAndPunctuation(t *testing.T) {
	kw := retrieval.Keywords("v2 42 ab c,d!! cosine-similarity 3.14")
	assert.Equal(t, map[string]int{"cosine": 1, "similarity": 1}, kw)
}

func TestKeywordsEmptyText(t *testing.T) {
	assert.Empty(t, retrieval.Keywords(""))
	assert.Empty(t, retrieval.Keywords("the and for are"))
}

func TestKeywordsSparse(t *testing.T) {
	kw := retrieval.Keywords("alpha beta")
	_, present := kw["gamma"]
	assert.False(t, present, "absent tokens must be absent, not zero-filled")
}

func TestKeywordsIdempotentOverOwnTokens(t *testing.T) {
	kw := retrieval.Keywords("Chunking policy drives keyword vector construction and ranking")

	tokens := make([]string, 0, len(kw))
	for term := range kw {
		tokens = append(tokens, term)
	}
	again := retrieval.Keywords(strings.Join(tokens, " "))

	assert.Len(t, again, len(kw))
	for term := range kw {
		assert.Contains(t, again, term)
	}
}
