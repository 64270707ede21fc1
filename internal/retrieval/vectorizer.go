package retrieval

import (
	"regexp"
	"strings"
)

// tokenPattern matches runs of three or more ASCII letters. Numbers,
// punctuation and shorter tokens never make it into a keyword vector.
var tokenPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// stopWords is the fixed set of common English words excluded from
// keyword vectors. Process-scope constant, never mutated.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "can",
		"her", "was", "one", "our", "out", "has", "have", "from", "this",
		"that", "with", "they", "been", "said", "each", "which", "their",
		"will", "other", "about", "many", "then", "them", "these", "some",
		"would", "make", "like", "into", "could", "time", "very", "when",
		"come", "made", "after", "back",
	} {
		stopWords[w] = struct{}{}
	}
}

// Keywords extracts a sparse term-frequency map from text: lowercase
// alphabetic tokens of length >= 3 that are not stop-words, mapped to
// their occurrence counts. Tokens absent from the text are absent from
// the map.
func Keywords(text string) map[string]int {
	keywords := make(map[string]int)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopWords[token]; stop {
			continue
		}
		keywords[token]++
	}
	return keywords
}
