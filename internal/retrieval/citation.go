package retrieval

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// NoRelevantContext is the context handed to the answer generator when
// no ranked chunk scored above zero.
const NoRelevantContext = "No relevant documents found."

// noRelevantAnswer is the degraded answer when a query matched nothing.
const noRelevantAnswer = "No relevant documents found for your query. Please upload documents first."

// previewLength bounds the citation text preview.
const previewLength = 200

// Citation is a structured reference back to the source chunk backing
// part of a generated answer.
type Citation struct {
	Index       int     `json:"index"`
	Filename    string  `json:"filename"`
	FileType    string  `json:"file_type"`
	PageNumber  *int    `json:"page_number,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
	TextPreview string  `json:"text_preview"`
	Score       float64 `json:"score"`
}

// Assemble turns ranked results into the numbered context block handed
// to the answer generator plus the parallel citation list. Only entries
// with a positive score receive a [n] label; zero-score entries are
// skipped entirely. An empty outcome yields the sentinel context and no
// citations.
func Assemble(ranked []RankedResult) (string, []Citation) {
	var parts []string
	var citations []Citation

	for _, res := range ranked {
		if res.Score <= 0 {
			continue
		}
		index := len(citations) + 1
		parts = append(parts, fmt.Sprintf("[%d] %s", index, res.Chunk.Text))
		citations = append(citations, Citation{
			Index:       index,
			Filename:    res.Chunk.Filename,
			FileType:    res.Chunk.FileType,
			PageNumber:  res.Chunk.PageNumber,
			Timestamp:   res.Chunk.Timestamp,
			TextPreview: preview(res.Chunk.Text),
			Score:       math.Round(res.Score*10000) / 10000,
		})
	}

	if len(parts) == 0 {
		return NoRelevantContext, nil
	}
	return strings.Join(parts, "\n\n"), citations
}

// FallbackAnswer builds a citation-only answer for when the generation
// collaborator is unavailable. The format is part of the observable
// contract.
func FallbackAnswer(citations []Citation) string {
	if len(citations) == 0 {
		return noRelevantAnswer
	}

	var b strings.Builder
	b.WriteString("Based on the retrieved documents, here is the relevant information:\n\n")
	for _, c := range citations {
		fmt.Fprintf(&b, "[%d] From %s", c.Index, c.Filename)
		if c.PageNumber != nil {
			fmt.Fprintf(&b, " (Page %d)", *c.PageNumber)
		}
		fmt.Fprintf(&b, ": %s...\n\n", c.TextPreview)
	}
	return b.String()
}

// preview returns the first 200 characters of text, backing off to the
// nearest rune boundary so multi-byte input never gets split mid-rune.
func preview(text string) string {
	if len(text) <= previewLength {
		return text
	}
	cut := previewLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
