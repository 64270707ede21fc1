package retrieval

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidChunkSize is returned when the window size is not positive.
	ErrInvalidChunkSize = errors.New("chunk size must be > 0")

	// ErrOverlapTooLarge signals overlap >= chunk size. Split still returns
	// usable chunks in that case, produced with non-overlapping windows.
	ErrOverlapTooLarge = errors.New("overlap must be smaller than chunk size")
)

// rawFallbackLimit caps the single fallback chunk taken from raw text
// when windowing produces nothing.
const rawFallbackLimit = 2000

// Split cuts text into overlapping word windows of chunkSize words, each
// window starting chunkSize-overlap words after the previous one. Words
// are rejoined with single spaces.
//
// If no windows survive and the text is non-empty, a single chunk holding
// the first 2000 bytes of the raw text is returned instead. Empty input
// yields no chunks.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}

	var cfgErr error
	if overlap >= chunkSize {
		// Degrade to non-overlapping windows instead of stalling the
		// window start. Callers are expected to validate this upfront.
		cfgErr = ErrOverlapTooLarge
		overlap = 0
	}
	if overlap < 0 {
		overlap = 0
	}

	words := strings.Fields(text)
	step := chunkSize - overlap

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[start:end], " ")
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		// The last window swallowed the tail; a further step would only
		// re-emit a suffix of it.
		if end == len(words) {
			break
		}
	}

	if len(chunks) == 0 {
		if strings.TrimSpace(text) == "" {
			return nil, cfgErr
		}
		raw := text
		if len(raw) > rawFallbackLimit {
			raw = raw[:rawFallbackLimit]
		}
		return []string{raw}, cfgErr
	}

	return chunks, cfgErr
}
