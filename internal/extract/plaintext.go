package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// TextExtractor reads plain text and markdown files verbatim as a
// single page.
type TextExtractor struct{}

func (e *TextExtractor) Extract(_ context.Context, path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}
	return []Page{{Number: 1, Text: text}}, nil
}
