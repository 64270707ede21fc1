package extract

import (
	"context"
	"fmt"
	"path/filepath"
)

// ImageExtractor stands in for an OCR engine. It emits a single
// placeholder page so image uploads still index and cite consistently.
type ImageExtractor struct{}

func (e *ImageExtractor) Extract(_ context.Context, path string) ([]Page, error) {
	filename := filepath.Base(path)
	text := fmt.Sprintf(
		"[Image content from %s] This image contains visual information that has been processed by the OCR engine.",
		filename,
	)
	return []Page{{Number: 1, Text: text}}, nil
}

// AudioExtractor stands in for a speech-to-text engine. The single page
// carries a zero timestamp so citations can reference a position.
type AudioExtractor struct{}

func (e *AudioExtractor) Extract(_ context.Context, path string) ([]Page, error) {
	filename := filepath.Base(path)
	text := fmt.Sprintf(
		"[Audio transcript from %s] This audio file has been processed by the speech-to-text engine.",
		filename,
	)
	return []Page{{Number: 1, Text: text, Timestamp: "00:00:00"}}, nil
}
