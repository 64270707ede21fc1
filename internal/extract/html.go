package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// HTMLExtractor strips markup from HTML files and returns the visible
// text as a single page. Script and style bodies are skipped.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(_ context.Context, path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open html file: %w", err)
	}
	defer f.Close()

	text, err := visibleText(f)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}
	if text == "" {
		return nil, nil
	}
	return []Page{{Number: 1, Text: text}}, nil
}

// visibleText walks the document with the standard tokenizer and keeps
// text nodes outside script/style blocks.
func visibleText(body io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(body)
	var textBuilder strings.Builder
	inScript := false
	inStyle := false

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return cleanText(textBuilder.String()), nil
			}
			return "", tokenizer.Err()

		case html.StartTagToken:
			switch tokenizer.Token().Data {
			case "script":
				inScript = true
			case "style":
				inStyle = true
			}

		case html.EndTagToken:
			switch tokenizer.Token().Data {
			case "script":
				inScript = false
			case "style":
				inStyle = false
			}

		case html.TextToken:
			if !inScript && !inStyle {
				text := strings.TrimSpace(tokenizer.Token().Data)
				if text != "" {
					textBuilder.WriteString(text + " ")
				}
			}
		}
	}
}

// cleanText removes excessive whitespace
func cleanText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
