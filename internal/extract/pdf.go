package extract

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command and returns its stdout.
// It exists so tests can stand in for the pdftotext binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PDFExtractor shells out to pdftotext and splits its output on the
// form-feed page separators the tool emits.
type PDFExtractor struct {
	Runner CommandRunner
}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{Runner: execRunner{}}
}

func (e *PDFExtractor) Extract(ctx context.Context, path string) ([]Page, error) {
	out, err := e.Runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}

	var pages []Page
	for i, raw := range strings.Split(string(out), "\f") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: text})
	}
	return pages, nil
}
