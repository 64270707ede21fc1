package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxPageLimit groups paragraphs into synthetic pages of roughly this
// many characters; DOCX has no intrinsic page boundaries.
const docxPageLimit = 2000

// DOCXExtractor pulls paragraph text out of word/document.xml inside
// the DOCX zip container.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Extract(_ context.Context, path string) ([]Page, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer reader.Close()

	paragraphs, err := documentParagraphs(&reader.Reader)
	if err != nil {
		return nil, err
	}

	var pages []Page
	var current []string
	pageNum := 1
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		current = append(current, para)
		if len(strings.Join(current, "\n")) > docxPageLimit {
			pages = append(pages, Page{Number: pageNum, Text: strings.Join(current, "\n")})
			current = nil
			pageNum++
		}
	}
	if len(current) > 0 {
		pages = append(pages, Page{Number: pageNum, Text: strings.Join(current, "\n")})
	}
	return pages, nil
}

// documentXML mirrors the parts of word/document.xml we care about.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []struct {
		Text string `xml:"t"`
	} `xml:"r"`
}

func documentParagraphs(reader *zip.Reader) ([]string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read document.xml: %w", err)
		}

		var doc documentXML
		if err := xml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse document.xml: %w", err)
		}

		paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
		for _, p := range doc.Body.Paragraphs {
			var b strings.Builder
			for _, run := range p.Runs {
				b.WriteString(run.Text)
			}
			paragraphs = append(paragraphs, b.String())
		}
		return paragraphs, nil
	}
	return nil, nil
}
