// Package extract turns uploaded files into page-labeled plain text.
// Each extractor is an opaque collaborator from the retrieval core's
// point of view: it takes a file path and returns pages.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Supported file types.
const (
	TypePDF   = "pdf"
	TypeDOCX  = "docx"
	TypeImage = "image"
	TypeAudio = "audio"
	TypeText  = "text"
	TypeHTML  = "html"
)

// Page is one unit of extracted text tagged with its origin inside the
// source file. Timestamp is only set for time-based media.
type Page struct {
	Number    int
	Text      string
	Timestamp string
}

// Extractor produces page-labeled text from a stored file.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]Page, error)
}

var typeByExt = map[string]string{
	"pdf":  TypePDF,
	"doc":  TypeDOCX,
	"docx": TypeDOCX,
	"png":  TypeImage,
	"jpg":  TypeImage,
	"jpeg": TypeImage,
	"gif":  TypeImage,
	"bmp":  TypeImage,
	"webp": TypeImage,
	"mp3":  TypeAudio,
	"wav":  TypeAudio,
	"ogg":  TypeAudio,
	"m4a":  TypeAudio,
	"flac": TypeAudio,
	"txt":  TypeText,
	"md":   TypeText,
	"html": TypeHTML,
	"htm":  TypeHTML,
}

// TypeFromFilename maps a filename extension to a supported file type.
func TypeFromFilename(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	fileType, ok := typeByExt[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type: .%s", ext)
	}
	return fileType, nil
}

// ForType returns the extractor responsible for a file type.
func ForType(fileType string) (Extractor, error) {
	switch fileType {
	case TypePDF:
		return NewPDFExtractor(), nil
	case TypeDOCX:
		return &DOCXExtractor{}, nil
	case TypeImage:
		return &ImageExtractor{}, nil
	case TypeAudio:
		return &AudioExtractor{}, nil
	case TypeText:
		return &TextExtractor{}, nil
	case TypeHTML:
		return &HTMLExtractor{}, nil
	default:
		return nil, fmt.Errorf("no extractor for file type %q", fileType)
	}
}
