package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// BlobStorage defines the interface for keeping uploaded originals on
// disk so extractors can read them and deletes can cascade to the file.
type BlobStorage interface {
	Save(docID, filename string, content []byte) (string, error)
	Path(docID, filename string) string
	Delete(docID string) error
}

// FileStorage implements BlobStorage using the local file system.
type FileStorage struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStorage creates a new file-based storage
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{
		baseDir: baseDir,
	}, nil
}

// Save writes the uploaded bytes under "{docID}_{filename}" and returns
// the stored path.
func (fs *FileStorage) Save(docID, filename string, content []byte) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := fs.Path(docID, filename)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Path returns where a document's original lives on disk.
func (fs *FileStorage) Path(docID, filename string) string {
	return filepath.Join(fs.baseDir, docID+"_"+safeFilename(filename))
}

// Delete removes every stored file belonging to the document.
func (fs *FileStorage) Delete(docID string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(fs.baseDir, docID+"_*"))
	if err != nil {
		return fmt.Errorf("failed to locate files: %w", err)
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove file: %w", err)
		}
	}
	return nil
}

// safeFilename strips path separators and anything else that could
// escape the storage directory, keeping the extension intact.
func safeFilename(filename string) string {
	filename = filepath.Base(filename)
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	safe := b.String()
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}
