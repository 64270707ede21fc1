package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault/backend/internal/storage"
)

func TestFileStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFileStorage(dir)
	require.NoError(t, err)

	path, err := fs.Save("doc-1", "report.pdf", []byte("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, fs.Path("doc-1", "report.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)

	require.NoError(t, fs.Delete("doc-1"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorageSanitizesFilename(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFileStorage(dir)
	require.NoError(t, err)

	path, err := fs.Save("doc-2", "../../etc/pass wd.txt", []byte("x"))
	require.NoError(t, err)

	rel, err := filepath.Rel(dir, path)
	require.NoError(t, err)
	assert.False(t, filepath.IsAbs(rel))
	assert.NotContains(t, rel, "..")
	assert.NotContains(t, rel, " ")
}

func TestFileStorageDeleteUnknownIsNoop(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, fs.Delete("never-saved"))
}
