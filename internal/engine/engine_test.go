package engine_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docvault/backend/internal/config"
	"github.com/docvault/backend/internal/engine"
	"github.com/docvault/backend/internal/storage"
	"github.com/docvault/backend/internal/store"
)

type MockLLMProvider struct {
	mock.Mock
}

func (m *MockLLMProvider) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLMProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func setupEngine(t *testing.T) (*engine.Engine, *MockLLMProvider) {
	t.Helper()

	cfg := config.Load()
	cfg.Retrieval.ChunkSize = 50
	cfg.Retrieval.ChunkOverlap = 10

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	files, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	eng, err := engine.NewEngine(cfg, logger.WithField("test", "engine"), st, files)
	require.NoError(t, err)

	mockLLM := new(MockLLMProvider)
	eng.LLM = mockLLM
	return eng, mockLLM
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := config.Load()
	cfg.Retrieval.ChunkOverlap = cfg.Retrieval.ChunkSize

	_, err := engine.NewEngine(cfg, logrus.New().WithField("test", "engine"), nil, nil)
	assert.Error(t, err)
}

func TestIngestDocument(t *testing.T) {
	eng, _ := setupEngine(t)
	ctx := context.Background()

	doc, err := eng.IngestDocument(ctx, "notes.txt", []byte("The retrieval engine ranks keyword vectors against stored chunks."), "tester")
	require.NoError(t, err)

	assert.Equal(t, "text", doc.FileType)
	assert.Equal(t, store.StatusIndexed, doc.Status)
	assert.Equal(t, 1, doc.TotalChunks)
	assert.Equal(t, "tester", doc.UploadedBy)

	chunks, err := eng.Store.AllChunks(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, doc.ID, chunks[0].DocumentID)
	assert.Contains(t, chunks[0].Keywords, "retrieval")
	assert.NotContains(t, chunks[0].Keywords, "the")
	require.NotNil(t, chunks[0].PageNumber)
	assert.Equal(t, 1, *chunks[0].PageNumber)
}

func TestIngestDocumentEmptyFile(t *testing.T) {
	eng, _ := setupEngine(t)

	doc, err := eng.IngestDocument(context.Background(), "empty.txt", []byte("   \n"), "tester")
	require.NoError(t, err)
	assert.Equal(t, store.StatusEmpty, doc.Status)
	assert.Equal(t, 0, doc.TotalChunks)
}

func TestIngestDocumentUnsupportedType(t *testing.T) {
	eng, _ := setupEngine(t)

	_, err := eng.IngestDocument(context.Background(), "data.xlsx", []byte("x"), "tester")
	assert.Error(t, err)
}

func TestIngestDocumentChunkIndexMonotonic(t *testing.T) {
	eng, _ := setupEngine(t)
	ctx := context.Background()

	// 120 words with chunk size 50 / overlap 10 -> multiple chunks.
	text := ""
	for i := 0; i < 120; i++ {
		text += "retrieval "
	}
	doc, err := eng.IngestDocument(ctx, "long.txt", []byte(text), "tester")
	require.NoError(t, err)
	require.Greater(t, doc.TotalChunks, 1)

	chunks, err := eng.Store.AllChunks(ctx)
	require.NoError(t, err)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
	}
}

func TestQueryGeneratesAnswerAndLogs(t *testing.T) {
	eng, mockLLM := setupEngine(t)
	ctx := context.Background()

	_, err := eng.IngestDocument(ctx, "notes.txt", []byte("Cosine similarity compares keyword vectors for ranking."), "tester")
	require.NoError(t, err)

	mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("Cited answer [1]", nil)

	res, err := eng.Query(ctx, "how does cosine similarity ranking work", 5, "tester")
	require.NoError(t, err)
	assert.Equal(t, "Cited answer [1]", res.Answer)
	require.Len(t, res.Citations, 1)
	assert.Equal(t, 1, res.Citations[0].Index)
	assert.Equal(t, "notes.txt", res.Citations[0].Filename)
	assert.NotEmpty(t, res.QueryID)

	history, err := eng.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, res.QueryID, history[0].ID)
	assert.Equal(t, "Cited answer [1]", history[0].Answer)
}

func TestQueryFallsBackWhenGeneratorFails(t *testing.T) {
	eng, mockLLM := setupEngine(t)
	ctx := context.Background()

	_, err := eng.IngestDocument(ctx, "notes.txt", []byte("Chunk overlap keeps context across window boundaries."), "tester")
	require.NoError(t, err)

	mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("", assert.AnError)

	res, err := eng.Query(ctx, "what does chunk overlap do", 5, "tester")
	require.NoError(t, err)
	assert.Contains(t, res.Answer, "[1] From notes.txt")
	assert.Contains(t, res.Answer, "...")
}

func TestQueryEmptyCorpus(t *testing.T) {
	eng, mockLLM := setupEngine(t)

	mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("", assert.AnError)

	res, err := eng.Query(context.Background(), "anything at all", 0, "tester")
	require.NoError(t, err)
	assert.Empty(t, res.Citations)
	assert.Contains(t, res.Answer, "No relevant documents found")
}

func TestDeleteDocumentCascades(t *testing.T) {
	eng, _ := setupEngine(t)
	ctx := context.Background()

	doc, err := eng.IngestDocument(ctx, "notes.txt", []byte("short lived document content"), "tester")
	require.NoError(t, err)

	require.NoError(t, eng.DeleteDocument(ctx, doc.ID))

	chunks, err := eng.Store.AllChunks(ctx)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	err = eng.DeleteDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRebuildIndex(t *testing.T) {
	eng, _ := setupEngine(t)
	ctx := context.Background()

	_, err := eng.IngestDocument(ctx, "notes.txt", []byte("Keyword vectors get recomputed by the rebuild."), "tester")
	require.NoError(t, err)

	before, err := eng.Store.AllChunks(ctx)
	require.NoError(t, err)
	require.Len(t, before, 1)

	rebuilt, err := eng.RebuildIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rebuilt)

	after, err := eng.Store.AllChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, before[0].Keywords, after[0].Keywords, "rebuild must stay consistent with chunk text")
}
