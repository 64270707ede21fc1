package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/docvault/backend/internal/config"
	"github.com/docvault/backend/internal/extract"
	"github.com/docvault/backend/internal/provider"
	"github.com/docvault/backend/internal/retrieval"
	"github.com/docvault/backend/internal/storage"
	"github.com/docvault/backend/internal/store"
)

// Engine orchestrates ingestion and retrieval-augmented answering.
type Engine struct {
	Config *config.Config
	Logger *logrus.Entry
	Store  *store.Store
	Files  storage.BlobStorage
	LLM    provider.LLMProvider
}

// QueryResult is the response shape returned to query callers.
type QueryResult struct {
	Answer    string               `json:"answer"`
	Citations []retrieval.Citation `json:"citations"`
	QueryID   string               `json:"query_id"`
}

func NewEngine(cfg *config.Config, logger *logrus.Entry, st *store.Store, files storage.BlobStorage) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Initialize LLM Provider
	var llm provider.LLMProvider
	switch cfg.LLM.Provider {
	case "openai":
		llm = provider.NewOpenAIProvider(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.APIKey)
	default:
		llm = provider.NewOllamaProvider(cfg.LLM.BaseURL, cfg.LLM.Model)
	}

	return &Engine{
		Config: cfg,
		Logger: logger,
		Store:  st,
		Files:  files,
		LLM:    llm,
	}, nil
}

// IngestDocument stores an uploaded file, extracts its page text, chunks
// every page and persists the chunks with precomputed keyword vectors.
func (e *Engine) IngestDocument(ctx context.Context, filename string, content []byte, uploadedBy string) (*store.Document, error) {
	fileType, err := extract.TypeFromFilename(filename)
	if err != nil {
		return nil, err
	}
	extractor, err := extract.ForType(fileType)
	if err != nil {
		return nil, err
	}

	docID := uuid.New().String()
	path, err := e.Files.Save(docID, filename, content)
	if err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	pages, err := extractor.Extract(ctx, path)
	if err != nil {
		e.Logger.WithError(err).WithField("filename", filename).Error("Extraction failed")
		pages = nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var chunks []retrieval.Chunk
	chunkIndex := 0
	for _, page := range pages {
		texts, err := retrieval.Split(page.Text, e.Config.Retrieval.ChunkSize, e.Config.Retrieval.ChunkOverlap)
		if err != nil {
			return nil, fmt.Errorf("chunking page %d: %w", page.Number, err)
		}
		for _, text := range texts {
			pageNum := page.Number
			chunks = append(chunks, retrieval.Chunk{
				ChunkID:    uuid.New().String(),
				DocumentID: docID,
				Text:       text,
				Filename:   filename,
				FileType:   fileType,
				PageNumber: &pageNum,
				Timestamp:  page.Timestamp,
				Keywords:   retrieval.Keywords(text),
				ChunkIndex: chunkIndex,
				CreatedAt:  now,
			})
			chunkIndex++
		}
	}

	status := store.StatusIndexed
	if len(chunks) == 0 {
		status = store.StatusEmpty
	}
	doc := &store.Document{
		ID:          docID,
		Filename:    filename,
		FileType:    fileType,
		FileSize:    int64(len(content)),
		TotalChunks: len(chunks),
		Status:      status,
		UploadedBy:  uploadedBy,
		UploadedAt:  now,
	}

	// The chunks table references documents, so the owning record goes
	// in first.
	if err := e.Store.InsertDocument(ctx, doc); err != nil {
		return nil, err
	}
	if err := e.Store.InsertChunks(ctx, chunks); err != nil {
		return nil, err
	}

	e.Logger.WithFields(logrus.Fields{
		"document_id": docID,
		"filename":    filename,
		"chunks":      len(chunks),
	}).Info("Document ingested")

	return doc, nil
}

// Query runs the full retrieval-augmented flow: vectorize the query,
// rank the stored corpus, assemble the citation context, ask the
// generator, and log the result. When the generator is unavailable the
// answer degrades to the citation-only fallback.
func (e *Engine) Query(ctx context.Context, query string, topK int, userID string) (*QueryResult, error) {
	if topK <= 0 {
		topK = e.Config.Retrieval.DefaultTopK
	}

	queryVec := retrieval.Keywords(query)
	chunks, err := e.Store.AllChunks(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := retrieval.Rank(queryVec, chunks, topK)
	if err != nil {
		return nil, err
	}
	contextBlock, citations := retrieval.Assemble(ranked)

	answer, err := e.LLM.Generate(ctx, provider.BuildPrompt(query, contextBlock))
	if err != nil {
		e.Logger.WithError(err).Warn("Answer generation failed, falling back to citations")
		answer = retrieval.FallbackAnswer(citations)
	}

	rec := &store.QueryRecord{
		ID:        uuid.New().String(),
		Query:     query,
		Answer:    answer,
		Citations: citations,
		UserID:    userID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := e.Store.InsertQuery(ctx, rec); err != nil {
		return nil, err
	}

	return &QueryResult{
		Answer:    answer,
		Citations: citations,
		QueryID:   rec.ID,
	}, nil
}

// DeleteDocument removes the document record, its chunks and the stored
// original file.
func (e *Engine) DeleteDocument(ctx context.Context, id string) error {
	if err := e.Store.DeleteDocument(ctx, id); err != nil {
		return err
	}
	if err := e.Files.Delete(id); err != nil {
		e.Logger.WithError(err).WithField("document_id", id).Error("Failed to remove stored file")
	}
	return nil
}

// ListDocuments returns all document records, newest first.
func (e *Engine) ListDocuments(ctx context.Context) ([]store.Document, error) {
	return e.Store.ListDocuments(ctx)
}

// History returns recent query log entries.
func (e *Engine) History(ctx context.Context, limit int) ([]store.QueryRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return e.Store.RecentQueries(ctx, limit)
}

// RebuildIndex recomputes every chunk's keyword vector from its text.
// Chunks are rewritten one at a time; queries running alongside may see
// a mix of old and new vectors until the rebuild finishes.
func (e *Engine) RebuildIndex(ctx context.Context) (int, error) {
	chunks, err := e.Store.AllChunks(ctx)
	if err != nil {
		return 0, err
	}

	rebuilt := 0
	for _, chunk := range chunks {
		if err := e.Store.UpdateChunkKeywords(ctx, chunk.ChunkID, retrieval.Keywords(chunk.Text)); err != nil {
			return rebuilt, err
		}
		rebuilt++
	}

	e.Logger.WithField("chunks", rebuilt).Info("Keyword index rebuilt")
	return rebuilt, nil
}

// Status returns stored record totals.
func (e *Engine) Status(ctx context.Context) (*store.Counts, error) {
	return e.Store.CountAll(ctx)
}
