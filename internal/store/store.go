// Package store persists documents, chunks and query records in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docvault/backend/internal/retrieval"
)

// Document is the owning record for a set of chunks.
type Document struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	TotalChunks int    `json:"total_chunks"`
	Status      string `json:"status"`
	UploadedBy  string `json:"uploaded_by"`
	UploadedAt  string `json:"uploaded_at"`
}

// Document statuses.
const (
	StatusIndexed = "indexed"
	StatusEmpty   = "empty"
)

// QueryRecord is the persisted log entry for one answered query.
type QueryRecord struct {
	ID        string               `json:"id"`
	Query     string               `json:"query"`
	Answer    string               `json:"answer"`
	Citations []retrieval.Citation `json:"citations"`
	UserID    string               `json:"user_id"`
	CreatedAt string               `json:"created_at"`
}

// Counts summarizes stored record totals.
type Counts struct {
	Documents int64 `json:"total_documents"`
	Chunks    int64 `json:"total_chunks"`
	Queries   int64 `json:"total_queries"`
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id           TEXT PRIMARY KEY,
	filename     TEXT NOT NULL,
	file_type    TEXT NOT NULL,
	file_size    INTEGER NOT NULL,
	total_chunks INTEGER NOT NULL,
	status       TEXT NOT NULL,
	uploaded_by  TEXT NOT NULL,
	uploaded_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chunks (
	chunk_id    TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	text        TEXT NOT NULL,
	filename    TEXT NOT NULL,
	file_type   TEXT NOT NULL,
	page_number INTEGER,
	timestamp   TEXT,
	keywords    TEXT NOT NULL,
	chunk_index INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);

CREATE TABLE IF NOT EXISTS queries (
	id         TEXT PRIMARY KEY,
	query      TEXT NOT NULL,
	answer     TEXT NOT NULL,
	citations  TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// Store is the SQLite-backed document/chunk/query store.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates (or opens) the database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docvault.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InsertDocument persists a document record.
func (s *Store) InsertDocument(ctx context.Context, doc *Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, file_type, file_size, total_chunks, status, uploaded_by, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.FileType, doc.FileSize, doc.TotalChunks, doc.Status, doc.UploadedBy, doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// GetDocument loads one document by id. Missing documents return
// sql.ErrNoRows wrapped.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, file_type, file_size, total_chunks, status, uploaded_by, uploaded_at
		FROM documents WHERE id = ?`, id)

	var doc Document
	err := row.Scan(&doc.ID, &doc.Filename, &doc.FileType, &doc.FileSize,
		&doc.TotalChunks, &doc.Status, &doc.UploadedBy, &doc.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", id, err)
	}
	return &doc, nil
}

// ListDocuments returns all documents, newest upload first.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, file_type, file_size, total_chunks, status, uploaded_by, uploaded_at
		FROM documents ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.FileType, &doc.FileSize,
			&doc.TotalChunks, &doc.Status, &doc.UploadedBy, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document and all of its chunks in one
// transaction. Returns sql.ErrNoRows (wrapped) when the id is unknown.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting delete: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document %s: %w", id, sql.ErrNoRows)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = ?`, id); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return tx.Commit()
}

// InsertChunks persists a batch of chunks in one transaction.
func (s *Store) InsertChunks(ctx context.Context, chunks []retrieval.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting chunk insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (chunk_id, document_id, text, filename, file_type, page_number, timestamp, keywords, chunk_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		keywords, err := json.Marshal(chunk.Keywords)
		if err != nil {
			return fmt.Errorf("encoding keywords: %w", err)
		}
		var page sql.NullInt64
		if chunk.PageNumber != nil {
			page = sql.NullInt64{Int64: int64(*chunk.PageNumber), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			chunk.ChunkID, chunk.DocumentID, chunk.Text, chunk.Filename, chunk.FileType,
			page, chunk.Timestamp, string(keywords), chunk.ChunkIndex, chunk.CreatedAt,
		); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ChunkID, err)
		}
	}
	return tx.Commit()
}

// AllChunks loads every stored chunk in insertion order. The retrieval
// ranker scans the full corpus; no filtering is pushed down.
func (s *Store) AllChunks(ctx context.Context) ([]retrieval.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chunk_id, document_id, text, filename, file_type, page_number, timestamp, keywords, chunk_index, created_at
		FROM chunks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}
	defer rows.Close()

	var chunks []retrieval.Chunk
	for rows.Next() {
		var chunk retrieval.Chunk
		var page sql.NullInt64
		var timestamp sql.NullString
		var keywords string
		if err := rows.Scan(&chunk.ChunkID, &chunk.DocumentID, &chunk.Text, &chunk.Filename,
			&chunk.FileType, &page, &timestamp, &keywords, &chunk.ChunkIndex, &chunk.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		if page.Valid {
			n := int(page.Int64)
			chunk.PageNumber = &n
		}
		chunk.Timestamp = timestamp.String
		if err := json.Unmarshal([]byte(keywords), &chunk.Keywords); err != nil {
			return nil, fmt.Errorf("decoding keywords for %s: %w", chunk.ChunkID, err)
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// UpdateChunkKeywords overwrites one chunk's keyword vector. Used by the
// index rebuild; each chunk is rewritten independently, so concurrent
// queries may observe a mix of old and new vectors while a rebuild runs.
func (s *Store) UpdateChunkKeywords(ctx context.Context, chunkID string, keywords map[string]int) error {
	encoded, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `UPDATE chunks SET keywords = ? WHERE chunk_id = ?`, string(encoded), chunkID)
	if err != nil {
		return fmt.Errorf("updating keywords for %s: %w", chunkID, err)
	}
	return nil
}

// InsertQuery persists a query log entry.
func (s *Store) InsertQuery(ctx context.Context, rec *QueryRecord) error {
	citations, err := json.Marshal(rec.Citations)
	if err != nil {
		return fmt.Errorf("encoding citations: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO queries (id, query, answer, citations, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Query, rec.Answer, string(citations), rec.UserID, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting query: %w", err)
	}
	return nil
}

// RecentQueries returns the latest query records, newest first.
func (s *Store) RecentQueries(ctx context.Context, limit int) ([]QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, answer, citations, user_id, created_at
		FROM queries ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing queries: %w", err)
	}
	defer rows.Close()

	var records []QueryRecord
	for rows.Next() {
		var rec QueryRecord
		var citations string
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Answer, &citations, &rec.UserID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning query: %w", err)
		}
		if err := json.Unmarshal([]byte(citations), &rec.Citations); err != nil {
			return nil, fmt.Errorf("decoding citations for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountAll returns record totals for the status endpoint.
func (s *Store) CountAll(ctx context.Context) (*Counts, error) {
	var counts Counts
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM documents),
			(SELECT COUNT(*) FROM chunks),
			(SELECT COUNT(*) FROM queries)`)
	if err := row.Scan(&counts.Documents, &counts.Chunks, &counts.Queries); err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	return &counts, nil
}
