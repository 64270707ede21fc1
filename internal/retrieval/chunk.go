package retrieval

// Chunk is a bounded span of document text stored together with its
// precomputed keyword vector. Chunks are created once at ingestion and
// only the Keywords field is ever rewritten (by an index rebuild).
type Chunk struct {
	ChunkID    string         `json:"chunk_id"`
	DocumentID string         `json:"document_id"`
	Text       string         `json:"text"`
	Filename   string         `json:"filename"`
	FileType   string         `json:"file_type"`
	PageNumber *int           `json:"page_number,omitempty"`
	Timestamp  string         `json:"timestamp,omitempty"`
	Keywords   map[string]int `json:"keywords"`
	ChunkIndex int            `json:"chunk_index"`
	CreatedAt  string         `json:"created_at"`
}

// RankedResult pairs a chunk with its similarity score for one query.
// It is transient: produced per query and never persisted beyond the
// query log entry built from it.
type RankedResult struct {
	Score float64
	Chunk Chunk
}
