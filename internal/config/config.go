package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the document service
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Retrieval RetrievalConfig
	LLM       LLMConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string
	MaxUploadBytes int64
}

// StorageConfig holds database and upload directory configuration
type StorageConfig struct {
	DataDir   string
	UploadDir string
}

// RetrievalConfig holds chunking and ranking parameters
type RetrievalConfig struct {
	ChunkSize    int
	ChunkOverlap int
	DefaultTopK  int
}

type LLMConfig struct {
	Provider string
	BaseURL  string
	Model    string
	APIKey   string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           GetStringEnv("SERVER_ADDR", ":8080"),
			MaxUploadBytes: int64(GetIntEnv("SERVER_MAX_UPLOAD_BYTES", 50<<20)),
		},
		Storage: StorageConfig{
			DataDir:   GetStringEnv("STORAGE_DATA_DIR", "./data"),
			UploadDir: GetStringEnv("STORAGE_UPLOAD_DIR", "./data/uploads"),
		},
		Retrieval: RetrievalConfig{
			ChunkSize:    GetIntEnv("RETRIEVAL_CHUNK_SIZE", 600),
			ChunkOverlap: GetIntEnv("RETRIEVAL_CHUNK_OVERLAP", 100),
			DefaultTopK:  GetIntEnv("RETRIEVAL_DEFAULT_TOP_K", 5),
		},
		LLM: LLMConfig{
			Provider: GetStringEnv("LLM_PROVIDER", "ollama"),
			BaseURL:  GetStringEnv("LLM_BASE_URL", ""),
			Model:    GetStringEnv("LLM_MODEL", "qwen3:1.7b"),
			APIKey:   GetStringEnv("LLM_API_KEY", ""),
		},
	}
}

// Validate rejects configurations the retrieval core would only be able
// to handle by degrading, so bad deployments fail at startup instead.
func (c *Config) Validate() error {
	if c.Retrieval.ChunkSize <= 0 {
		return fmt.Errorf("retrieval chunk size must be positive, got %d", c.Retrieval.ChunkSize)
	}
	if c.Retrieval.ChunkOverlap < 0 {
		return fmt.Errorf("retrieval chunk overlap must not be negative, got %d", c.Retrieval.ChunkOverlap)
	}
	if c.Retrieval.ChunkOverlap >= c.Retrieval.ChunkSize {
		return fmt.Errorf("retrieval chunk overlap (%d) must be smaller than chunk size (%d)",
			c.Retrieval.ChunkOverlap, c.Retrieval.ChunkSize)
	}
	if c.Retrieval.DefaultTopK <= 0 {
		return fmt.Errorf("retrieval default top_k must be positive, got %d", c.Retrieval.DefaultTopK)
	}
	return nil
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
