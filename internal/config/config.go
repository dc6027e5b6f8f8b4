package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  string
	LogFormat string

	DBPath           string
	LexicalIndexPath string

	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string

	UsageWebhookURL string

	MaxChunkSize     int
	MinChunkSize     int
	OverlapSentences int

	MaxMessages  int
	KeepMessages int

	DefaultBalance float64
	SearchTimeout  time.Duration
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try current directory first, then walk up to find the project root.
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:   getEnv("API_PORT", "9000"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DBPath:           getEnv("DB_PATH", "./data/leo-engine.db"),
		LexicalIndexPath: getEnv("LEXICAL_INDEX_PATH", "./data/lexical.bleve"),

		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "knowledge"),

		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),

		UsageWebhookURL: getEnv("USAGE_WEBHOOK_URL", ""),
	}

	// Vector size must match the output size of the embeddings model.
	// If it changes, the Qdrant collection must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.MaxChunkSize, err = getEnvInt("MAX_CHUNK_SIZE", 800); err != nil {
		return nil, err
	}
	if cfg.MinChunkSize, err = getEnvInt("MIN_CHUNK_SIZE", 200); err != nil {
		return nil, err
	}
	if cfg.OverlapSentences, err = getEnvInt("OVERLAP_SENTENCES", 1); err != nil {
		return nil, err
	}
	if cfg.MaxMessages, err = getEnvInt("MAX_MESSAGES", 20); err != nil {
		return nil, err
	}
	if cfg.KeepMessages, err = getEnvInt("KEEP_MESSAGES", 10); err != nil {
		return nil, err
	}
	if cfg.KeepMessages >= cfg.MaxMessages {
		return nil, fmt.Errorf("KEEP_MESSAGES (%d) must be less than MAX_MESSAGES (%d)", cfg.KeepMessages, cfg.MaxMessages)
	}

	balanceStr := getEnv("DEFAULT_BALANCE", "100")
	cfg.DefaultBalance, err = strconv.ParseFloat(balanceStr, 64)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_BALANCE must be a valid number: %w", err)
	}

	timeoutStr := getEnv("SEARCH_TIMEOUT", "10s")
	cfg.SearchTimeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("SEARCH_TIMEOUT must be a valid duration: %w", err)
	}

	// Create the data directory if it doesn't exist.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
