// Package lexical provides the full-text side of hybrid retrieval.
package lexical

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_searcher.go -package=mocks leo-engine/internal/lexical Searcher

import "context"

// Document is one chunk as indexed for keyword search.
type Document struct {
	ID         string `json:"id"`
	AgentID    string `json:"agent_id"`
	Filename   string `json:"filename"`
	ChunkIndex int    `json:"chunk_index"`
	Content    string `json:"content"`
}

// Hit is a ranked full-text match.
type Hit struct {
	Content  string
	Metadata map[string]any
	Rank     int
	Score    float64
}

// Searcher is the query-side interface consumed by retrieval fusion.
type Searcher interface {
	// RankSearch returns up to limit matches for the agent's documents,
	// best first, with 0-based ranks.
	RankSearch(ctx context.Context, agentID, query string, limit int) ([]Hit, error)
}

// Index is the full lexical index interface used by the ingestion pipeline.
type Index interface {
	Searcher
	// IndexDocuments adds or replaces documents by ID.
	IndexDocuments(ctx context.Context, docs []Document) error
	// DeleteDocuments removes documents by ID. Missing IDs are not an error.
	DeleteDocuments(ctx context.Context, ids []string) error
	// Close releases the underlying index.
	Close() error
}
