package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks leo-engine/internal/vectorstore VectorStore

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the vector store cannot be reached or
// rejects an operation. Handlers map it to 503.
var ErrUnavailable = errors.New("vector store unavailable")

// Point represents a vector point with metadata payload.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a nearest-neighbor hit. Meta carries the payload
// stored at upsert time, including the chunk content.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search with optional exact-match filters
	// (e.g. {"agent_id": "...", "filename": "..."}).
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error
}
