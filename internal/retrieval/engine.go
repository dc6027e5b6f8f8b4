package retrieval

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"leo-engine/internal/contextutil"
	"leo-engine/internal/lexical"
	"leo-engine/internal/llm"
	"leo-engine/internal/vectorstore"
)

// rrfK is the rank smoothing constant for reciprocal rank fusion.
const rrfK = 60

// Result sources.
const (
	SourceVector = "vector"
	SourceFTS    = "fts"
	SourceBoth   = "both"
)

// Result is a fused retrieval hit.
type Result struct {
	Content  string                 `json:"content"`
	Score    float64                `json:"score"`
	Source   string                 `json:"source"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Engine runs hybrid retrieval: semantic search against the vector store
// and keyword search against the lexical index, fused with reciprocal
// rank fusion. The lexical searcher is optional; when nil the engine
// degrades to vector-only search.
type Engine struct {
	embedder   llm.Embedder
	store      vectorstore.VectorStore
	collection string
	lexical    lexical.Searcher
	timeout    time.Duration
}

// NewEngine creates a hybrid retrieval engine. lex may be nil.
func NewEngine(embedder llm.Embedder, store vectorstore.VectorStore, collection string, lex lexical.Searcher, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Engine{
		embedder:   embedder,
		store:      store,
		collection: collection,
		lexical:    lex,
		timeout:    timeout,
	}
}

// Search runs both sub-searches concurrently and fuses their rankings.
// A failed sub-search contributes an empty ranking instead of failing
// the whole query; only both failing yields no results, still with a
// nil error so the caller can degrade gracefully.
func (e *Engine) Search(ctx context.Context, agentID, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	logger := contextutil.LoggerFromContext(ctx)

	var (
		wg          sync.WaitGroup
		vectorHits  []vectorstore.SearchResult
		lexicalHits []lexical.Hit
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		subCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		hits, err := e.vectorSearch(subCtx, agentID, query, limit)
		if err != nil {
			logger.Warn("vector search failed", "error", err, "agent_id", agentID)
			return
		}
		vectorHits = hits
	}()

	if e.lexical != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			hits, err := e.lexical.RankSearch(subCtx, agentID, query, limit)
			if err != nil {
				logger.Warn("keyword search failed", "error", err, "agent_id", agentID)
				return
			}
			lexicalHits = hits
		}()
	}

	wg.Wait()

	results := e.fuse(vectorHits, lexicalHits, limit)
	logger.Debug("hybrid search complete",
		"agent_id", agentID,
		"vector_hits", len(vectorHits),
		"keyword_hits", len(lexicalHits),
		"fused", len(results))
	return results, nil
}

func (e *Engine) vectorSearch(ctx context.Context, agentID, query string, limit int) ([]vectorstore.SearchResult, error) {
	vectors, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	filters := map[string]any{"agent_id": agentID}
	hits, err := e.store.Search(ctx, e.collection, vectors[0], limit, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}
	return hits, nil
}

// fuse merges the two rankings with reciprocal rank fusion. Entries are
// keyed by content, so a chunk surfaced by both sub-searches accumulates
// both rank contributions and outranks single-source hits of the same
// standing.
func (e *Engine) fuse(vectorHits []vectorstore.SearchResult, lexicalHits []lexical.Hit, limit int) []Result {
	merged := make(map[string]*Result)

	for rank, hit := range vectorHits {
		content := contentFromPayload(hit.Meta)
		if content == "" {
			continue
		}
		// Repeated content within one ranking keeps its best rank.
		if _, ok := merged[content]; ok {
			continue
		}
		merged[content] = &Result{
			Content:  content,
			Score:    1.0 / float64(rrfK+rank+1),
			Source:   SourceVector,
			Metadata: hit.Meta,
		}
	}

	for rank, hit := range lexicalHits {
		score := 1.0 / float64(rrfK+rank+1)
		if existing, ok := merged[hit.Content]; ok {
			existing.Score += score
			existing.Source = SourceBoth
			continue
		}
		merged[hit.Content] = &Result{
			Content:  hit.Content,
			Score:    score,
			Source:   SourceFTS,
			Metadata: hit.Metadata,
		}
	}

	results := make([]Result, 0, len(merged))
	for _, r := range merged {
		results = append(results, *r)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Content < results[j].Content
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func contentFromPayload(payload map[string]interface{}) string {
	if payload == nil {
		return ""
	}
	if content, ok := payload["content"].(string); ok {
		return content
	}
	return ""
}
