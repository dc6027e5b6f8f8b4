package lexical

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
)

// BleveIndex implements Index using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index
// is reused so unchanged documents are not re-indexed across restarts; if
// the mapping changes in code, remove the index directory to force a rebuild.
func NewBleveIndex(path string) (*BleveIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open lexical index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	// Standard analyzer (lowercase + tokenize, no stemming) for content so
	// query terms match exact words.
	contentMapping := bleve.NewTextFieldMapping()
	contentMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("content", contentMapping)

	// agent_id and filename are filter fields, never tokenized.
	idMapping := bleve.NewTextFieldMapping()
	idMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("agent_id", idMapping)
	docMapping.AddFieldMappingsAt("filename", idMapping)

	chunkIndexMapping := bleve.NewNumericFieldMapping()
	docMapping.AddFieldMappingsAt("chunk_index", chunkIndexMapping)

	im.AddDocumentMapping("chunk", docMapping)
	im.DefaultType = "chunk"
	im.DefaultMapping = docMapping

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create lexical index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// IndexDocuments adds or replaces documents by ID.
func (b *BleveIndex) IndexDocuments(ctx context.Context, docs []Document) error {
	batch := b.index.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("failed to batch document %s: %w", doc.ID, err)
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index documents: %w", err)
	}
	return nil
}

// DeleteDocuments removes documents by ID.
func (b *BleveIndex) DeleteDocuments(ctx context.Context, ids []string) error {
	batch := b.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// RankSearch runs a match query over content, restricted to the agent's
// documents, and returns up to limit hits with 0-based ranks.
func (b *BleveIndex) RankSearch(ctx context.Context, agentID, query string, limit int) ([]Hit, error) {
	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetField("content")

	agentQuery := bleve.NewTermQuery(agentID)
	agentQuery.SetField("agent_id")

	conjunction := bleve.NewConjunctionQuery(matchQuery, agentQuery)

	req := bleve.NewSearchRequestOptions(conjunction, limit, 0, false)
	req.Fields = []string{"content", "filename", "chunk_index", "agent_id"}

	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lexical search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for i, hit := range res.Hits {
		content, _ := hit.Fields["content"].(string)
		meta := map[string]any{
			"chunk_id": hit.ID,
		}
		if filename, ok := hit.Fields["filename"].(string); ok {
			meta["filename"] = filename
		}
		if chunkIndex, ok := hit.Fields["chunk_index"].(float64); ok {
			meta["chunk_index"] = int(chunkIndex)
		}
		hits = append(hits, Hit{
			Content:  content,
			Metadata: meta,
			Rank:     i,
			Score:    hit.Score,
		})
	}
	return hits, nil
}

// Close releases the underlying index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
