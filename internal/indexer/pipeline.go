// Package indexer ingests documents: it flattens markup, chunks text on
// sentence boundaries, prices the upload against prior versions, and
// writes the chunks to the vector store and lexical index.
package indexer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"leo-engine/internal/billing"
	"leo-engine/internal/chunker"
	"leo-engine/internal/contextutil"
	"leo-engine/internal/lexical"
	"leo-engine/internal/llm"
	"leo-engine/internal/service"
	"leo-engine/internal/storage"
	"leo-engine/internal/usage"
	"leo-engine/internal/vectorstore"
)

// embedBatchSize bounds the number of chunk texts sent to the embeddings
// API per request.
const embedBatchSize = 64

// IngestRequest is one document upload. ContentType is optional; when
// empty the filename extension decides whether markdown flattening runs.
type IngestRequest struct {
	AgentID     string
	Filename    string
	ContentType string
	Content     []byte
}

// IngestResult reports what a completed ingestion did and cost.
type IngestResult struct {
	Filename         string  `json:"filename"`
	ChunkCount       int     `json:"chunk_count"`
	PUCharged        float64 `json:"pu_charged"`
	ChargePercentage int     `json:"charge_percentage"`
	Reason           string  `json:"reason"`
	ContentHash      string  `json:"content_hash"`
	Duplicate        bool    `json:"duplicate"`
}

// Pipeline wires the full ingestion path. The lexical index is optional;
// when nil, documents are only searchable semantically.
type Pipeline struct {
	chunker    *chunker.Chunker
	calculator *billing.Calculator
	versions   storage.FileVersionStore
	balances   storage.BalanceStore
	embedder   llm.Embedder
	store      vectorstore.VectorStore
	collection string
	lexical    lexical.Index
	usage      *usage.Recorder
	flattener  *markdownFlattener
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	ch *chunker.Chunker,
	calculator *billing.Calculator,
	versions storage.FileVersionStore,
	balances storage.BalanceStore,
	embedder llm.Embedder,
	store vectorstore.VectorStore,
	collection string,
	lex lexical.Index,
	recorder *usage.Recorder,
) *Pipeline {
	return &Pipeline{
		chunker:    ch,
		calculator: calculator,
		versions:   versions,
		balances:   balances,
		embedder:   embedder,
		store:      store,
		collection: collection,
		lexical:    lex,
		usage:      recorder,
		flattener:  newMarkdownFlattener(),
	}
}

// Ingest runs the full pipeline for one document. Order matters: the
// charge is computed and deducted before any index writes, and the
// version record is persisted last so a partial failure is re-runnable
// (re-upserting the same deterministic point IDs is idempotent).
func (p *Pipeline) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text := string(req.Content)
	if req.ContentType == "text/markdown" || isMarkdownFile(req.Filename) {
		text = p.flattener.Flatten(req.Content)
	}

	chunks := p.chunker.Chunk(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document %q has no indexable content", req.Filename)
	}

	charge, err := p.calculator.CalculateCharge(ctx, req.AgentID, req.Filename, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate charge: %w", err)
	}

	if charge.Reason == billing.ReasonDuplicate {
		return &IngestResult{
			Filename:         req.Filename,
			ChunkCount:       len(chunks),
			PUCharged:        0,
			ChargePercentage: 0,
			Reason:           charge.Reason,
			ContentHash:      charge.ContentHash,
			Duplicate:        true,
		}, nil
	}

	if charge.PUCost > 0 {
		if err := p.balances.Deduct(ctx, req.AgentID, charge.PUCost); err != nil {
			return nil, fmt.Errorf("failed to charge agent: %w", err)
		}
	}

	if charge.Previous != nil {
		if err := p.removeVersion(ctx, req.AgentID, req.Filename, charge.Previous.ChunkCount); err != nil {
			return nil, fmt.Errorf("failed to remove previous version: %w", err)
		}
	}

	if err := p.indexChunks(ctx, req.AgentID, req.Filename, chunks); err != nil {
		return nil, fmt.Errorf("failed to index document: %w", err)
	}

	record := &storage.FileVersionRecord{
		AgentID:          req.AgentID,
		Filename:         req.Filename,
		ContentHash:      charge.ContentHash,
		FileSize:         int64(charge.ContentLength),
		ChunkCount:       len(chunks),
		PUCharged:        charge.PUCost,
		ChargePercentage: charge.ChargePercentage,
	}
	if charge.Previous != nil {
		record.PreviousVersionHash = charge.Previous.ContentHash
	}
	if err := p.versions.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record file version: %w", err)
	}

	logger.Info("document ingested",
		"agent_id", req.AgentID,
		"filename", req.Filename,
		"chunks", len(chunks),
		"pu_charged", charge.PUCost,
		"reason", charge.Reason)

	p.usage.Report(ctx, usage.Record{
		AgentID:     req.AgentID,
		RequestType: usage.RequestTypeDocumentProcessing,
		TotalTokens: charge.ContentLength / 4,
		Cost:        charge.PUCost,
	})

	return &IngestResult{
		Filename:         req.Filename,
		ChunkCount:       len(chunks),
		PUCharged:        charge.PUCost,
		ChargePercentage: charge.ChargePercentage,
		Reason:           charge.Reason,
		ContentHash:      charge.ContentHash,
	}, nil
}

// indexChunks embeds chunk texts in batches and writes them to both
// indexes. Point IDs are deterministic per (agent, filename, index) so a
// new version of a file overwrites the old points it shares indexes with.
func (p *Pipeline) indexChunks(ctx context.Context, agentID, filename string, chunks []chunker.Chunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, ch := range batch {
			texts[i] = ch.Text
		}

		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: failed to embed chunks: %v", service.ErrExternalService, err)
		}

		points := make([]vectorstore.Point, len(batch))
		docs := make([]lexical.Document, len(batch))
		for i, ch := range batch {
			id := chunkPointID(agentID, filename, ch.Index)
			points[i] = vectorstore.Point{
				ID:  id,
				Vec: vectors[i],
				Meta: map[string]any{
					"agent_id":    agentID,
					"filename":    filename,
					"chunk_index": ch.Index,
					"content":     ch.Text,
				},
			}
			docs[i] = lexical.Document{
				ID:         id,
				AgentID:    agentID,
				Filename:   filename,
				ChunkIndex: ch.Index,
				Content:    ch.Text,
			}
		}

		if err := p.store.Upsert(ctx, p.collection, points); err != nil {
			return fmt.Errorf("failed to upsert vectors: %w", err)
		}
		if p.lexical != nil {
			if err := p.lexical.IndexDocuments(ctx, docs); err != nil {
				return fmt.Errorf("failed to index keywords: %w", err)
			}
		}
	}
	return nil
}

// removeVersion deletes the points of the previous version of a file.
// chunkCount comes from the stored version record, so IDs beyond the new
// version's count are cleaned up rather than orphaned.
func (p *Pipeline) removeVersion(ctx context.Context, agentID, filename string, chunkCount int) error {
	if chunkCount <= 0 {
		return nil
	}
	ids := make([]string, chunkCount)
	for i := 0; i < chunkCount; i++ {
		ids[i] = chunkPointID(agentID, filename, i)
	}

	if err := p.store.Delete(ctx, p.collection, ids); err != nil {
		return fmt.Errorf("failed to delete vectors: %w", err)
	}
	if p.lexical != nil {
		if err := p.lexical.DeleteDocuments(ctx, ids); err != nil {
			return fmt.Errorf("failed to delete keyword documents: %w", err)
		}
	}
	return nil
}

// chunkPointID derives a stable UUID for a chunk from its identity.
func chunkPointID(agentID, filename string, index int) string {
	name := agentID + "/" + filename + "#" + strconv.Itoa(index)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
