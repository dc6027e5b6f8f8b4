package lexical_test

import (
	"context"
	"path/filepath"
	"testing"

	"leo-engine/internal/lexical"
)

func newTestIndex(t *testing.T) *lexical.BleveIndex {
	t.Helper()
	idx, err := lexical.NewBleveIndex(filepath.Join(t.TempDir(), "lexical.bleve"))
	if err != nil {
		t.Fatalf("failed to create index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func seedDocuments(t *testing.T, idx *lexical.BleveIndex) {
	t.Helper()
	docs := []lexical.Document{
		{ID: "a1-deploy-0", AgentID: "agent-1", Filename: "deploy.md", ChunkIndex: 0, Content: "Deploy the service with the release pipeline."},
		{ID: "a1-deploy-1", AgentID: "agent-1", Filename: "deploy.md", ChunkIndex: 1, Content: "Rollback uses the previous release artifact."},
		{ID: "a2-deploy-0", AgentID: "agent-2", Filename: "deploy.md", ChunkIndex: 0, Content: "Deploy the service to the staging cluster."},
	}
	if err := idx.IndexDocuments(context.Background(), docs); err != nil {
		t.Fatalf("IndexDocuments() error: %v", err)
	}
}

func TestRankSearch_FiltersByAgent(t *testing.T) {
	idx := newTestIndex(t)
	seedDocuments(t, idx)

	hits, err := idx.RankSearch(context.Background(), "agent-1", "deploy release", 10)
	if err != nil {
		t.Fatalf("RankSearch() error: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("got no hits, want matches for agent-1")
	}
	for _, hit := range hits {
		if hit.Metadata["filename"] != "deploy.md" {
			t.Errorf("hit metadata filename = %v, want deploy.md", hit.Metadata["filename"])
		}
		id, _ := hit.Metadata["chunk_id"].(string)
		if id == "a2-deploy-0" {
			t.Errorf("hit %q belongs to another agent", id)
		}
	}
	for i, hit := range hits {
		if hit.Rank != i {
			t.Errorf("hit %d has rank %d, want %d", i, hit.Rank, i)
		}
	}
}

func TestRankSearch_NoMatches(t *testing.T) {
	idx := newTestIndex(t)
	seedDocuments(t, idx)

	hits, err := idx.RankSearch(context.Background(), "agent-1", "zeppelin", 10)
	if err != nil {
		t.Fatalf("RankSearch() error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits, want 0", len(hits))
	}
}

func TestDeleteDocuments(t *testing.T) {
	idx := newTestIndex(t)
	seedDocuments(t, idx)
	ctx := context.Background()

	if err := idx.DeleteDocuments(ctx, []string{"a1-deploy-0", "never-indexed"}); err != nil {
		t.Fatalf("DeleteDocuments() error: %v", err)
	}

	hits, err := idx.RankSearch(ctx, "agent-1", "pipeline", 10)
	if err != nil {
		t.Fatalf("RankSearch() error: %v", err)
	}
	for _, hit := range hits {
		if hit.Metadata["chunk_id"] == "a1-deploy-0" {
			t.Error("deleted document still returned by search")
		}
	}
}

func TestIndexDocuments_ReplacesByID(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	doc := lexical.Document{ID: "a1-notes-0", AgentID: "agent-1", Filename: "notes.md", ChunkIndex: 0, Content: "original wording"}
	if err := idx.IndexDocuments(ctx, []lexical.Document{doc}); err != nil {
		t.Fatalf("IndexDocuments() error: %v", err)
	}

	doc.Content = "replacement wording"
	if err := idx.IndexDocuments(ctx, []lexical.Document{doc}); err != nil {
		t.Fatalf("IndexDocuments() error: %v", err)
	}

	hits, err := idx.RankSearch(ctx, "agent-1", "original", 10)
	if err != nil {
		t.Fatalf("RankSearch() error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("stale content still indexed: %v", hits)
	}

	hits, err = idx.RankSearch(ctx, "agent-1", "replacement", 10)
	if err != nil {
		t.Fatalf("RankSearch() error: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("got %d hits for replacement content, want 1", len(hits))
	}
}
