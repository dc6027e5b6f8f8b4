package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"leo-engine/internal/handlers"
	"leo-engine/internal/storage"
)

type stubCollectionChecker struct {
	exists bool
	err    error
}

func (s *stubCollectionChecker) CollectionExists(ctx context.Context, name string) (bool, error) {
	return s.exists, s.err
}

func healthTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHealthHandler_Healthy(t *testing.T) {
	h := handlers.NewHealthHandler(&stubCollectionChecker{exists: true}, healthTestDB(t), "knowledge")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp handlers.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Checks["vector_store"] != "ok" || resp.Checks["database"] != "ok" {
		t.Errorf("checks = %v", resp.Checks)
	}
	if len(resp.Issues) != 0 {
		t.Errorf("issues = %v, want none", resp.Issues)
	}
}

func TestHealthHandler_VectorStoreDown(t *testing.T) {
	h := handlers.NewHealthHandler(&stubCollectionChecker{err: errors.New("connection refused")}, healthTestDB(t), "knowledge")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var resp handlers.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", resp.Status)
	}
	if resp.Checks["vector_store"] != "error" {
		t.Errorf("vector_store check = %q, want error", resp.Checks["vector_store"])
	}
	if resp.Checks["database"] != "ok" {
		t.Errorf("database check = %q, want ok", resp.Checks["database"])
	}
}

func TestHealthHandler_MissingCollection(t *testing.T) {
	h := handlers.NewHealthHandler(&stubCollectionChecker{exists: false}, healthTestDB(t), "knowledge")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
