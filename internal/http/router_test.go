package http

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"leo-engine/internal/service/mocks"
	"leo-engine/internal/storage"
	storagemocks "leo-engine/internal/storage/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type okCollectionChecker struct{}

func (okCollectionChecker) CollectionExists(ctx context.Context, name string) (bool, error) {
	return true, nil
}

func routerTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRouter(t *testing.T, ctrl *gomock.Controller) (http.Handler, *mocks.MockConversationMemory) {
	t.Helper()
	mem := mocks.NewMockConversationMemory(ctrl)
	deps := &Deps{
		AgentService: mocks.NewMockAgentService(ctrl),
		Retriever:    mocks.NewMockRetriever(ctrl),
		Memory:       mem,
		Notes:        storagemocks.NewMockNoteStore(ctrl),
		Balances:     storagemocks.NewMockBalanceStore(ctrl),
		VectorStore:  okCollectionChecker{},
		DB:           routerTestDB(t),
		Collection:   "knowledge",
	}
	return NewRouter(deps), mem
}

func TestNewRouter_RoutesRegistered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, mem := newTestRouter(t, ctrl)

	mem.EXPECT().ClearHistory(gomock.Any(), "s1").Return(nil)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/health"},
		{http.MethodDelete, "/api/sessions/s1"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code == http.StatusNotFound || rec.Code == http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status = %d, route not registered", tt.method, tt.path, rec.Code)
		}
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodOptions, "/api/turn", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q, want the request origin", got)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("allow-methods header missing")
	}
}
