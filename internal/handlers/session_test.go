package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"leo-engine/internal/handlers"
	"leo-engine/internal/memory"
	"leo-engine/internal/service/mocks"
	"leo-engine/internal/storage"
)

func sessionRouter(h *handlers.SessionHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/sessions/{sessionKey}/context", h.GetContext)
	r.Delete("/api/sessions/{sessionKey}", h.Clear)
	return r
}

func TestSessionHandler_GetContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mem := mocks.NewMockConversationMemory(ctrl)
	mem.EXPECT().
		GetContext(gomock.Any(), "session-1").
		Return(&memory.Context{
			Summary: &storage.SummaryRecord{Summary: "talked about deployment"},
			RecentMessages: []storage.MessageRecord{
				{Role: memory.RoleHuman, Content: "hi", CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
				{Role: memory.RoleAI, Content: "hello", CreatedAt: time.Date(2026, 8, 1, 12, 0, 1, 0, time.UTC)},
			},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/session-1/context", nil)
	rec := httptest.NewRecorder()
	sessionRouter(handlers.NewSessionHandler(mem)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp handlers.SessionContextResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SessionKey != "session-1" {
		t.Errorf("session key = %q, want session-1", resp.SessionKey)
	}
	if resp.Summary != "talked about deployment" {
		t.Errorf("summary = %q", resp.Summary)
	}
	if len(resp.Messages) != 2 || resp.Messages[0].Content != "hi" {
		t.Errorf("messages = %+v", resp.Messages)
	}
	if _, err := time.Parse(time.RFC3339Nano, resp.Messages[0].CreatedAt); err != nil {
		t.Errorf("created_at %q is not RFC3339: %v", resp.Messages[0].CreatedAt, err)
	}
}

func TestSessionHandler_GetContextWithoutSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mem := mocks.NewMockConversationMemory(ctrl)
	mem.EXPECT().
		GetContext(gomock.Any(), "session-1").
		Return(&memory.Context{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/session-1/context", nil)
	rec := httptest.NewRecorder()
	sessionRouter(handlers.NewSessionHandler(mem)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var raw map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := raw["summary"]; ok {
		t.Error("summary field present without a compaction summary")
	}
}

func TestSessionHandler_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mem := mocks.NewMockConversationMemory(ctrl)
	mem.EXPECT().
		ClearHistory(gomock.Any(), "session-1").
		Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/session-1", nil)
	rec := httptest.NewRecorder()
	sessionRouter(handlers.NewSessionHandler(mem)).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
