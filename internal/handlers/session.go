package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leo-engine/internal/service"
)

// SessionHandler exposes conversation memory for a session.
type SessionHandler struct {
	memory service.ConversationMemory
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(memory service.ConversationMemory) *SessionHandler {
	return &SessionHandler{memory: memory}
}

// SessionMessage is one stored turn in the HTTP response.
type SessionMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// SessionContextResponse represents the HTTP response for session context.
type SessionContextResponse struct {
	SessionKey string           `json:"session_key"`
	Summary    string           `json:"summary,omitempty"`
	Messages   []SessionMessage `json:"messages"`
}

// GetContext handles GET /api/sessions/{sessionKey}.
func (h *SessionHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionKey := chi.URLParam(r, "sessionKey")
	if sessionKey == "" {
		writeError(w, http.StatusBadRequest, "session key is required")
		return
	}

	memCtx, err := h.memory.GetContext(ctx, sessionKey)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load session")
		return
	}

	resp := SessionContextResponse{
		SessionKey: sessionKey,
		Messages:   make([]SessionMessage, 0, len(memCtx.RecentMessages)),
	}
	if memCtx.Summary != nil {
		resp.Summary = memCtx.Summary.Summary
	}
	for _, msg := range memCtx.RecentMessages {
		resp.Messages = append(resp.Messages, SessionMessage{
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Clear handles DELETE /api/sessions/{sessionKey}.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionKey := chi.URLParam(r, "sessionKey")
	if sessionKey == "" {
		writeError(w, http.StatusBadRequest, "session key is required")
		return
	}

	if err := h.memory.ClearHistory(ctx, sessionKey); err != nil {
		handleServiceError(w, ctx, err, "Failed to clear session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
