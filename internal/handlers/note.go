package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"leo-engine/internal/contextutil"
	"leo-engine/internal/storage"
)

// NoteHandler manages pinned agent notes.
type NoteHandler struct {
	notes storage.NoteStore
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes storage.NoteStore) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// CreateNoteRequest represents the HTTP request payload for note creation.
type CreateNoteRequest struct {
	AgentID  string `json:"agent_id"`
	Content  string `json:"content"`
	Priority int    `json:"priority"`
}

// NoteResponse represents one note in HTTP responses.
type NoteResponse struct {
	ID        string `json:"id"`
	AgentID   string `json:"agent_id"`
	Content   string `json:"content"`
	Priority  int    `json:"priority"`
	CreatedAt string `json:"created_at"`
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AgentID == "" {
		writeError(w, http.StatusBadRequest, "agent_id is required")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	note := &storage.NoteRecord{
		AgentID:  req.AgentID,
		Content:  req.Content,
		Priority: req.Priority,
	}
	if err := h.notes.Insert(ctx, note); err != nil {
		handleServiceError(w, ctx, err, "Failed to create note")
		return
	}

	writeJSON(w, http.StatusCreated, noteResponse(*note))
}

// List handles GET /api/notes?agent_id=...
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agentID := r.URL.Query().Get("agent_id")
	if agentID == "" {
		writeError(w, http.StatusBadRequest, "agent_id is required")
		return
	}

	notes, err := h.notes.ListByAgent(ctx, agentID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list notes")
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		resp = append(resp, noteResponse(note))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/notes/{noteID}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID := chi.URLParam(r, "noteID")
	if noteID == "" {
		writeError(w, http.StatusBadRequest, "note id is required")
		return
	}

	if err := h.notes.Delete(ctx, noteID); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func noteResponse(note storage.NoteRecord) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		AgentID:   note.AgentID,
		Content:   note.Content,
		Priority:  note.Priority,
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
