package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"leo-engine/internal/contextutil"
	"leo-engine/internal/indexer"
)

// maxIngestBytes bounds the request body for document uploads.
const maxIngestBytes = 10 << 20 // 10 MiB

// IngestHandler handles HTTP requests for document ingestion.
type IngestHandler struct {
	pipeline *indexer.Pipeline
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(pipeline *indexer.Pipeline) *IngestHandler {
	return &IngestHandler{pipeline: pipeline}
}

// IngestRequest represents the HTTP request payload for ingestion.
type IngestRequest struct {
	AgentID     string `json:"agent_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// ServeHTTP handles POST /api/ingest.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxIngestBytes)

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AgentID == "" {
		writeError(w, http.StatusBadRequest, "agent_id is required")
		return
	}
	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, "filename is required")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	result, err := h.pipeline.Ingest(ctx, indexer.IngestRequest{
		AgentID:     req.AgentID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Content:     []byte(req.Content),
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to ingest document")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
