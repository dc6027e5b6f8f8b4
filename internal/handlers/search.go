package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"leo-engine/internal/contextutil"
	"leo-engine/internal/retrieval"
	"leo-engine/internal/service"
)

// defaultSearchLimit is used when the request omits a limit.
const defaultSearchLimit = 10

// SearchHandler handles HTTP requests for hybrid knowledge search.
type SearchHandler struct {
	retriever service.Retriever
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(retriever service.Retriever) *SearchHandler {
	return &SearchHandler{retriever: retriever}
}

// SearchRequest represents the HTTP request payload for search.
type SearchRequest struct {
	AgentID string `json:"agent_id"`
	Query   string `json:"query"`
	Limit   int    `json:"limit"`
}

// SearchResponse represents the HTTP response payload for search.
type SearchResponse struct {
	Results []retrieval.Result `json:"results"`
}

// ServeHTTP handles POST /api/search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AgentID == "" {
		writeError(w, http.StatusBadRequest, "agent_id is required")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultSearchLimit
	}

	results, err := h.retriever.Search(ctx, req.AgentID, req.Query, req.Limit)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search")
		return
	}
	if results == nil {
		results = []retrieval.Result{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
