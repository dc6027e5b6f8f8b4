package handlers

import (
	"encoding/json"
	"net/http"

	"leo-engine/internal/contextutil"
	"leo-engine/internal/retrieval"
	"leo-engine/internal/service"
)

// TurnHandler handles HTTP requests for conversational turns.
type TurnHandler struct {
	agentService service.AgentService
}

// NewTurnHandler creates a new TurnHandler.
func NewTurnHandler(agentService service.AgentService) *TurnHandler {
	return &TurnHandler{agentService: agentService}
}

// TurnRequest represents the HTTP request payload for a turn.
type TurnRequest struct {
	AgentID    string `json:"agent_id"`
	SessionKey string `json:"session_key"`
	Message    string `json:"message"`
}

// TurnResponse represents the HTTP response payload for a turn.
type TurnResponse struct {
	Reply   string             `json:"reply"`
	Sources []retrieval.Result `json:"sources"`
}

// ServeHTTP handles POST /api/turn.
func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcResp, err := h.agentService.Turn(ctx, service.TurnRequest{
		AgentID:    req.AgentID,
		SessionKey: req.SessionKey,
		Message:    req.Message,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process turn")
		return
	}

	resp := TurnResponse{
		Reply:   svcResp.Reply,
		Sources: svcResp.Sources,
	}
	if resp.Sources == nil {
		resp.Sources = []retrieval.Result{}
	}
	writeJSON(w, http.StatusOK, resp)
}
