package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leo-engine/internal/contextutil"
	"leo-engine/internal/storage"
)

// BalanceHandler exposes agent processing-unit balances.
type BalanceHandler struct {
	balances storage.BalanceStore
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balances storage.BalanceStore) *BalanceHandler {
	return &BalanceHandler{balances: balances}
}

// BalanceResponse represents an agent's balance.
type BalanceResponse struct {
	AgentID string  `json:"agent_id"`
	Balance float64 `json:"balance"`
}

// CreditRequest represents the HTTP request payload for a credit top-up.
type CreditRequest struct {
	Amount float64 `json:"amount"`
}

// Get handles GET /api/agents/{agentID}/balance.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agentID := chi.URLParam(r, "agentID")
	if agentID == "" {
		writeError(w, http.StatusBadRequest, "agent id is required")
		return
	}

	balance, err := h.balances.Get(ctx, agentID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load balance")
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{AgentID: agentID, Balance: balance})
}

// Credit handles POST /api/agents/{agentID}/credits.
func (h *BalanceHandler) Credit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	agentID := chi.URLParam(r, "agentID")
	if agentID == "" {
		writeError(w, http.StatusBadRequest, "agent id is required")
		return
	}

	var req CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if err := h.balances.Credit(ctx, agentID, req.Amount); err != nil {
		handleServiceError(w, ctx, err, "Failed to credit balance")
		return
	}

	balance, err := h.balances.Get(ctx, agentID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load balance")
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{AgentID: agentID, Balance: balance})
}
