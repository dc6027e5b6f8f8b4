package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"leo-engine/internal/handlers"
	storagemocks "leo-engine/internal/storage/mocks"
)

func balanceRouter(h *handlers.BalanceHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/agents/{agentID}/balance", h.Get)
	r.Post("/api/agents/{agentID}/credits", h.Credit)
	return r
}

func TestBalanceHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	balances := storagemocks.NewMockBalanceStore(ctrl)
	balances.EXPECT().
		Get(gomock.Any(), "agent-1").
		Return(73.5, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/agents/agent-1/balance", nil)
	rec := httptest.NewRecorder()
	balanceRouter(handlers.NewBalanceHandler(balances)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp handlers.BalanceResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AgentID != "agent-1" || resp.Balance != 73.5 {
		t.Errorf("response = %+v", resp)
	}
}

func TestBalanceHandler_Credit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	balances := storagemocks.NewMockBalanceStore(ctrl)
	gomock.InOrder(
		balances.EXPECT().Credit(gomock.Any(), "agent-1", 25.0).Return(nil),
		balances.EXPECT().Get(gomock.Any(), "agent-1").Return(125.0, nil),
	)

	rec := postJSON(t, balanceRouter(handlers.NewBalanceHandler(balances)),
		"/api/agents/agent-1/credits", handlers.CreditRequest{Amount: 25})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp handlers.BalanceResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Balance != 125.0 {
		t.Errorf("balance = %v, want 125", resp.Balance)
	}
}

func TestBalanceHandler_CreditRejectsNonPositiveAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	for _, amount := range []float64{0, -5} {
		rec := postJSON(t, balanceRouter(handlers.NewBalanceHandler(storagemocks.NewMockBalanceStore(ctrl))),
			"/api/agents/agent-1/credits", handlers.CreditRequest{Amount: amount})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("amount %v: status = %d, want 400", amount, rec.Code)
		}
	}
}
