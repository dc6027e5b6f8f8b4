package usage_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"leo-engine/internal/usage"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReport_PostsRecord(t *testing.T) {
	var got usage.Record
	received := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		received = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := usage.NewRecorder(server.URL)
	if !r.Enabled() {
		t.Fatal("Enabled() = false with a webhook URL")
	}

	r.Report(context.Background(), usage.Record{
		AgentID:     "agent-1",
		RequestType: usage.RequestTypeAgentChat,
		TotalTokens: 120,
	})

	if !received {
		t.Fatal("webhook was never called")
	}
	if got.AgentID != "agent-1" {
		t.Errorf("agent_id = %q, want agent-1", got.AgentID)
	}
	if got.RequestType != usage.RequestTypeAgentChat {
		t.Errorf("request_type = %q, want %q", got.RequestType, usage.RequestTypeAgentChat)
	}
	if got.TotalTokens != 120 {
		t.Errorf("total_tokens = %d, want 120", got.TotalTokens)
	}
	if got.Timestamp == "" {
		t.Error("timestamp was not filled in")
	}
}

func TestReport_DisabledIsNoop(t *testing.T) {
	r := usage.NewRecorder("")
	if r.Enabled() {
		t.Error("Enabled() = true with empty webhook URL")
	}
	// Must not panic or attempt any request.
	r.Report(context.Background(), usage.Record{RequestType: usage.RequestTypeOther})

	var nilRecorder *usage.Recorder
	if nilRecorder.Enabled() {
		t.Error("Enabled() = true on nil recorder")
	}
}

func TestReport_WebhookErrorIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "billing backend down", http.StatusInternalServerError)
	}))
	defer server.Close()

	r := usage.NewRecorder(server.URL)
	// Report must not panic and has no error to return.
	r.Report(context.Background(), usage.Record{RequestType: usage.RequestTypeDocumentProcessing})
}
