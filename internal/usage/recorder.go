package usage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leo-engine/internal/contextutil"
)

// RequestType labels what kind of work consumed tokens.
type RequestType string

const (
	RequestTypeAgentChat          RequestType = "AGENT_CHAT"
	RequestTypeDocumentProcessing RequestType = "DOCUMENT_PROCESSING"
	RequestTypeSummarization      RequestType = "SUMMARIZATION"
	RequestTypeOther              RequestType = "OTHER"
)

// Record is a single usage event posted to the billing webhook.
type Record struct {
	AgentID          string      `json:"agent_id"`
	UserID           string      `json:"user_id,omitempty"`
	RequestType      RequestType `json:"request_type"`
	Model            string      `json:"model,omitempty"`
	PromptTokens     int         `json:"prompt_tokens"`
	CompletionTokens int         `json:"completion_tokens"`
	TotalTokens      int         `json:"total_tokens"`
	Cost             float64     `json:"cost"`
	Timestamp        string      `json:"timestamp"`
}

// Recorder posts usage records to an external billing webhook. A nil
// Recorder or an empty webhook URL disables reporting, so callers can
// record unconditionally.
type Recorder struct {
	webhookURL string
	client     *http.Client
}

// NewRecorder creates a usage recorder. webhookURL may be empty, in
// which case Report is a no-op.
func NewRecorder(webhookURL string) *Recorder {
	return &Recorder{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a webhook URL is configured.
func (r *Recorder) Enabled() bool {
	return r != nil && r.webhookURL != ""
}

// Report posts a usage record to the webhook. Failures are logged and
// swallowed: usage reporting must never fail the request that produced it.
func (r *Recorder) Report(ctx context.Context, rec Record) {
	if !r.Enabled() {
		return
	}
	logger := contextutil.LoggerFromContext(ctx)

	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if err := r.post(ctx, rec); err != nil {
		logger.Warn("failed to report usage", "error", err, "request_type", rec.RequestType)
		return
	}
	logger.Debug("reported usage", "request_type", rec.RequestType, "total_tokens", rec.TotalTokens)
}

func (r *Recorder) post(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
