package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatServer(t *testing.T, handler func(t *testing.T, req chatRequest) chatResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q, want /v1/chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q", auth)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		resp := handler(t, req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestChatWithMessages(t *testing.T) {
	server := chatServer(t, func(t *testing.T, req chatRequest) chatResponse {
		if req.Model != "test-model" {
			t.Errorf("model = %q, want test-model", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %+v", req.Messages)
		}
		return chatResponse{
			Model: "test-model-v2",
			Choices: []chatChoice{
				{Message: Message{Role: "assistant", Content: "Hello there."}},
			},
			Usage: Usage{PromptTokens: 12, CompletionTokens: 4, TotalTokens: 16},
		}
	})
	defer server.Close()

	c := NewClient(server.URL, "test-key", "test-model")
	completion, err := c.ChatWithMessages(context.Background(), []Message{
		{Role: "system", Content: "You are helpful."},
		{Role: "user", Content: "Hi"},
	}, ChatParams{})
	if err != nil {
		t.Fatalf("ChatWithMessages() error: %v", err)
	}
	if completion.Text != "Hello there." {
		t.Errorf("text = %q", completion.Text)
	}
	if completion.Model != "test-model-v2" {
		t.Errorf("model = %q, want the server-reported model", completion.Model)
	}
	if completion.Usage.TotalTokens != 16 {
		t.Errorf("total tokens = %d, want 16", completion.Usage.TotalTokens)
	}
}

func TestChatWithMessages_ModelOverride(t *testing.T) {
	server := chatServer(t, func(t *testing.T, req chatRequest) chatResponse {
		if req.Model != "override-model" {
			t.Errorf("model = %q, want override-model", req.Model)
		}
		return chatResponse{Choices: []chatChoice{{Message: Message{Content: "ok"}}}}
	})
	defer server.Close()

	c := NewClient(server.URL, "test-key", "default-model")
	if _, err := c.ChatWithMessages(context.Background(), []Message{{Role: "user", Content: "hi"}},
		ChatParams{Model: "override-model"}); err != nil {
		t.Fatalf("ChatWithMessages() error: %v", err)
	}
}

func TestChatWithMessages_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key", "test-model")
	if _, err := c.ChatWithMessages(context.Background(), []Message{{Role: "user", Content: "hi"}}, ChatParams{}); err == nil {
		t.Error("ChatWithMessages() succeeded on 503")
	}
}

func TestChatWithMessages_NoChoices(t *testing.T) {
	server := chatServer(t, func(t *testing.T, req chatRequest) chatResponse {
		return chatResponse{}
	})
	defer server.Close()

	c := NewClient(server.URL, "test-key", "test-model")
	if _, err := c.ChatWithMessages(context.Background(), []Message{{Role: "user", Content: "hi"}}, ChatParams{}); err == nil {
		t.Error("ChatWithMessages() succeeded with no choices")
	}
}

func TestComplete(t *testing.T) {
	server := chatServer(t, func(t *testing.T, req chatRequest) chatResponse {
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v, want single user message", req.Messages)
		}
		return chatResponse{Choices: []chatChoice{{Message: Message{Content: "a summary"}}}}
	})
	defer server.Close()

	c := NewClient(server.URL, "test-key", "test-model")
	text, err := c.Complete(context.Background(), "Summarize this.")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if text != "a summary" {
		t.Errorf("text = %q", text)
	}
}
