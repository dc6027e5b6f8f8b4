package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_agent_deps.go -package=mocks leo-engine/internal/service Retriever,ConversationMemory,ChatClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_agent_service.go -package=mocks -mock_names=AgentService=MockAgentService leo-engine/internal/service AgentService

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leo-engine/internal/contextutil"
	"leo-engine/internal/llm"
	"leo-engine/internal/memory"
	"leo-engine/internal/prompts"
	"leo-engine/internal/retrieval"
	"leo-engine/internal/storage"
	"leo-engine/internal/usage"
)

// retrievalLimit is how many fused chunks are injected into the prompt.
const retrievalLimit = 5

// Retriever runs hybrid retrieval over the agent's knowledge base.
// This interface is defined from the service layer's perspective (consumer-first).
type Retriever interface {
	Search(ctx context.Context, agentID, query string, limit int) ([]retrieval.Result, error)
}

// ConversationMemory manages bounded per-session conversation history.
type ConversationMemory interface {
	AppendMessage(ctx context.Context, sessionKey, role, content string) error
	GetContext(ctx context.Context, sessionKey string) (*memory.Context, error)
	ClearHistory(ctx context.Context, sessionKey string) error
}

// ChatClient is the completion surface the agent talks through.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (llm.Completion, error)
}

// TurnRequest represents one user turn in the domain layer.
type TurnRequest struct {
	AgentID    string `validate:"required"`
	SessionKey string `validate:"required"`
	Message    string `validate:"required"`
}

// TurnResponse is the agent's reply plus the knowledge it drew on.
type TurnResponse struct {
	Reply   string
	Sources []retrieval.Result
}

// AgentService runs conversational turns against an agent.
type AgentService interface {
	// Turn records the user message, retrieves knowledge, generates the
	// agent's reply, and records it.
	Turn(ctx context.Context, req TurnRequest) (TurnResponse, error)
}

// agentService implements AgentService.
type agentService struct {
	retriever Retriever
	memory    ConversationMemory
	chat      ChatClient
	notes     storage.NoteStore
	prompts   *prompts.Store
	usage     *usage.Recorder
}

// NewAgentService creates a new AgentService.
func NewAgentService(retriever Retriever, mem ConversationMemory, chat ChatClient, notes storage.NoteStore, promptStore *prompts.Store, recorder *usage.Recorder) AgentService {
	return &agentService{
		retriever: retriever,
		memory:    mem,
		chat:      chat,
		notes:     notes,
		prompts:   promptStore,
		usage:     recorder,
	}
}

// Turn processes one conversational turn.
func (s *agentService) Turn(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.AgentID == "" {
		return TurnResponse{}, &ValidationError{Field: "agent_id", Message: "cannot be empty"}
	}
	if req.SessionKey == "" {
		return TurnResponse{}, &ValidationError{Field: "session_key", Message: "cannot be empty"}
	}
	if strings.TrimSpace(req.Message) == "" {
		logger.WarnContext(ctx, "empty message in turn request")
		return TurnResponse{}, &ValidationError{Field: "message", Message: "cannot be empty"}
	}

	// The user message is persisted before anything can fail so history
	// never drops a turn the user already sent.
	if err := s.memory.AppendMessage(ctx, req.SessionKey, memory.RoleHuman, req.Message); err != nil {
		return TurnResponse{}, WrapError(err, "failed to record user message")
	}

	memCtx, err := s.memory.GetContext(ctx, req.SessionKey)
	if err != nil {
		return TurnResponse{}, WrapError(err, "failed to load conversation context")
	}

	sources, err := s.retriever.Search(ctx, req.AgentID, req.Message, retrievalLimit)
	if err != nil {
		// Retrieval degrades to an uninformed answer rather than failing the turn.
		logger.WarnContext(ctx, "retrieval failed, answering without knowledge base", "error", err)
		sources = nil
	}

	messages, err := s.assembleMessages(ctx, req, memCtx, sources)
	if err != nil {
		return TurnResponse{}, err
	}

	completion, err := s.chat.ChatWithMessages(ctx, messages, llm.ChatParams{})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return TurnResponse{}, fmt.Errorf("%w: failed to get LLM response: %v", ErrExternalService, err)
	}

	if err := s.memory.AppendMessage(ctx, req.SessionKey, memory.RoleAI, completion.Text); err != nil {
		return TurnResponse{}, WrapError(err, "failed to record agent reply")
	}

	s.usage.Report(ctx, usage.Record{
		AgentID:          req.AgentID,
		RequestType:      usage.RequestTypeAgentChat,
		Model:            completion.Model,
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
		TotalTokens:      completion.Usage.TotalTokens,
	})

	logger.InfoContext(ctx, "turn processed",
		"agent_id", req.AgentID,
		"session_key", req.SessionKey,
		"sources", len(sources),
		"reply_length", len(completion.Text))

	return TurnResponse{
		Reply:   completion.Text,
		Sources: sources,
	}, nil
}

// assembleMessages builds the chat transcript: system prompt with the
// rolling summary, recent history, the current message with its reference
// material, and pinned notes last so they carry recency weight.
func (s *agentService) assembleMessages(ctx context.Context, req TurnRequest, memCtx *memory.Context, sources []retrieval.Result) ([]llm.Message, error) {
	systemPrompt, err := s.prompts.Get(prompts.PromptAgentSystem)
	if err != nil {
		return nil, WrapError(err, "failed to load system prompt")
	}

	var system strings.Builder
	system.WriteString(systemPrompt)
	if memCtx.Summary != nil {
		system.WriteString("\n\nSummary of the conversation so far:\n")
		system.WriteString(memCtx.Summary.Summary)
	}

	messages := []llm.Message{{Role: "system", Content: system.String()}}

	// Recent history already ends with the current user message, which is
	// replaced below with the version carrying reference material.
	history := memCtx.RecentMessages
	if n := len(history); n > 0 && history[n-1].Role == memory.RoleHuman && history[n-1].Content == req.Message {
		history = history[:n-1]
	}
	for _, msg := range history {
		messages = append(messages, llm.Message{Role: chatRole(msg.Role), Content: msg.Content})
	}

	var current strings.Builder
	if len(sources) > 0 {
		current.WriteString("Reference material:\n")
		for i, src := range sources {
			current.WriteString(fmt.Sprintf("[%d] %s\n", i+1, src.Content))
		}
		current.WriteString("\n")
	}
	current.WriteString(req.Message)
	messages = append(messages, llm.Message{Role: "user", Content: current.String()})

	notes, err := s.notes.ListByAgent(ctx, req.AgentID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, WrapError(err, "failed to load notes")
	}
	if len(notes) > 0 {
		var pinned strings.Builder
		pinned.WriteString("Pinned notes to keep in mind:\n")
		for _, note := range notes {
			pinned.WriteString("- ")
			pinned.WriteString(note.Content)
			pinned.WriteString("\n")
		}
		messages = append(messages, llm.Message{Role: "system", Content: pinned.String()})
	}

	return messages, nil
}

// chatRole maps stored message roles onto chat API roles.
func chatRole(role string) string {
	switch role {
	case memory.RoleAI:
		return "assistant"
	case memory.RoleSystem:
		return "system"
	default:
		return "user"
	}
}
