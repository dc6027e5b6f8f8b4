package memory

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completion_client.go -package=mocks leo-engine/internal/memory CompletionClient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leo-engine/internal/contextutil"
	"leo-engine/internal/prompts"
	"leo-engine/internal/storage"
	"leo-engine/internal/usage"
)

// Message roles.
const (
	RoleHuman  = "HUMAN"
	RoleAI     = "AI"
	RoleTool   = "TOOL"
	RoleSystem = "SYSTEM"
)

// CompletionClient is the LLM surface the compactor needs to produce
// summaries.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PromptSource resolves named prompt templates.
type PromptSource interface {
	Get(name string) (string, error)
}

// Context is the conversation state handed to prompt assembly: the
// active rolling summary (nil when none exists) plus the recent
// messages in chronological order.
type Context struct {
	Summary        *storage.SummaryRecord
	RecentMessages []storage.MessageRecord
}

// Compactor maintains bounded conversation history. Every message is
// persisted; once a session reaches maxMessages stored messages, the
// older portion is folded into a rolling summary and deleted, keeping
// the keepMessages most recent messages verbatim.
type Compactor struct {
	messages     storage.MessageStore
	summaries    storage.SummaryStore
	completer    CompletionClient
	prompts      PromptSource
	usage        *usage.Recorder
	maxMessages  int
	keepMessages int
}

// NewCompactor creates a conversation memory compactor. maxMessages and
// keepMessages are clamped to sane minimums (keepMessages must be below
// maxMessages for compaction to make progress).
func NewCompactor(messages storage.MessageStore, summaries storage.SummaryStore, completer CompletionClient, promptSource PromptSource, recorder *usage.Recorder, maxMessages, keepMessages int) *Compactor {
	if maxMessages < 2 {
		maxMessages = 20
	}
	if keepMessages < 1 || keepMessages >= maxMessages {
		keepMessages = maxMessages / 2
	}
	return &Compactor{
		messages:     messages,
		summaries:    summaries,
		completer:    completer,
		prompts:      promptSource,
		usage:        recorder,
		maxMessages:  maxMessages,
		keepMessages: keepMessages,
	}
}

// AppendMessage persists a message and runs compaction when the session
// has reached the message limit. Persistence failures are fatal;
// compaction failures are logged and swallowed so a flaky summarizer
// never loses a turn.
func (c *Compactor) AppendMessage(ctx context.Context, sessionKey, role, content string) error {
	msg := &storage.MessageRecord{
		SessionKey: sessionKey,
		Role:       role,
		Content:    content,
	}
	if err := c.messages.Insert(ctx, msg); err != nil {
		return fmt.Errorf("failed to persist message: %w", err)
	}

	count, err := c.messages.CountBySession(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to count messages: %w", err)
	}
	if count < c.maxMessages {
		return nil
	}

	logger := contextutil.LoggerFromContext(ctx)
	if err := c.compact(ctx, sessionKey); err != nil {
		logger.Warn("conversation compaction failed, keeping full history", "error", err, "session_key", sessionKey)
		return nil
	}
	logger.Info("compacted conversation", "session_key", sessionKey, "kept_messages", c.keepMessages)
	return nil
}

// GetContext returns the active summary (nil when the session has never
// been compacted) and the newest keepMessages messages in chronological
// order. The bound holds between compactions too: messages beyond it are
// stored but only enter the context once folded into the summary.
func (c *Compactor) GetContext(ctx context.Context, sessionKey string) (*Context, error) {
	recent, err := c.messages.ListRecent(ctx, sessionKey, c.keepMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	summary, err := c.summaries.GetLatest(ctx, sessionKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}

	return &Context{
		Summary:        summary,
		RecentMessages: recent,
	}, nil
}

// ClearHistory deletes all messages and summaries for the session.
func (c *Compactor) ClearHistory(ctx context.Context, sessionKey string) error {
	if err := c.messages.DeleteBySession(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	if err := c.summaries.DeleteBySession(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to delete summaries: %w", err)
	}
	return nil
}

// compact folds the stored history into a new rolling summary, then
// trims the session down to the keepMessages most recent messages. The
// summary is persisted before any deletion so a failure partway through
// never loses conversation state.
func (c *Compactor) compact(ctx context.Context, sessionKey string) error {
	history, err := c.messages.ListRecent(ctx, sessionKey, c.maxMessages)
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	prior, err := c.summaries.GetLatest(ctx, sessionKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load prior summary: %w", err)
	}
	priorText := ""
	if prior != nil {
		priorText = prior.Summary
	}

	template, err := c.prompts.Get(prompts.PromptSummarize)
	if err != nil {
		return fmt.Errorf("failed to load summarize prompt: %w", err)
	}

	prompt := fmt.Sprintf(template, priorText, formatTranscript(history))
	summaryText, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("failed to summarize conversation: %w", err)
	}
	summaryText = strings.TrimSpace(summaryText)
	if summaryText == "" {
		return fmt.Errorf("summarizer returned empty summary")
	}

	rec := &storage.SummaryRecord{
		SessionKey: sessionKey,
		Summary:    summaryText,
	}
	if err := c.summaries.Insert(ctx, rec); err != nil {
		return fmt.Errorf("failed to persist summary: %w", err)
	}

	if err := c.messages.DeleteAllExceptRecent(ctx, sessionKey, c.keepMessages); err != nil {
		return fmt.Errorf("failed to trim messages: %w", err)
	}

	c.usage.Report(ctx, usage.Record{
		RequestType: usage.RequestTypeSummarization,
		TotalTokens: (len(prompt) + len(summaryText)) / 4,
	})
	return nil
}

func formatTranscript(history []storage.MessageRecord) string {
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}
