package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_message_store.go -package=mocks leo-engine/internal/storage MessageStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageStore defines the interface for conversation message storage.
type MessageStore interface {
	// Insert persists a single message. The record ID is generated if unset.
	Insert(ctx context.Context, msg *MessageRecord) error
	// CountBySession returns the number of stored messages for a session.
	CountBySession(ctx context.Context, sessionKey string) (int, error)
	// ListRecent returns the most recent n messages for a session in
	// chronological order. Returns an empty slice if none exist.
	ListRecent(ctx context.Context, sessionKey string, n int) ([]MessageRecord, error)
	// DeleteAllExceptRecent deletes all messages for a session except the
	// most recent keep messages. Used by the compactor to truncate the log.
	DeleteAllExceptRecent(ctx context.Context, sessionKey string, keep int) error
	// DeleteBySession deletes all messages for a session.
	DeleteBySession(ctx context.Context, sessionKey string) error
}

// MessageRepo provides methods for message operations.
// It implements the MessageStore interface.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo creates a new MessageRepo.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Insert persists a single message.
func (r *MessageRepo) Insert(ctx context.Context, msg *MessageRecord) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (id, session_key, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
		msg.ID, msg.SessionKey, msg.Role, msg.Content, formatTime(msg.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// CountBySession returns the number of stored messages for a session.
func (r *MessageRepo) CountBySession(ctx context.Context, sessionKey string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE session_key = ?", sessionKey,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// ListRecent returns the most recent n messages in chronological order.
func (r *MessageRepo) ListRecent(ctx context.Context, sessionKey string, n int) ([]MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_key, role, content, created_at FROM (
			SELECT id, session_key, role, content, created_at, rowid AS rid
			FROM messages WHERE session_key = ?
			ORDER BY created_at DESC, rid DESC LIMIT ?
		 ) ORDER BY created_at ASC, rid ASC`,
		sessionKey, n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := []MessageRecord{}
	for rows.Next() {
		var msg MessageRecord
		var createdAtStr string
		if err := rows.Scan(&msg.ID, &msg.SessionKey, &msg.Role, &msg.Content, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.CreatedAt, err = parseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return messages, nil
}

// DeleteAllExceptRecent deletes all messages for a session except the most
// recent keep messages.
func (r *MessageRepo) DeleteAllExceptRecent(ctx context.Context, sessionKey string, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM messages WHERE session_key = ? AND id NOT IN (
			SELECT id FROM messages WHERE session_key = ?
			ORDER BY created_at DESC, rowid DESC LIMIT ?
		 )`,
		sessionKey, sessionKey, keep,
	)
	if err != nil {
		return fmt.Errorf("failed to truncate messages: %w", err)
	}
	return nil
}

// DeleteBySession deletes all messages for a session.
func (r *MessageRepo) DeleteBySession(ctx context.Context, sessionKey string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE session_key = ?", sessionKey)
	if err != nil {
		return fmt.Errorf("failed to delete messages by session: %w", err)
	}
	return nil
}
