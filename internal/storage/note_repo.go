package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks leo-engine/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NoteStore defines the interface for pinned note storage.
type NoteStore interface {
	// Insert persists a pinned note. The record ID is generated if unset.
	Insert(ctx context.Context, note *NoteRecord) error
	// ListByAgent returns all pinned notes for an agent, highest priority first.
	ListByAgent(ctx context.Context, agentID string) ([]NoteRecord, error)
	// Delete removes a note by ID. Returns ErrNotFound if no such note exists.
	Delete(ctx context.Context, id string) error
}

// NoteRepo provides methods for pinned note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// Insert persists a pinned note.
func (r *NoteRepo) Insert(ctx context.Context, note *NoteRecord) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO notes (id, agent_id, content, priority, created_at) VALUES (?, ?, ?, ?, ?)",
		note.ID, note.AgentID, note.Content, note.Priority, formatTime(note.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// ListByAgent returns all pinned notes for an agent, highest priority first.
func (r *NoteRepo) ListByAgent(ctx context.Context, agentID string) ([]NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, agent_id, content, priority, created_at FROM notes
		 WHERE agent_id = ? ORDER BY priority DESC, created_at ASC`,
		agentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	notes := []NoteRecord{}
	for rows.Next() {
		var note NoteRecord
		var createdAtStr string
		if err := rows.Scan(&note.ID, &note.AgentID, &note.Content, &note.Priority, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		note.CreatedAt, err = parseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notes, nil
}

// Delete removes a note by ID.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted note: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
