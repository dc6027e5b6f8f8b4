package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_summary_store.go -package=mocks leo-engine/internal/storage SummaryStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SummaryStore defines the interface for rolling summary storage.
type SummaryStore interface {
	// Insert persists a new summary record. The record ID is generated if unset.
	Insert(ctx context.Context, rec *SummaryRecord) error
	// GetLatest returns the most recent summary for a session.
	// Returns ErrNotFound if the session has never been compacted.
	GetLatest(ctx context.Context, sessionKey string) (*SummaryRecord, error)
	// DeleteBySession deletes all summaries for a session.
	DeleteBySession(ctx context.Context, sessionKey string) error
}

// SummaryRepo provides methods for summary operations.
// It implements the SummaryStore interface.
type SummaryRepo struct {
	db *sql.DB
}

// NewSummaryRepo creates a new SummaryRepo.
func NewSummaryRepo(db *sql.DB) *SummaryRepo {
	return &SummaryRepo{db: db}
}

// Insert persists a new summary record.
func (r *SummaryRepo) Insert(ctx context.Context, rec *SummaryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO summaries (id, session_key, summary, created_at) VALUES (?, ?, ?, ?)",
		rec.ID, rec.SessionKey, rec.Summary, formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}
	return nil
}

// GetLatest returns the most recent summary for a session.
func (r *SummaryRepo) GetLatest(ctx context.Context, sessionKey string) (*SummaryRecord, error) {
	var rec SummaryRecord
	var createdAtStr string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, session_key, summary, created_at FROM summaries
		 WHERE session_key = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		sessionKey,
	).Scan(&rec.ID, &rec.SessionKey, &rec.Summary, &createdAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}

	rec.CreatedAt, err = parseTime(createdAtStr)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// DeleteBySession deletes all summaries for a session.
func (r *SummaryRepo) DeleteBySession(ctx context.Context, sessionKey string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM summaries WHERE session_key = ?", sessionKey)
	if err != nil {
		return fmt.Errorf("failed to delete summaries by session: %w", err)
	}
	return nil
}
