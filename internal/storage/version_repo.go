package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_file_version_store.go -package=mocks leo-engine/internal/storage FileVersionStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// FileVersionStore defines the interface for file version storage operations.
type FileVersionStore interface {
	// Insert appends a new version record. The record is never mutated afterwards.
	Insert(ctx context.Context, rec *FileVersionRecord) error
	// GetByContentHash gets a version with exactly this content hash for the agent.
	// Returns ErrNotFound if no such version exists.
	GetByContentHash(ctx context.Context, agentID, contentHash string) (*FileVersionRecord, error)
	// GetLatestByFilename gets the most recent version for (agentID, filename).
	// Returns ErrNotFound if the file has never been ingested.
	GetLatestByFilename(ctx context.Context, agentID, filename string) (*FileVersionRecord, error)
}

// FileVersionRepo provides methods for file version operations.
// It implements the FileVersionStore interface.
type FileVersionRepo struct {
	db *sql.DB
}

// NewFileVersionRepo creates a new FileVersionRepo.
func NewFileVersionRepo(db *sql.DB) *FileVersionRepo {
	return &FileVersionRepo{db: db}
}

// Insert appends a new version record.
func (r *FileVersionRepo) Insert(ctx context.Context, rec *FileVersionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO file_versions
		 (agent_id, filename, content_hash, file_size, chunk_count, pu_charged, charge_percentage, previous_version_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.AgentID, rec.Filename, rec.ContentHash, rec.FileSize, rec.ChunkCount,
		rec.PUCharged, rec.ChargePercentage, rec.PreviousVersionHash, formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert file version: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// GetByContentHash gets a version with exactly this content hash for the agent.
func (r *FileVersionRepo) GetByContentHash(ctx context.Context, agentID, contentHash string) (*FileVersionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, agent_id, filename, content_hash, file_size, chunk_count, pu_charged, charge_percentage, previous_version_hash, created_at
		 FROM file_versions
		 WHERE agent_id = ? AND content_hash = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		agentID, contentHash,
	)
	return r.scanVersion(row)
}

// GetLatestByFilename gets the most recent version for (agentID, filename).
func (r *FileVersionRepo) GetLatestByFilename(ctx context.Context, agentID, filename string) (*FileVersionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, agent_id, filename, content_hash, file_size, chunk_count, pu_charged, charge_percentage, previous_version_hash, created_at
		 FROM file_versions
		 WHERE agent_id = ? AND filename = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		agentID, filename,
	)
	return r.scanVersion(row)
}

func (r *FileVersionRepo) scanVersion(row *sql.Row) (*FileVersionRecord, error) {
	var rec FileVersionRecord
	var prevHash sql.NullString
	var createdAtStr string

	err := row.Scan(&rec.ID, &rec.AgentID, &rec.Filename, &rec.ContentHash, &rec.FileSize,
		&rec.ChunkCount, &rec.PUCharged, &rec.ChargePercentage, &prevHash, &createdAtStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query file version: %w", err)
	}

	rec.PreviousVersionHash = prevHash.String
	rec.CreatedAt, err = parseTime(createdAtStr)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}
