package storage

import "time"

// FileVersionRecord is one row per successful ingestion of a file.
// Rows are append-only and form a chain per (agent_id, filename) via
// PreviousVersionHash; the latest row for a filename is found by recency.
type FileVersionRecord struct {
	ID                  int64
	AgentID             string
	Filename            string
	ContentHash         string // SHA256 hex string of concatenated chunk text
	FileSize            int64  // Content length in bytes
	ChunkCount          int
	PUCharged           float64
	ChargePercentage    int
	PreviousVersionHash string // Empty for first-ever version
	CreatedAt           time.Time
}

// MessageRecord is one stored conversation turn. Rows are append-only;
// only the memory compactor or an explicit history clear deletes them.
type MessageRecord struct {
	ID         string // UUID
	SessionKey string
	Role       string // HUMAN, AI, TOOL or SYSTEM
	Content    string
	CreatedAt  time.Time
}

// SummaryRecord is a rolling conversation summary produced by the memory
// compactor. The most recent row per session is the active summary; older
// rows are retained for audit.
type SummaryRecord struct {
	ID         string // UUID
	SessionKey string
	Summary    string
	CreatedAt  time.Time
}

// NoteRecord is a pinned high-priority note for an agent, appended last
// during prompt assembly for recency bias.
type NoteRecord struct {
	ID        string // UUID
	AgentID   string
	Content   string
	Priority  int
	CreatedAt time.Time
}
