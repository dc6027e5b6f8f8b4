// Package billing decides how much to charge for ingesting a file, based on
// how its content compares to previously ingested versions.
package billing

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_version_store.go -package=mocks leo-engine/internal/billing VersionStore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"leo-engine/internal/chunker"
	"leo-engine/internal/storage"
)

// Charge percentage tiers applied by content difference.
const (
	minorUpdatePercentage = 20
	majorUpdatePercentage = 70
	fullChargePercentage  = 100

	minorDiffThreshold = 30.0
	majorDiffThreshold = 60.0

	// Token estimate: roughly 4 characters per token, 1 PU per 1000 tokens.
	charsPerToken = 4
	tokensPerPU   = 1000
)

// Charge reasons returned to the caller.
const (
	ReasonDuplicate       = "duplicate, already processed"
	ReasonNewFile         = "new file"
	ReasonMinorUpdate     = "minor update"
	ReasonMajorUpdate     = "major update"
	ReasonFullReplacement = "full replacement"
)

// VersionStore is the persistence collaborator the calculator reads from.
// It is a narrowed view of storage.FileVersionStore.
type VersionStore interface {
	GetByContentHash(ctx context.Context, agentID, contentHash string) (*storage.FileVersionRecord, error)
	GetLatestByFilename(ctx context.Context, agentID, filename string) (*storage.FileVersionRecord, error)
}

// Charge is the outcome of a cost calculation. The caller deducts PUCost
// from the agent's balance and then persists the version record; the
// calculator itself never writes.
type Charge struct {
	PUCost           float64
	Reason           string
	ChargePercentage int
	ContentHash      string
	ContentLength    int
	// Previous is the latest prior version for the same filename, nil for
	// a first-ever upload. Its ContentHash becomes PreviousVersionHash on
	// the record the caller persists.
	Previous *storage.FileVersionRecord
}

// Calculator computes re-ingestion charges.
type Calculator struct {
	versions VersionStore
	logger   *slog.Logger
}

// NewCalculator creates a new Calculator.
func NewCalculator(versions VersionStore) *Calculator {
	return &Calculator{
		versions: versions,
		logger:   slog.Default(),
	}
}

// CalculateCharge decides whether the chunked content is new, a duplicate,
// or an update of a previous version, and what fraction of the token cost
// to charge. Persistence failures propagate: billing correctness requires
// the caller to abort ingestion rather than guess.
func (c *Calculator) CalculateCharge(ctx context.Context, agentID, filename string, chunks []chunker.Chunk) (*Charge, error) {
	content := concatChunks(chunks)
	sum := sha256.Sum256([]byte(content))
	contentHash := hex.EncodeToString(sum[:])

	// Exact content match for this agent means a no-op re-upload.
	existing, err := c.versions.GetByContentHash(ctx, agentID, contentHash)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up content hash: %w", err)
	}
	if existing != nil {
		c.logger.InfoContext(ctx, "duplicate upload detected",
			"agent_id", agentID, "filename", filename, "content_hash", contentHash)
		return &Charge{
			PUCost:           0,
			Reason:           ReasonDuplicate,
			ChargePercentage: 0,
			ContentHash:      contentHash,
			ContentLength:    len(content),
			Previous:         existing,
		}, nil
	}

	charge := &Charge{
		ContentHash:   contentHash,
		ContentLength: len(content),
	}

	previous, err := c.versions.GetLatestByFilename(ctx, agentID, filename)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up previous version: %w", err)
	}
	if previous == nil {
		charge.ChargePercentage = fullChargePercentage
		charge.Reason = ReasonNewFile
	} else {
		charge.Previous = previous
		diffPercent := 100 - hashSimilarity(previous.ContentHash, contentHash)
		switch {
		case diffPercent < minorDiffThreshold:
			charge.ChargePercentage = minorUpdatePercentage
			charge.Reason = ReasonMinorUpdate
		case diffPercent < majorDiffThreshold:
			charge.ChargePercentage = majorUpdatePercentage
			charge.Reason = ReasonMajorUpdate
		default:
			charge.ChargePercentage = fullChargePercentage
			charge.Reason = ReasonFullReplacement
		}
		c.logger.DebugContext(ctx, "version diff computed",
			"agent_id", agentID, "filename", filename,
			"diff_percent", diffPercent, "charge_percentage", charge.ChargePercentage)
	}

	tokens := float64(len(content)) / charsPerToken
	basePU := tokens / tokensPerPU
	charge.PUCost = basePU * float64(charge.ChargePercentage) / 100

	c.logger.InfoContext(ctx, "charge calculated",
		"agent_id", agentID, "filename", filename,
		"reason", charge.Reason, "charge_percentage", charge.ChargePercentage,
		"pu_cost", charge.PUCost)

	return charge, nil
}

func concatChunks(chunks []chunker.Chunk) string {
	var b []byte
	for _, ch := range chunks {
		b = append(b, ch.Text...)
	}
	return string(b)
}

// hashSimilarity compares two hex digests character by character and returns
// the match percentage adjusted for length. Note that cryptographic digests
// change completely for any input change, so this measures hash-string
// coincidence, not content similarity; it is kept for compatibility with the
// platform's historical charging behavior.
func hashSimilarity(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}
	matches := 0
	for i := 0; i < shorter; i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return float64(matches) / float64(longer) * 100
}
