package billing_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"leo-engine/internal/billing"
	"leo-engine/internal/billing/mocks"
	"leo-engine/internal/chunker"
	"leo-engine/internal/storage"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func contentHash(chunks []chunker.Chunk) string {
	var b strings.Builder
	for _, ch := range chunks {
		b.WriteString(ch.Text)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// alterHash replaces the first n characters of a hex digest with 'z', which
// never occurs in hex, so exactly n positions mismatch.
func alterHash(hash string, n int) string {
	return strings.Repeat("z", n) + hash[n:]
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateCharge_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chunks := []chunker.Chunk{{Text: strings.Repeat("a", 1000)}}
	hash := contentHash(chunks)

	versions := mocks.NewMockVersionStore(ctrl)
	versions.EXPECT().
		GetByContentHash(gomock.Any(), "agent-1", hash).
		Return(&storage.FileVersionRecord{ContentHash: hash}, nil)

	calc := billing.NewCalculator(versions)
	charge, err := calc.CalculateCharge(context.Background(), "agent-1", "notes.txt", chunks)
	if err != nil {
		t.Fatalf("CalculateCharge() error: %v", err)
	}
	if charge.PUCost != 0 {
		t.Errorf("PUCost = %v, want 0", charge.PUCost)
	}
	if charge.Reason != billing.ReasonDuplicate {
		t.Errorf("Reason = %q, want %q", charge.Reason, billing.ReasonDuplicate)
	}
	if charge.ChargePercentage != 0 {
		t.Errorf("ChargePercentage = %d, want 0", charge.ChargePercentage)
	}
}

func TestCalculateCharge_NewFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// 4000 chars -> 1000 tokens -> 1 PU at 100%.
	chunks := []chunker.Chunk{{Text: strings.Repeat("a", 4000)}}
	hash := contentHash(chunks)

	versions := mocks.NewMockVersionStore(ctrl)
	versions.EXPECT().
		GetByContentHash(gomock.Any(), "agent-1", hash).
		Return(nil, storage.ErrNotFound)
	versions.EXPECT().
		GetLatestByFilename(gomock.Any(), "agent-1", "notes.txt").
		Return(nil, storage.ErrNotFound)

	calc := billing.NewCalculator(versions)
	charge, err := calc.CalculateCharge(context.Background(), "agent-1", "notes.txt", chunks)
	if err != nil {
		t.Fatalf("CalculateCharge() error: %v", err)
	}
	if charge.Reason != billing.ReasonNewFile {
		t.Errorf("Reason = %q, want %q", charge.Reason, billing.ReasonNewFile)
	}
	if charge.ChargePercentage != 100 {
		t.Errorf("ChargePercentage = %d, want 100", charge.ChargePercentage)
	}
	if !almostEqual(charge.PUCost, 1.0) {
		t.Errorf("PUCost = %v, want 1.0", charge.PUCost)
	}
	if charge.ContentHash != hash {
		t.Errorf("ContentHash = %q, want %q", charge.ContentHash, hash)
	}
	if charge.Previous != nil {
		t.Errorf("Previous = %v, want nil", charge.Previous)
	}
}

func TestCalculateCharge_UpdateTiers(t *testing.T) {
	chunks := []chunker.Chunk{{Text: strings.Repeat("a", 4000)}}
	hash := contentHash(chunks)

	tests := []struct {
		name           string
		mismatches     int // altered hash positions out of 64
		wantReason     string
		wantPercentage int
		wantPU         float64
	}{
		{
			// 12/64 differ -> 18.75% diff -> minor tier.
			name:           "minor update",
			mismatches:     12,
			wantReason:     billing.ReasonMinorUpdate,
			wantPercentage: 20,
			wantPU:         0.2,
		},
		{
			// 30/64 differ -> 46.9% diff -> major tier.
			name:           "major update",
			mismatches:     30,
			wantReason:     billing.ReasonMajorUpdate,
			wantPercentage: 70,
			wantPU:         0.7,
		},
		{
			// All 64 differ -> 100% diff -> full replacement.
			name:           "full replacement",
			mismatches:     64,
			wantReason:     billing.ReasonFullReplacement,
			wantPercentage: 100,
			wantPU:         1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			previous := &storage.FileVersionRecord{
				ContentHash: alterHash(hash, tt.mismatches),
			}

			versions := mocks.NewMockVersionStore(ctrl)
			versions.EXPECT().
				GetByContentHash(gomock.Any(), "agent-1", hash).
				Return(nil, storage.ErrNotFound)
			versions.EXPECT().
				GetLatestByFilename(gomock.Any(), "agent-1", "notes.txt").
				Return(previous, nil)

			calc := billing.NewCalculator(versions)
			charge, err := calc.CalculateCharge(context.Background(), "agent-1", "notes.txt", chunks)
			if err != nil {
				t.Fatalf("CalculateCharge() error: %v", err)
			}
			if charge.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", charge.Reason, tt.wantReason)
			}
			if charge.ChargePercentage != tt.wantPercentage {
				t.Errorf("ChargePercentage = %d, want %d", charge.ChargePercentage, tt.wantPercentage)
			}
			if !almostEqual(charge.PUCost, tt.wantPU) {
				t.Errorf("PUCost = %v, want %v", charge.PUCost, tt.wantPU)
			}
			if charge.Previous != previous {
				t.Errorf("Previous not carried through")
			}
		})
	}
}

func TestCalculateCharge_StoreErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chunks := []chunker.Chunk{{Text: "some content."}}
	boom := errors.New("db locked")

	versions := mocks.NewMockVersionStore(ctrl)
	versions.EXPECT().
		GetByContentHash(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, boom)

	calc := billing.NewCalculator(versions)
	if _, err := calc.CalculateCharge(context.Background(), "agent-1", "notes.txt", chunks); !errors.Is(err, boom) {
		t.Errorf("CalculateCharge() error = %v, want wrapped %v", err, boom)
	}
}
