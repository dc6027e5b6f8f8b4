package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_balance_store.go -package=mocks leo-engine/internal/storage BalanceStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrInsufficientBalance is returned when a deduction exceeds the remaining balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// BalanceStore defines the interface for the platform-unit balance collaborator.
type BalanceStore interface {
	// Deduct subtracts amount PU from an agent's balance.
	// Returns ErrInsufficientBalance without changing anything when the
	// balance does not cover the amount.
	Deduct(ctx context.Context, agentID string, amount float64) error
	// Credit adds amount PU to an agent's balance, creating it if needed.
	Credit(ctx context.Context, agentID string, amount float64) error
	// Get returns the current balance for an agent.
	Get(ctx context.Context, agentID string) (float64, error)
}

// BalanceRepo provides methods for balance operations.
// It implements the BalanceStore interface.
type BalanceRepo struct {
	db             *sql.DB
	defaultBalance float64
}

// NewBalanceRepo creates a new BalanceRepo. Agents that have never been
// credited start at defaultBalance on first use.
func NewBalanceRepo(db *sql.DB, defaultBalance float64) *BalanceRepo {
	return &BalanceRepo{db: db, defaultBalance: defaultBalance}
}

// Deduct subtracts amount PU from an agent's balance.
func (r *BalanceRepo) Deduct(ctx context.Context, agentID string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("deduction amount must not be negative: %f", amount)
	}
	if amount == 0 {
		return nil
	}

	if err := r.ensureRow(ctx, agentID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE balances SET balance = balance - ? WHERE agent_id = ? AND balance >= ?",
		amount, agentID, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to deduct balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check balance deduction: %w", err)
	}
	if affected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// Credit adds amount PU to an agent's balance, creating it if needed.
func (r *BalanceRepo) Credit(ctx context.Context, agentID string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount must not be negative: %f", amount)
	}
	if err := r.ensureRow(ctx, agentID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE balances SET balance = balance + ? WHERE agent_id = ?",
		amount, agentID,
	)
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

// Get returns the current balance for an agent.
func (r *BalanceRepo) Get(ctx context.Context, agentID string) (float64, error) {
	var balance float64
	err := r.db.QueryRowContext(ctx,
		"SELECT balance FROM balances WHERE agent_id = ?", agentID,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return r.defaultBalance, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query balance: %w", err)
	}
	return balance, nil
}

func (r *BalanceRepo) ensureRow(ctx context.Context, agentID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO balances (agent_id, balance) VALUES (?, ?)",
		agentID, r.defaultBalance,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize balance: %w", err)
	}
	return nil
}
