package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresStore reads transaction and beneficiary history from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed history store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) RecentTransactions(ctx context.Context, userID string, since time.Time) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount, created_at
		FROM transactions
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func (s *PostgresStore) AllAmounts(ctx context.Context, userID string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT amount FROM transactions WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction amounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var amounts []float64
	for rows.Next() {
		var a float64
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("failed to scan amount: %w", err)
		}
		amounts = append(amounts, a)
	}
	return amounts, rows.Err()
}

func (s *PostgresStore) Beneficiary(ctx context.Context, id string) (*Beneficiary, error) {
	var b Beneficiary
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at FROM beneficiaries WHERE id = $1
	`, id).Scan(&b.ID, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // not found is a valid outcome
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiary: %w", err)
	}
	return &b, nil
}
