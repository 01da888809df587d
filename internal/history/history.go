// Package history provides read-only access to the transaction and
// beneficiary records the risk rules evaluate against. The evaluator never
// writes through these interfaces.
package history

import (
	"context"
	"time"
)

// Transaction is a read-only view of one recorded transaction.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Beneficiary is a read-only view of a payment recipient.
type Beneficiary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionStore answers the windowed and unbounded history queries the
// risk rules need. Implementations must apply the since filter as an
// inclusive lower bound (createdAt >= since).
type TransactionStore interface {
	// RecentTransactions returns the user's transactions with
	// createdAt >= since.
	RecentTransactions(ctx context.Context, userID string, since time.Time) ([]Transaction, error)

	// AllAmounts returns every historical transaction amount for the user,
	// in no particular order.
	AllAmounts(ctx context.Context, userID string) ([]float64, error)
}

// BeneficiaryStore looks up beneficiary records by ID.
type BeneficiaryStore interface {
	// Beneficiary returns the record, or (nil, nil) when no such
	// beneficiary exists. A miss is not an error.
	Beneficiary(ctx context.Context, id string) (*Beneficiary, error)
}

// Store combines both collaborator views behind one handle.
type Store interface {
	TransactionStore
	BeneficiaryStore
}
