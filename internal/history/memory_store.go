package history

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of Store for demo/test use.
type MemoryStore struct {
	mu            sync.RWMutex
	transactions  map[string][]Transaction // userID -> transactions
	beneficiaries map[string]Beneficiary
}

// NewMemoryStore creates an in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions:  make(map[string][]Transaction),
		beneficiaries: make(map[string]Beneficiary),
	}
}

// AddTransaction seeds a transaction record.
func (s *MemoryStore) AddTransaction(tx Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[tx.UserID] = append(s.transactions[tx.UserID], tx)
}

// AddBeneficiary seeds a beneficiary record.
func (s *MemoryStore) AddBeneficiary(b Beneficiary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beneficiaries[b.ID] = b
}

func (s *MemoryStore) RecentTransactions(ctx context.Context, userID string, since time.Time) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Transaction
	for _, tx := range s.transactions[userID] {
		// Inclusive lower bound, matching the SQL created_at >= since.
		if !tx.CreatedAt.Before(since) {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (s *MemoryStore) AllAmounts(ctx context.Context, userID string) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := s.transactions[userID]
	if len(txs) == 0 {
		return nil, nil
	}
	amounts := make([]float64, 0, len(txs))
	for _, tx := range txs {
		amounts = append(amounts, tx.Amount)
	}
	return amounts, nil
}

func (s *MemoryStore) Beneficiary(ctx context.Context, id string) (*Beneficiary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.beneficiaries[id]
	if !ok {
		return nil, nil
	}
	copied := b
	return &copied, nil
}
