package history

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_RecentTransactionsWindow(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	since := now.Add(-time.Hour)

	s.AddTransaction(Transaction{ID: "in", UserID: "u1", Amount: 10, CreatedAt: now.Add(-30 * time.Minute)})
	s.AddTransaction(Transaction{ID: "boundary", UserID: "u1", Amount: 10, CreatedAt: since})
	s.AddTransaction(Transaction{ID: "out", UserID: "u1", Amount: 10, CreatedAt: since.Add(-time.Second)})
	s.AddTransaction(Transaction{ID: "other", UserID: "u2", Amount: 10, CreatedAt: now})

	got, err := s.RecentTransactions(context.Background(), "u1", since)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions (inclusive lower bound), got %d", len(got))
	}
	for _, tx := range got {
		if tx.ID == "out" {
			t.Errorf("transaction before the window leaked in")
		}
	}
}

func TestMemoryStore_AllAmounts(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()

	s.AddTransaction(Transaction{ID: "a", UserID: "u1", Amount: 100, CreatedAt: now})
	s.AddTransaction(Transaction{ID: "b", UserID: "u1", Amount: 300, CreatedAt: now.Add(-100 * time.Hour)})

	got, err := s.AllAmounts(context.Background(), "u1")
	if err != nil {
		t.Fatalf("amounts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 amounts regardless of age, got %d", len(got))
	}
}

func TestMemoryStore_BeneficiaryMiss(t *testing.T) {
	s := NewMemoryStore()

	b, err := s.Beneficiary(context.Background(), "nope")
	if err != nil {
		t.Fatalf("a lookup miss must not be an error: %v", err)
	}
	if b != nil {
		t.Errorf("expected nil beneficiary, got %+v", b)
	}
}

func TestMemoryStore_BeneficiaryHit(t *testing.T) {
	s := NewMemoryStore()
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.AddBeneficiary(Beneficiary{ID: "b1", CreatedAt: created})

	b, err := s.Beneficiary(context.Background(), "b1")
	if err != nil {
		t.Fatalf("beneficiary: %v", err)
	}
	if b == nil || !b.CreatedAt.Equal(created) {
		t.Errorf("beneficiary round-trip mismatch: %+v", b)
	}
}
