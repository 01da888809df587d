package risk

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryStore_RecordAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := s.Record(ctx, &Verdict{
			ID:          fmt.Sprintf("rv_%d", i),
			UserID:      "u1",
			Safe:        true,
			RiskScore:   0,
			Flags:       []string{},
			EvaluatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := s.ListByUser(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 verdicts, got %d", len(got))
	}
	// Most recent first.
	if got[0].ID != "rv_2" || got[2].ID != "rv_0" {
		t.Errorf("wrong order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestMemoryStore_ListLimit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = s.Record(ctx, &Verdict{ID: fmt.Sprintf("rv_%d", i), UserID: "u1"})
	}

	got, err := s.ListByUser(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 verdicts, got %d", len(got))
	}
}

func TestMemoryStore_ListUnknownUser(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.ListByUser(context.Background(), "nobody", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no verdicts, got %d", len(got))
	}
}

func TestMemoryStore_CopiesVerdict(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	v := &Verdict{ID: "rv_1", UserID: "u1", Flags: []string{FlagHighVelocity}}
	_ = s.Record(ctx, v)

	// Mutating the caller's slice must not leak into the store.
	v.Flags[0] = "mutated"

	got, _ := s.ListByUser(ctx, "u1", 1)
	if got[0].Flags[0] != FlagHighVelocity {
		t.Errorf("stored verdict aliases caller memory")
	}
}
