package risk

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of Store for demo/test use.
type MemoryStore struct {
	mu       sync.RWMutex
	verdicts map[string][]*Verdict // userID -> verdicts
}

// NewMemoryStore creates an in-memory verdict store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		verdicts: make(map[string][]*Verdict),
	}
}

func (s *MemoryStore) Record(ctx context.Context, v *Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *v
	copied.Flags = append([]string(nil), v.Flags...)
	copied.Degraded = append([]string(nil), v.Degraded...)

	s.verdicts[v.UserID] = append(s.verdicts[v.UserID], &copied)
	return nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string, limit int) ([]*Verdict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.verdicts[userID]
	if len(all) == 0 {
		return nil, nil
	}

	// Most recent first, up to limit.
	start := len(all) - limit
	if start < 0 {
		start = 0
	}

	result := make([]*Verdict, 0, len(all)-start)
	for i := len(all) - 1; i >= start; i-- {
		v := *all[i]
		v.Flags = append([]string(nil), all[i].Flags...)
		v.Degraded = append([]string(nil), all[i].Degraded...)
		result = append(result, &v)
	}
	return result, nil
}
