package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store with per-key deadlines. It does not
// survive restarts and is not shared between replicas.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := TokenKey(token)
	deadline := s.now().Add(ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.entries[key]; !ok || deadline.After(cur) {
		s.entries[key] = deadline
	}
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	key := TokenKey(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(deadline) {
		delete(s.entries, key)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) PurgeExpired(context.Context) (int64, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, deadline := range s.entries {
		if !now.Before(deadline) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

// Len reports the number of records, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
