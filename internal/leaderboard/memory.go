package leaderboard

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is the in-process store used by default sessions and tests.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]Record{}}
}

func (s *MemoryStore) Save(ctx context.Context, r Record) error {
	_ = ctx
	r = NewRecord(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[r.ID] = r
	return nil
}

func (s *MemoryStore) All(ctx context.Context) ([]Record, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.m))
	for _, r := range s.m {
		out = append(out, r)
	}
	sortByScore(out)
	return out, nil
}

func (s *MemoryStore) ByChallenge(ctx context.Context, code string) ([]Record, error) {
	_ = ctx
	code = strings.ToUpper(strings.TrimSpace(code))
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, r := range s.m {
		if strings.ToUpper(r.ChallengeCode) == code {
			out = append(out, r)
		}
	}
	sortByScore(out)
	return out, nil
}
