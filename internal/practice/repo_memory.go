package practice

import (
	"context"
	"sync"
)

// Repository owns the single session aggregate.
type Repository interface {
	Get(ctx context.Context) (*Practice, error)
	Set(ctx context.Context, p *Practice) error
}

type MemoryRepo struct {
	mu sync.RWMutex
	p  Practice
}

func NewMemoryRepo(p *Practice) *MemoryRepo {
	if p == nil {
		p = New("My Practice")
	}
	return &MemoryRepo{p: *p}
}

// Get returns a deep copy; callers mutate their copy and commit it with Set
// so a failed day never half-applies.
func (r *MemoryRepo) Get(ctx context.Context) (*Practice, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.p.Clone(), nil
}

func (r *MemoryRepo) Set(ctx context.Context, p *Practice) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = *p.Clone()
	return nil
}
