package user

import (
	"context"
	"sort"
	"sync"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type memoryRepo struct {
	mu        sync.RWMutex
	consumers map[string]*Consumer
}

// NewMemoryRepository creates an in-memory consumer table.
func NewMemoryRepository() Repository {
	return &memoryRepo{consumers: make(map[string]*Consumer)}
}

func (r *memoryRepo) Create(ctx context.Context, c *Consumer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.consumers[c.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*Consumer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.consumers[id]
	if !ok {
		return nil, apperr.E(apperr.KindNotFound, "User not found")
	}
	cp := *c
	return &cp, nil
}

func (r *memoryRepo) List(ctx context.Context) ([]*Consumer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Consumer, 0, len(r.consumers))
	for _, c := range r.consumers {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
