package driver

import (
	"context"
	"sync"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type memoryRepo struct {
	mu      sync.RWMutex
	drivers map[string]*Driver
}

// NewMemoryRepository creates an in-memory driver table.
func NewMemoryRepository() Repository {
	return &memoryRepo{drivers: make(map[string]*Driver)}
}

func (r *memoryRepo) Create(ctx context.Context, d *Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.drivers[d.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drivers[id]
	if !ok {
		return nil, apperr.E(apperr.KindNotFound, "Driver not found")
	}
	cp := *d
	return &cp, nil
}
