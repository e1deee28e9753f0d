package auth

import (
	"context"
	"sync"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type memoryRepo struct {
	mu       sync.RWMutex
	accounts map[string]*Account // key: scope + "/" + username
}

// NewMemoryRepository creates an in-memory credential store.
func NewMemoryRepository() Repository {
	return &memoryRepo{accounts: make(map[string]*Account)}
}

func key(scope Scope, username string) string { return string(scope) + "/" + username }

func (r *memoryRepo) CreateAccount(ctx context.Context, a *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(a.Scope, a.Username)
	if _, exists := r.accounts[k]; exists {
		return apperr.E(apperr.KindConflict, "Username already exists")
	}
	cp := *a
	r.accounts[k] = &cp
	return nil
}

func (r *memoryRepo) GetByUsername(ctx context.Context, scope Scope, username string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[key(scope, username)]
	if !ok {
		return nil, apperr.E(apperr.KindNotFound, "account not found")
	}
	cp := *a
	return &cp, nil
}
