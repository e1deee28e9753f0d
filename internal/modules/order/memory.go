package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

// memoryRepo keeps the ledger under one mutex so Claim and Advance are
// atomic check-and-set operations, never a read-then-write pair another
// goroutine can interleave with.
type memoryRepo struct {
	mu     sync.RWMutex
	orders map[string]*Order
	seq    []string // insertion order for stable listings
}

// NewMemoryRepository creates an in-memory order ledger.
func NewMemoryRepository() Repository {
	return &memoryRepo{orders: make(map[string]*Order)}
}

func (r *memoryRepo) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	cp.Items = append([]Item(nil), o.Items...)
	r.orders[o.ID] = &cp
	r.seq = append(r.seq, o.ID)
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperr.E(apperr.KindNotFound, "Order not found")
	}
	return clone(o), nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]*Order, error) {
	return r.list(func(*Order) bool { return true })
}

func (r *memoryRepo) ListByStatus(ctx context.Context, status Status) ([]*Order, error) {
	return r.list(func(o *Order) bool { return o.Status == status })
}

func (r *memoryRepo) ListByConsumer(ctx context.Context, consumerID string) ([]*Order, error) {
	return r.list(func(o *Order) bool { return o.ConsumerID == consumerID })
}

func (r *memoryRepo) ListByStore(ctx context.Context, storeID string) ([]*Order, error) {
	return r.list(func(o *Order) bool { return o.StoreID == storeID })
}

func (r *memoryRepo) ListByDriver(ctx context.Context, driverID string) ([]*Order, error) {
	return r.list(func(o *Order) bool { return o.DriverID == driverID })
}

func (r *memoryRepo) Claim(ctx context.Context, id, driverID string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperr.E(apperr.KindNotFound, "Order not found")
	}
	if o.Status != StatusCreated {
		return nil, apperr.E(apperr.KindConflict, "Order not available")
	}
	o.Status = StatusAccepted
	o.DriverID = driverID
	o.UpdatedAt = time.Now().UTC()
	return clone(o), nil
}

func (r *memoryRepo) Advance(ctx context.Context, id string, from, to Status, driverID string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperr.E(apperr.KindNotFound, "Order not found")
	}
	if o.Status != from {
		return nil, apperr.E(apperr.KindConflict,
			"Cannot %s order in status %s", eventName[to], o.Status)
	}
	if o.DriverID != driverID {
		return nil, apperr.E(apperr.KindForbidden, "Not your order")
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return clone(o), nil
}

func (r *memoryRepo) list(keep func(*Order) bool) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Order
	for _, id := range r.seq {
		if o := r.orders[id]; keep(o) {
			out = append(out, clone(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func clone(o *Order) *Order {
	cp := *o
	cp.Items = append([]Item(nil), o.Items...)
	return &cp
}
