package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type storeMemoryRepo struct {
	mu     sync.RWMutex
	stores map[string]*Store
}

// NewStoreMemoryRepository creates an in-memory store table.
func NewStoreMemoryRepository() StoreRepository {
	return &storeMemoryRepo{stores: make(map[string]*Store)}
}

func (r *storeMemoryRepo) CreateStore(ctx context.Context, s *Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *storeMemoryRepo) GetStoreByID(ctx context.Context, id string) (*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, apperr.E(apperr.KindNotFound, "Store not found")
	}
	cp := *s
	return &cp, nil
}

func (r *storeMemoryRepo) ListStores(ctx context.Context) ([]*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Store, 0, len(r.stores))
	for _, s := range r.stores {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *storeMemoryRepo) SetOpen(ctx context.Context, id string, open bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return apperr.E(apperr.KindNotFound, "Store not found")
	}
	s.IsOpen = open
	return nil
}

// productMemoryRepo guards the whole stock table with one lock so a
// reservation's check-then-decrement over a batch of lines is a single
// critical section, and readers never observe a half-committed batch.
type productMemoryRepo struct {
	mu       sync.RWMutex
	products map[string]*Product
}

// NewProductMemoryRepository creates an in-memory product table.
func NewProductMemoryRepository() ProductRepository {
	return &productMemoryRepo{products: make(map[string]*Product)}
}

func (r *productMemoryRepo) CreateProduct(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *productMemoryRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.E(apperr.KindNotFound, "Product not found")
	}
	cp := *p
	return &cp, nil
}

func (r *productMemoryRepo) ListProductsByStore(ctx context.Context, storeID string) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Product
	for _, p := range r.products {
		if p.StoreID == storeID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *productMemoryRepo) SetStock(ctx context.Context, storeID, productID string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok || p.StoreID != storeID {
		return apperr.E(apperr.KindNotFound, "Product not found")
	}
	p.Stock = stock
	return nil
}

func (r *productMemoryRepo) Reserve(ctx context.Context, lines []Line) ([]PriceSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate every line before touching any stock. Quantities are
	// accumulated per product so repeated lines cannot overdraw.
	snapshots := make([]PriceSnapshot, 0, len(lines))
	required := make(map[string]int, len(lines))
	for _, ln := range lines {
		p, ok := r.products[ln.ProductID]
		if !ok {
			return nil, apperr.E(apperr.KindValidation, "Product %s not found", ln.ProductID)
		}
		required[ln.ProductID] += ln.Qty
		if p.Stock < required[ln.ProductID] {
			return nil, apperr.E(apperr.KindConflict,
				"Insufficient stock for %s. Available: %d, Requested: %d", p.Name, p.Stock, required[ln.ProductID])
		}
		snapshots = append(snapshots, PriceSnapshot{ProductID: p.ID, Qty: ln.Qty, Price: p.Price})
	}

	for _, ln := range lines {
		r.products[ln.ProductID].Stock -= ln.Qty
	}
	return snapshots, nil
}

func (r *productMemoryRepo) Release(ctx context.Context, lines []Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ln := range lines {
		if p, ok := r.products[ln.ProductID]; ok {
			p.Stock += ln.Qty
		}
	}
	return nil
}
