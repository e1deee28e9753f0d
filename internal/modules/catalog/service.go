package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

// Service defines catalog business logic for stores, products, and stock.
type Service interface {
	// Store operations
	CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error)
	GetStore(ctx context.Context, id string) (*StoreWithProducts, error)
	ListStores(ctx context.Context) ([]*Store, error)
	ToggleOpen(ctx context.Context, id string) (*Store, error)

	// Product operations
	CreateProduct(ctx context.Context, storeID string, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	SetStock(ctx context.Context, storeID, productID string, stock int) (*Product, error)
	GetAvailability(ctx context.Context, productID string) (*Availability, error)

	// Reservation primitives used by order placement.
	Reserve(ctx context.Context, lines []Line) ([]PriceSnapshot, error)
	Release(ctx context.Context, lines []Line) error
}

type service struct {
	storeRepo   StoreRepository
	productRepo ProductRepository
}

// NewService creates a new catalog service.
func NewService(storeRepo StoreRepository, productRepo ProductRepository) Service {
	return &service{storeRepo: storeRepo, productRepo: productRepo}
}

func (s *service) CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.E(apperr.KindValidation, "Missing required fields")
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	store := &Store{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		IsOpen:      true,
	}
	if err := s.storeRepo.CreateStore(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *service) GetStore(ctx context.Context, id string) (*StoreWithProducts, error) {
	store, err := s.storeRepo.GetStoreByID(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListProductsByStore(ctx, id)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*Product{}
	}
	return &StoreWithProducts{Store: *store, Products: products}, nil
}

func (s *service) ListStores(ctx context.Context) ([]*Store, error) {
	return s.storeRepo.ListStores(ctx)
}

func (s *service) ToggleOpen(ctx context.Context, id string) (*Store, error) {
	store, err := s.storeRepo.GetStoreByID(ctx, id)
	if err != nil {
		return nil, err
	}
	store.IsOpen = !store.IsOpen
	if err := s.storeRepo.SetOpen(ctx, id, store.IsOpen); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *service) CreateProduct(ctx context.Context, storeID string, req CreateProductRequest) (*Product, error) {
	if _, err := s.storeRepo.GetStoreByID(ctx, storeID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || req.Price <= 0 || req.Stock < 0 {
		return nil, apperr.E(apperr.KindValidation, "Missing required fields: name, price, stock")
	}
	p := &Product{
		ID:      uuid.NewString(),
		StoreID: storeID,
		Name:    req.Name,
		Price:   req.Price,
		Stock:   req.Stock,
	}
	if err := s.productRepo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.productRepo.GetProductByID(ctx, id)
}

func (s *service) SetStock(ctx context.Context, storeID, productID string, stock int) (*Product, error) {
	if stock < 0 {
		return nil, apperr.E(apperr.KindValidation, "Stock must be non-negative")
	}
	if _, err := s.storeRepo.GetStoreByID(ctx, storeID); err != nil {
		return nil, err
	}
	if err := s.productRepo.SetStock(ctx, storeID, productID, stock); err != nil {
		return nil, err
	}
	return s.productRepo.GetProductByID(ctx, productID)
}

func (s *service) GetAvailability(ctx context.Context, productID string) (*Availability, error) {
	p, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &Availability{ProductID: p.ID, Stock: p.Stock, Available: p.Stock > 0}, nil
}

func (s *service) Reserve(ctx context.Context, lines []Line) ([]PriceSnapshot, error) {
	return s.productRepo.Reserve(ctx, lines)
}

func (s *service) Release(ctx context.Context, lines []Line) error {
	return s.productRepo.Release(ctx, lines)
}
