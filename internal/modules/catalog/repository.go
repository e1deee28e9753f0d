package catalog

import "context"

// StoreRepository defines store data storage.
type StoreRepository interface {
	CreateStore(ctx context.Context, s *Store) error
	GetStoreByID(ctx context.Context, id string) (*Store, error)
	ListStores(ctx context.Context) ([]*Store, error)
	SetOpen(ctx context.Context, id string, open bool) error
}

// ProductRepository defines product data storage and the atomic
// reservation primitive.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProductByID(ctx context.Context, id string) (*Product, error)
	ListProductsByStore(ctx context.Context, storeID string) ([]*Product, error)
	SetStock(ctx context.Context, storeID, productID string, stock int) error

	// Reserve verifies stock for every line against one consistent
	// snapshot and, only if all pass, decrements every line. On any
	// failure nothing is altered and the first failing line is reported.
	Reserve(ctx context.Context, lines []Line) ([]PriceSnapshot, error)

	// Release restores previously reserved stock (compensating rollback).
	Release(ctx context.Context, lines []Line) error
}
