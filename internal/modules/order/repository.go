package order

import "context"

// Repository defines the order ledger. Orders are append-only: records
// are never deleted and only Claim/Advance mutate them.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)

	ListAll(ctx context.Context) ([]*Order, error)
	ListByStatus(ctx context.Context, status Status) ([]*Order, error)
	ListByConsumer(ctx context.Context, consumerID string) ([]*Order, error)
	ListByStore(ctx context.Context, storeID string) ([]*Order, error)
	ListByDriver(ctx context.Context, driverID string) ([]*Order, error)

	// Claim atomically moves a CREATED order to ACCEPTED and assigns the
	// driver. A non-CREATED order fails the claim; exactly one of any
	// set of concurrent claimers wins.
	Claim(ctx context.Context, id, driverID string) (*Order, error)

	// Advance atomically moves an order from `from` to `to` when the
	// assigned driver matches. The status check and the write are one
	// operation; no other caller can interleave between them.
	Advance(ctx context.Context, id string, from, to Status, driverID string) (*Order, error)
}
