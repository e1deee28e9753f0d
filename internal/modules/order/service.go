package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mercadito/mercadito-backend/internal/apperr"
	"github.com/mercadito/mercadito-backend/internal/modules/catalog"
)

// Inventory is the slice of the catalog the coordinator needs: the
// atomic reserve and its compensating release.
type Inventory interface {
	Reserve(ctx context.Context, lines []catalog.Line) ([]catalog.PriceSnapshot, error)
	Release(ctx context.Context, lines []catalog.Line) error
}

// Service defines the order ledger business logic.
type Service interface {
	// PlaceOrder reserves stock for the cart and appends a CREATED order,
	// as one observable unit: either both happen or neither does.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	GetOrder(ctx context.Context, id string) (*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	ListAvailable(ctx context.Context) ([]*Order, error)
	ListByConsumer(ctx context.Context, consumerID string) ([]*Order, error)
	ListByStore(ctx context.Context, storeID string) ([]*Order, error)
	ListByDriver(ctx context.Context, driverID string) ([]*Order, error)

	// Accept claims a CREATED order for a driver. Retrying a claim on an
	// already-claimed order fails; no order ever has two drivers.
	Accept(ctx context.Context, id, driverID string) (*Order, error)

	// Pickup and Deliver advance the order; only the assigned driver may.
	Pickup(ctx context.Context, id, driverID string) (*Order, error)
	Deliver(ctx context.Context, id, driverID string) (*Order, error)
}

type service struct {
	repo      Repository
	inventory Inventory
}

// NewService creates a new order service.
func NewService(repo Repository, inventory Inventory) Service {
	return &service{repo: repo, inventory: inventory}
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.E(apperr.KindValidation, "Order must contain at least one item")
	}
	if req.ConsumerID == "" || req.StoreID == "" {
		return nil, apperr.E(apperr.KindValidation, "Missing required fields")
	}

	lines := make([]catalog.Line, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Qty <= 0 {
			return nil, apperr.E(apperr.KindValidation, "Quantity must be > 0 for product %s", item.ProductID)
		}
		lines = append(lines, catalog.Line{ProductID: item.ProductID, Qty: item.Qty})
	}

	snapshots, err := s.inventory.Reserve(ctx, lines)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(snapshots))
	for _, snap := range snapshots {
		items = append(items, Item{ProductID: snap.ProductID, Qty: snap.Qty, Price: snap.Price})
	}
	now := time.Now().UTC()
	o := &Order{
		ID:         uuid.NewString(),
		ConsumerID: req.ConsumerID,
		StoreID:    req.StoreID,
		Items:      items,
		Address:    req.Address,
		Payment:    req.Payment,
		Status:     StatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		// Stock was already debited; put it back before failing so no
		// reservation exists without a ledger entry.
		_ = s.inventory.Release(ctx, lines)
		return nil, err
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListAvailable(ctx context.Context) ([]*Order, error) {
	return s.repo.ListByStatus(ctx, StatusCreated)
}

func (s *service) ListByConsumer(ctx context.Context, consumerID string) ([]*Order, error) {
	return s.repo.ListByConsumer(ctx, consumerID)
}

func (s *service) ListByStore(ctx context.Context, storeID string) ([]*Order, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func (s *service) ListByDriver(ctx context.Context, driverID string) ([]*Order, error) {
	return s.repo.ListByDriver(ctx, driverID)
}

func (s *service) Accept(ctx context.Context, id, driverID string) (*Order, error) {
	return s.repo.Claim(ctx, id, driverID)
}

func (s *service) Pickup(ctx context.Context, id, driverID string) (*Order, error) {
	return s.repo.Advance(ctx, id, StatusAccepted, StatusPickedUp, driverID)
}

func (s *service) Deliver(ctx context.Context, id, driverID string) (*Order, error) {
	return s.repo.Advance(ctx, id, StatusPickedUp, StatusDelivered, driverID)
}
