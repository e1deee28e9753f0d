package user

import "context"

// Repository defines consumer profile storage.
type Repository interface {
	Create(ctx context.Context, c *Consumer) error
	GetByID(ctx context.Context, id string) (*Consumer, error)
	List(ctx context.Context) ([]*Consumer, error)
}
