package driver

import "context"

// Repository defines driver profile storage.
type Repository interface {
	Create(ctx context.Context, d *Driver) error
	GetByID(ctx context.Context, id string) (*Driver, error)
}
