package auth

import "context"

// Repository defines credential storage. Usernames are unique per scope.
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetByUsername(ctx context.Context, scope Scope, username string) (*Account, error)
}
