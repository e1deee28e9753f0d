package auth

import "context"

// Service resolves bearer tokens to identities and enforces scope. It is
// the single authority consulted before any state-mutating operation.
type Service interface {
	// Register stores a credential for a subject under the given scope.
	Register(ctx context.Context, scope Scope, subjectID, username, password string) error

	// Login verifies a credential and issues a bearer token for it.
	Login(ctx context.Context, scope Scope, username, password string) (string, Identity, error)

	// Resolve maps a bearer token to the identity it was issued for.
	Resolve(ctx context.Context, token string) (Identity, error)

	// RequireStoreScope fails unless the identity is bound to storeID.
	RequireStoreScope(identity Identity, storeID string) error

	// RequireDriverScope fails unless the identity is driver-scoped,
	// returning the bound driver id.
	RequireDriverScope(identity Identity) (string, error)
}
