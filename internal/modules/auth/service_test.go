package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

func newTestService() Service {
	return NewService(NewMemoryRepository(), []byte("test-secret"))
}

func TestRegisterLoginResolve(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, ScopeStore, "s1", "bodega", "123"))

	token, identity, err := svc.Login(ctx, ScopeStore, "bodega", "123")
	require.NoError(t, err)
	assert.Equal(t, ScopeStore, identity.Scope)
	assert.Equal(t, "s1", identity.SubjectID)

	resolved, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, identity.Scope, resolved.Scope)
	assert.Equal(t, identity.SubjectID, resolved.SubjectID)
	assert.Equal(t, "s1", resolved.StoreID())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, ScopeDriver, "d1", "bob", "123"))

	_, _, err := svc.Login(ctx, ScopeDriver, "bob", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	_, _, err = svc.Login(ctx, ScopeDriver, "nobody", "123")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestLogin_ScopeIsolation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, ScopeConsumer, "u1", "alice", "123"))

	// Same username under a different scope is a different account.
	_, _, err := svc.Login(ctx, ScopeDriver, "alice", "123")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, ScopeConsumer, "u1", "alice", "123"))

	err := svc.Register(ctx, ScopeConsumer, "u2", "alice", "456")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// A different scope may reuse the username.
	assert.NoError(t, svc.Register(ctx, ScopeStore, "s1", "alice", "789"))
}

func TestResolve_InvalidToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Resolve(ctx, token)
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	}
}

func TestResolve_WrongSigningKey(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	issuer := NewService(repo, []byte("key-a"))
	verifier := NewService(repo, []byte("key-b"))

	require.NoError(t, issuer.Register(ctx, ScopeDriver, "d1", "bob", "123"))
	token, _, err := issuer.Login(ctx, ScopeDriver, "bob", "123")
	require.NoError(t, err)

	_, err = verifier.Resolve(ctx, token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestScopeChecks(t *testing.T) {
	svc := newTestService()

	storeIdentity := Identity{Scope: ScopeStore, SubjectID: "s1"}
	driverIdentity := Identity{Scope: ScopeDriver, SubjectID: "d1"}

	assert.NoError(t, svc.RequireStoreScope(storeIdentity, "s1"))

	err := svc.RequireStoreScope(storeIdentity, "s2")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = svc.RequireStoreScope(driverIdentity, "s1")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	driverID, err := svc.RequireDriverScope(driverIdentity)
	require.NoError(t, err)
	assert.Equal(t, "d1", driverID)

	_, err = svc.RequireDriverScope(storeIdentity)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
