package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

// TokenHeader is the custom header carrying the opaque bearer token.
const TokenHeader = "x-auth-token"

type contextKey struct{}

// IdentityFrom returns the identity a scope middleware stored on the request.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

func withIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextKey{}, id))
}

func resolveRequest(service Service, w http.ResponseWriter, r *http.Request) (Identity, bool) {
	token := r.Header.Get(TokenHeader)
	if token == "" {
		deny(w, apperr.E(apperr.KindUnauthenticated, "Missing auth token"))
		return Identity{}, false
	}
	identity, err := service.Resolve(r.Context(), token)
	if err != nil {
		deny(w, err)
		return Identity{}, false
	}
	return identity, true
}

// RequireStore guards store-scoped routes. It must be mounted below a
// route segment that binds the {id} store parameter.
func RequireStore(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := resolveRequest(service, w, r)
			if !ok {
				return
			}
			if err := service.RequireStoreScope(identity, chi.URLParam(r, "id")); err != nil {
				deny(w, err)
				return
			}
			next.ServeHTTP(w, withIdentity(r, identity))
		})
	}
}

// RequireDriver guards driver-scoped routes.
func RequireDriver(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := resolveRequest(service, w, r)
			if !ok {
				return
			}
			if _, err := service.RequireDriverScope(identity); err != nil {
				deny(w, err)
				return
			}
			next.ServeHTTP(w, withIdentity(r, identity))
		})
	}
}

func deny(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.Status(err))
	json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}
