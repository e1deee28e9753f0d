package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type tokenClaims struct {
	Scope string `json:"scope"`
	jwt.StandardClaims
}

type service struct {
	repo   Repository
	secret []byte
}

// NewService creates a new auth service signing tokens with secret.
func NewService(repo Repository, secret []byte) Service {
	return &service{repo: repo, secret: secret}
}

func (s *service) Register(ctx context.Context, scope Scope, subjectID, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.CreateAccount(ctx, &Account{
		ID:           uuid.NewString(),
		Scope:        scope,
		SubjectID:    subjectID,
		Username:     username,
		PasswordHash: string(hash),
	})
}

func (s *service) Login(ctx context.Context, scope Scope, username, password string) (string, Identity, error) {
	account, err := s.repo.GetByUsername(ctx, scope, username)
	if err != nil {
		return "", Identity{}, apperr.E(apperr.KindUnauthenticated, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", Identity{}, apperr.E(apperr.KindUnauthenticated, "Invalid credentials")
	}

	claims := &tokenClaims{
		Scope: string(account.Scope),
		StandardClaims: jwt.StandardClaims{
			Id:        account.ID,
			Subject:   account.SubjectID,
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", Identity{}, err
	}
	identity := Identity{AccountID: account.ID, Scope: account.Scope, SubjectID: account.SubjectID}
	return signed, identity, nil
}

func (s *service) Resolve(ctx context.Context, token string) (Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.E(apperr.KindUnauthenticated, "Invalid auth token")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, apperr.E(apperr.KindUnauthenticated, "Invalid auth token")
	}
	return Identity{
		AccountID: claims.Id,
		Scope:     Scope(claims.Scope),
		SubjectID: claims.Subject,
	}, nil
}

func (s *service) RequireStoreScope(identity Identity, storeID string) error {
	if identity.Scope != ScopeStore || identity.SubjectID != storeID {
		return apperr.E(apperr.KindForbidden, "Forbidden for this store")
	}
	return nil
}

func (s *service) RequireDriverScope(identity Identity) (string, error) {
	if identity.Scope != ScopeDriver {
		return "", apperr.E(apperr.KindForbidden, "Driver authentication required")
	}
	return identity.SubjectID, nil
}
