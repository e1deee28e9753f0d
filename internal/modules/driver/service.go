package driver

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mercadito/mercadito-backend/internal/apperr"
	"github.com/mercadito/mercadito-backend/internal/modules/auth"
)

// Service defines driver profile business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Driver, error)
	Login(ctx context.Context, username, password string) (*Driver, string, error)
	Get(ctx context.Context, id string) (*Driver, error)
}

type service struct {
	repo Repository
	auth auth.Service
}

// NewService creates a new driver service.
func NewService(repo Repository, authService auth.Service) Service {
	return &service{repo: repo, auth: authService}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Driver, error) {
	if strings.TrimSpace(req.Name) == "" || req.Username == "" || req.Password == "" {
		return nil, apperr.E(apperr.KindValidation, "Missing required fields")
	}
	d := &Driver{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Phone:    req.Phone,
		Vehicle:  req.Vehicle,
		Username: req.Username,
	}
	if err := s.auth.Register(ctx, auth.ScopeDriver, d.ID, req.Username, req.Password); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*Driver, string, error) {
	token, identity, err := s.auth.Login(ctx, auth.ScopeDriver, username, password)
	if err != nil {
		return nil, "", err
	}
	d, err := s.repo.GetByID(ctx, identity.SubjectID)
	if err != nil {
		return nil, "", err
	}
	return d, token, nil
}

func (s *service) Get(ctx context.Context, id string) (*Driver, error) {
	return s.repo.GetByID(ctx, id)
}
