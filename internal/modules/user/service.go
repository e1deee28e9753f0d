package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mercadito/mercadito-backend/internal/apperr"
	"github.com/mercadito/mercadito-backend/internal/modules/auth"
)

// Service defines consumer profile business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Consumer, error)
	Login(ctx context.Context, username, password string) (*Consumer, string, error)
	Get(ctx context.Context, id string) (*Consumer, error)
	List(ctx context.Context) ([]*Consumer, error)
}

type service struct {
	repo Repository
	auth auth.Service
}

// NewService creates a new consumer service.
func NewService(repo Repository, authService auth.Service) Service {
	return &service{repo: repo, auth: authService}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Consumer, error) {
	if strings.TrimSpace(req.Name) == "" || req.Username == "" || req.Password == "" {
		return nil, apperr.E(apperr.KindValidation, "Missing required fields")
	}
	c := &Consumer{
		ID:       uuid.NewString(),
		Role:     "consumer",
		Name:     req.Name,
		Address:  req.Address,
		Username: req.Username,
	}
	if err := s.auth.Register(ctx, auth.ScopeConsumer, c.ID, req.Username, req.Password); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*Consumer, string, error) {
	token, identity, err := s.auth.Login(ctx, auth.ScopeConsumer, username, password)
	if err != nil {
		return nil, "", err
	}
	c, err := s.repo.GetByID(ctx, identity.SubjectID)
	if err != nil {
		return nil, "", err
	}
	return c, token, nil
}

func (s *service) Get(ctx context.Context, id string) (*Consumer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Consumer, error) {
	return s.repo.List(ctx)
}
