package product

import (
	"context"

	"supplement-storefront/internal/domain"
	productrepo "supplement-storefront/internal/repository/product"
)

// Service exposes the read-only product catalog.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}
