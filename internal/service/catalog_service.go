package service

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/cache"
	"setflow/internal/domain"
	"setflow/internal/port"
)

// CreateCatalogServiceInput is the DTO for creating a catalog entry.
// Rate is a decimal string; malformed values parse to zero.
type CreateCatalogServiceInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Rate        string `json:"rate" binding:"required"`
}

// UpdateCatalogServiceInput is the DTO for updating a catalog entry.
type UpdateCatalogServiceInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Rate        *string `json:"rate"`
	IsActive    *bool   `json:"is_active"`
}

// CatalogService defines the service catalog management contract.
type CatalogService interface {
	Create(ctx context.Context, orgID uuid.UUID, input CreateCatalogServiceInput) (*domain.CatalogService, error)
	GetByID(ctx context.Context, orgID, svcID uuid.UUID) (*domain.CatalogService, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.CatalogService, int, error)
	Update(ctx context.Context, orgID, svcID uuid.UUID, input UpdateCatalogServiceInput) (*domain.CatalogService, error)
	Delete(ctx context.Context, orgID, svcID uuid.UUID) error
}

type catalogService struct {
	repo  port.CatalogServiceRepository
	store *cache.Store
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(repo port.CatalogServiceRepository, store *cache.Store) CatalogService {
	return &catalogService{repo: repo, store: store}
}

func (s *catalogService) Create(ctx context.Context, orgID uuid.UUID, input CreateCatalogServiceInput) (*domain.CatalogService, error) {
	svc := &domain.CatalogService{
		OrgID:       orgID,
		Name:        input.Name,
		Description: input.Description,
		RateCents:   domain.ParseAmount(input.Rate),
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.store.Invalidate(orgID, cache.MutationCatalogWrite)
	return svc, nil
}

func (s *catalogService) GetByID(ctx context.Context, orgID, svcID uuid.UUID) (*domain.CatalogService, error) {
	return s.repo.GetByID(ctx, orgID, svcID)
}

func (s *catalogService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.CatalogService, int, error) {
	return s.repo.ListByOrg(ctx, orgID, offset, limit)
}

func (s *catalogService) Update(ctx context.Context, orgID, svcID uuid.UUID, input UpdateCatalogServiceInput) (*domain.CatalogService, error) {
	svc, err := s.repo.GetByID(ctx, orgID, svcID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		svc.Name = *input.Name
	}
	if input.Description != nil {
		svc.Description = *input.Description
	}
	if input.Rate != nil {
		svc.RateCents = domain.ParseAmount(*input.Rate)
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.store.Invalidate(orgID, cache.MutationCatalogWrite)
	return svc, nil
}

func (s *catalogService) Delete(ctx context.Context, orgID, svcID uuid.UUID) error {
	if err := s.repo.Delete(ctx, orgID, svcID); err != nil {
		return err
	}
	s.store.Invalidate(orgID, cache.MutationCatalogWrite)
	return nil
}
