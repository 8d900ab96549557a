package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockCatalogRepo is a mock implementation of port.CatalogServiceRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) Create(ctx context.Context, svc *domain.CatalogService) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *MockCatalogRepo) GetByID(ctx context.Context, orgID, svcID uuid.UUID) (*domain.CatalogService, error) {
	args := m.Called(ctx, orgID, svcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogService), args.Error(1)
}

func (m *MockCatalogRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.CatalogService, int, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CatalogService), args.Int(1), args.Error(2)
}

func (m *MockCatalogRepo) ListByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]domain.CatalogService, error) {
	args := m.Called(ctx, orgID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogService), args.Error(1)
}

func (m *MockCatalogRepo) Update(ctx context.Context, svc *domain.CatalogService) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *MockCatalogRepo) Delete(ctx context.Context, orgID, svcID uuid.UUID) error {
	args := m.Called(ctx, orgID, svcID)
	return args.Error(0)
}
