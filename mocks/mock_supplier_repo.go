package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockSupplierRepo is a mock implementation of port.SupplierRepository.
type MockSupplierRepo struct {
	mock.Mock
}

func (m *MockSupplierRepo) Create(ctx context.Context, supplier *domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepo) GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error) {
	args := m.Called(ctx, orgID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepo) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*domain.Supplier, error) {
	args := m.Called(ctx, orgID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, category domain.SupplierCategory, offset, limit int) ([]domain.Supplier, int, error) {
	args := m.Called(ctx, orgID, category, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Supplier), args.Int(1), args.Error(2)
}

func (m *MockSupplierRepo) Update(ctx context.Context, supplier *domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepo) Delete(ctx context.Context, orgID, supplierID uuid.UUID) error {
	args := m.Called(ctx, orgID, supplierID)
	return args.Error(0)
}
