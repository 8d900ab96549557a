package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockCallSheetRepo is a mock implementation of port.CallSheetRepository.
type MockCallSheetRepo struct {
	mock.Mock
}

func (m *MockCallSheetRepo) Create(ctx context.Context, sheet *domain.CallSheet) error {
	args := m.Called(ctx, sheet)
	return args.Error(0)
}

func (m *MockCallSheetRepo) GetByID(ctx context.Context, orgID, sheetID uuid.UUID) (*domain.CallSheet, error) {
	args := m.Called(ctx, orgID, sheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CallSheet), args.Error(1)
}

func (m *MockCallSheetRepo) ListByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.CallSheet, error) {
	args := m.Called(ctx, orgID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CallSheet), args.Error(1)
}

func (m *MockCallSheetRepo) Update(ctx context.Context, sheet *domain.CallSheet) error {
	args := m.Called(ctx, sheet)
	return args.Error(0)
}

func (m *MockCallSheetRepo) Delete(ctx context.Context, orgID, sheetID uuid.UUID) error {
	args := m.Called(ctx, orgID, sheetID)
	return args.Error(0)
}
