package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockShootingDayRepo is a mock implementation of port.ShootingDayRepository.
type MockShootingDayRepo struct {
	mock.Mock
}

func (m *MockShootingDayRepo) Create(ctx context.Context, day *domain.ShootingDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *MockShootingDayRepo) GetByID(ctx context.Context, orgID, dayID uuid.UUID) (*domain.ShootingDay, error) {
	args := m.Called(ctx, orgID, dayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShootingDay), args.Error(1)
}

func (m *MockShootingDayRepo) ListByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.ShootingDay, error) {
	args := m.Called(ctx, orgID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShootingDay), args.Error(1)
}

func (m *MockShootingDayRepo) Update(ctx context.Context, day *domain.ShootingDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *MockShootingDayRepo) Delete(ctx context.Context, orgID, dayID uuid.UUID) error {
	args := m.Called(ctx, orgID, dayID)
	return args.Error(0)
}
