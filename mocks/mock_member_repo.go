package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockMemberRepo is a mock implementation of port.MemberRepository.
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepo) GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*domain.Member, error) {
	args := m.Called(ctx, orgID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepo) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*domain.Member, error) {
	args := m.Called(ctx, orgID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Member, int, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Member), args.Int(1), args.Error(2)
}

func (m *MockMemberRepo) CountActive(ctx context.Context, orgID uuid.UUID) (int, error) {
	args := m.Called(ctx, orgID)
	return args.Int(0), args.Error(1)
}

func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepo) Delete(ctx context.Context, orgID, memberID uuid.UUID) error {
	args := m.Called(ctx, orgID, memberID)
	return args.Error(0)
}
