package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockProposalRepo is a mock implementation of port.ProposalRepository.
type MockProposalRepo struct {
	mock.Mock
}

func (m *MockProposalRepo) Create(ctx context.Context, proposal *domain.Proposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalRepo) GetByID(ctx context.Context, orgID, proposalID uuid.UUID) (*domain.Proposal, error) {
	args := m.Called(ctx, orgID, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}

func (m *MockProposalRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, status domain.ProposalStatus, offset, limit int) ([]domain.Proposal, int, error) {
	args := m.Called(ctx, orgID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Proposal), args.Int(1), args.Error(2)
}

func (m *MockProposalRepo) Update(ctx context.Context, proposal *domain.Proposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalRepo) MarkExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProposalRepo) Delete(ctx context.Context, orgID, proposalID uuid.UUID) error {
	args := m.Called(ctx, orgID, proposalID)
	return args.Error(0)
}
