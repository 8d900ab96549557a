package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
	"setflow/internal/service"
)

// MockInviteService is a mock implementation of service.InviteService.
type MockInviteService struct {
	mock.Mock
}

func (m *MockInviteService) Create(ctx context.Context, actor *service.Claims, input service.CreateInviteInput) (*service.InviteOutput, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InviteOutput), args.Error(1)
}

func (m *MockInviteService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invite, int, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invite), args.Int(1), args.Error(2)
}

func (m *MockInviteService) Resend(ctx context.Context, actor *service.Claims, inviteID uuid.UUID) (*service.InviteOutput, error) {
	args := m.Called(ctx, actor, inviteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InviteOutput), args.Error(1)
}

func (m *MockInviteService) Revoke(ctx context.Context, actor *service.Claims, inviteID uuid.UUID) (*domain.Invite, error) {
	args := m.Called(ctx, actor, inviteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invite), args.Error(1)
}

func (m *MockInviteService) Accept(ctx context.Context, input service.AcceptInviteInput) (*domain.Member, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
