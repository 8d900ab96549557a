package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockNotificationRepo is a mock implementation of port.NotificationRepository.
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) ListByMember(ctx context.Context, orgID, memberID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, orgID, memberID, unreadOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, orgID, memberID, notificationID uuid.UUID) error {
	args := m.Called(ctx, orgID, memberID, notificationID)
	return args.Error(0)
}
