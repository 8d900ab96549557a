package service

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/domain"
	"setflow/internal/port"
)

// NotificationService defines the in-app notification contract.
type NotificationService interface {
	List(ctx context.Context, orgID, memberID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error)
	MarkRead(ctx context.Context, orgID, memberID, notificationID uuid.UUID) error
}

type notificationService struct {
	repo port.NotificationRepository
}

// NewNotificationService creates a new NotificationService implementation.
func NewNotificationService(repo port.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, orgID, memberID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error) {
	return s.repo.ListByMember(ctx, orgID, memberID, unreadOnly, offset, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, orgID, memberID, notificationID uuid.UUID) error {
	return s.repo.MarkRead(ctx, orgID, memberID, notificationID)
}
