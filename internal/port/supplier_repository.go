package port

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/domain"
)

// SupplierRepository defines the contract for supplier persistence.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error)
	GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*domain.Supplier, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, category domain.SupplierCategory, offset, limit int) ([]domain.Supplier, int, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, orgID, supplierID uuid.UUID) error
}

// NotificationRepository defines the contract for notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByMember(ctx context.Context, orgID, memberID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error)
	MarkRead(ctx context.Context, orgID, memberID, notificationID uuid.UUID) error
}
