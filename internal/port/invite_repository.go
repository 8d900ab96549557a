package port

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/domain"
)

// InviteRepository defines the contract for invite persistence.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	GetByID(ctx context.Context, orgID, inviteID uuid.UUID) (*domain.Invite, error)
	GetPendingByEmail(ctx context.Context, orgID uuid.UUID, email string) (*domain.Invite, error)
	// GetByTokenHash looks an invite up across organizations; acceptance
	// happens before the invitee has any org context.
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Invite, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invite, int, error)
	CountPending(ctx context.Context, orgID uuid.UUID) (int, error)
	Update(ctx context.Context, invite *domain.Invite) error
	// MarkExpired transitions every pending invite past its expiry to
	// expired and returns how many rows changed.
	MarkExpired(ctx context.Context) (int64, error)
}
