package port

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/domain"
)

// OrganizationRepository defines the contract for organization persistence.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
}

// MemberRepository defines the contract for member persistence.
// All query methods include orgID to enforce organization isolation at
// the data layer.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*domain.Member, error)
	GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*domain.Member, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Member, int, error)
	CountActive(ctx context.Context, orgID uuid.UUID) (int, error)
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, orgID, memberID uuid.UUID) error
}
