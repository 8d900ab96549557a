package port

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/domain"
)

// ClientRepository defines the contract for client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, orgID, clientID uuid.UUID) (*domain.Client, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, orgID, clientID uuid.UUID) error
}

// CatalogServiceRepository defines the contract for catalog entry persistence.
type CatalogServiceRepository interface {
	Create(ctx context.Context, svc *domain.CatalogService) error
	GetByID(ctx context.Context, orgID, svcID uuid.UUID) (*domain.CatalogService, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.CatalogService, int, error)
	// ListByIDs returns the catalog entries matching ids; unknown ids are
	// silently absent from the result.
	ListByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]domain.CatalogService, error)
	Update(ctx context.Context, svc *domain.CatalogService) error
	Delete(ctx context.Context, orgID, svcID uuid.UUID) error
}

// ProposalRepository defines the contract for proposal persistence.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *domain.Proposal) error
	GetByID(ctx context.Context, orgID, proposalID uuid.UUID) (*domain.Proposal, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, status domain.ProposalStatus, offset, limit int) ([]domain.Proposal, int, error)
	Update(ctx context.Context, proposal *domain.Proposal) error
	Delete(ctx context.Context, orgID, proposalID uuid.UUID) error
	// MarkExpired transitions sent proposals past their validity deadline
	// to expired, returning the number of rows changed.
	MarkExpired(ctx context.Context) (int64, error)
}
