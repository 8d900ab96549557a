package port

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/domain"
)

// ProjectRepository defines the contract for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, orgID, projectID uuid.UUID) (*domain.Project, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Project, int, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, orgID, projectID uuid.UUID) error
}

// ShootingDayRepository defines the contract for shooting day persistence.
type ShootingDayRepository interface {
	Create(ctx context.Context, day *domain.ShootingDay) error
	GetByID(ctx context.Context, orgID, dayID uuid.UUID) (*domain.ShootingDay, error)
	ListByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.ShootingDay, error)
	Update(ctx context.Context, day *domain.ShootingDay) error
	Delete(ctx context.Context, orgID, dayID uuid.UUID) error
}

// CallSheetRepository defines the contract for call sheet persistence.
type CallSheetRepository interface {
	Create(ctx context.Context, sheet *domain.CallSheet) error
	GetByID(ctx context.Context, orgID, sheetID uuid.UUID) (*domain.CallSheet, error)
	ListByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.CallSheet, error)
	Update(ctx context.Context, sheet *domain.CallSheet) error
	Delete(ctx context.Context, orgID, sheetID uuid.UUID) error
}
