package port

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/domain"
)

// FileMetaRepository defines the contract for attachment metadata persistence.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.FileMeta, error)
	ListByCallSheet(ctx context.Context, orgID, callSheetID uuid.UUID) ([]domain.FileMeta, error)
	UpdateStatus(ctx context.Context, orgID, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, orgID, fileID uuid.UUID) error
}
