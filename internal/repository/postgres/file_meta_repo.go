package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"setflow/internal/domain"
	"setflow/internal/port"
)

type fileMetaRepo struct {
	db *sqlx.DB
}

// NewFileMetaRepo creates a new PostgreSQL-backed FileMetaRepository.
func NewFileMetaRepo(db *sqlx.DB) port.FileMetaRepository {
	return &fileMetaRepo{db: db}
}

func (r *fileMetaRepo) Create(ctx context.Context, meta *domain.FileMeta) error {
	// The id doubles as part of the S3 key, so the caller may pre-assign it.
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	now := time.Now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	query := `INSERT INTO file_metas (id, org_id, call_sheet_id, uploaded_by, file_name,
		original_name, file_type, file_size, s3_bucket, s3_key, content_type, status,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		meta.ID, meta.OrgID, meta.CallSheetID, meta.UploadedBy, meta.FileName,
		meta.OriginalName, meta.FileType, meta.FileSize, meta.S3Bucket, meta.S3Key,
		meta.ContentType, meta.Status, meta.CreatedAt, meta.UpdatedAt)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.Create: %w", err)
	}
	return nil
}

func (r *fileMetaRepo) GetByID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.FileMeta, error) {
	var meta domain.FileMeta
	err := r.db.GetContext(ctx, &meta,
		"SELECT * FROM file_metas WHERE id = $1 AND org_id = $2", fileID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fileMetaRepo.GetByID: %w", err)
	}
	return &meta, nil
}

func (r *fileMetaRepo) ListByCallSheet(ctx context.Context, orgID, callSheetID uuid.UUID) ([]domain.FileMeta, error) {
	var metas []domain.FileMeta
	err := r.db.SelectContext(ctx, &metas,
		"SELECT * FROM file_metas WHERE org_id = $1 AND call_sheet_id = $2 ORDER BY created_at DESC",
		orgID, callSheetID)
	if err != nil {
		return nil, fmt.Errorf("fileMetaRepo.ListByCallSheet: %w", err)
	}
	return metas, nil
}

func (r *fileMetaRepo) UpdateStatus(ctx context.Context, orgID, fileID uuid.UUID, status domain.FileStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE file_metas SET status = $1, updated_at = NOW() WHERE id = $2 AND org_id = $3",
		status, fileID, orgID)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *fileMetaRepo) Delete(ctx context.Context, orgID, fileID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM file_metas WHERE id = $1 AND org_id = $2", fileID, orgID)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
