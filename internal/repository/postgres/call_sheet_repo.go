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

type callSheetRepo struct {
	db *sqlx.DB
}

// NewCallSheetRepo creates a new PostgreSQL-backed CallSheetRepository.
func NewCallSheetRepo(db *sqlx.DB) port.CallSheetRepository {
	return &callSheetRepo{db: db}
}

func (r *callSheetRepo) Create(ctx context.Context, sheet *domain.CallSheet) error {
	sheet.ID = uuid.New()
	now := time.Now().UTC()
	sheet.CreatedAt = now
	sheet.UpdatedAt = now

	query := `INSERT INTO call_sheets (id, org_id, project_id, shooting_day_id, title, status,
		crew_call_time, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		sheet.ID, sheet.OrgID, sheet.ProjectID, sheet.ShootingDayID, sheet.Title,
		sheet.Status, sheet.CrewCallTime, sheet.Notes, sheet.CreatedBy,
		sheet.CreatedAt, sheet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("callSheetRepo.Create: %w", err)
	}
	return nil
}

func (r *callSheetRepo) GetByID(ctx context.Context, orgID, sheetID uuid.UUID) (*domain.CallSheet, error) {
	var sheet domain.CallSheet
	err := r.db.GetContext(ctx, &sheet,
		"SELECT * FROM call_sheets WHERE id = $1 AND org_id = $2", sheetID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("callSheetRepo.GetByID: %w", err)
	}
	return &sheet, nil
}

func (r *callSheetRepo) ListByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.CallSheet, error) {
	var sheets []domain.CallSheet
	err := r.db.SelectContext(ctx, &sheets,
		"SELECT * FROM call_sheets WHERE org_id = $1 AND project_id = $2 ORDER BY created_at DESC",
		orgID, projectID)
	if err != nil {
		return nil, fmt.Errorf("callSheetRepo.ListByProject: %w", err)
	}
	return sheets, nil
}

func (r *callSheetRepo) Update(ctx context.Context, sheet *domain.CallSheet) error {
	sheet.UpdatedAt = time.Now().UTC()
	query := `UPDATE call_sheets SET title = $1, status = $2, crew_call_time = $3,
		notes = $4, updated_at = $5
		WHERE id = $6 AND org_id = $7`
	result, err := r.db.ExecContext(ctx, query,
		sheet.Title, sheet.Status, sheet.CrewCallTime, sheet.Notes,
		sheet.UpdatedAt, sheet.ID, sheet.OrgID)
	if err != nil {
		return fmt.Errorf("callSheetRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *callSheetRepo) Delete(ctx context.Context, orgID, sheetID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM call_sheets WHERE id = $1 AND org_id = $2", sheetID, orgID)
	if err != nil {
		return fmt.Errorf("callSheetRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
