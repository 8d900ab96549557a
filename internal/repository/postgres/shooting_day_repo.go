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

type shootingDayRepo struct {
	db *sqlx.DB
}

// NewShootingDayRepo creates a new PostgreSQL-backed ShootingDayRepository.
func NewShootingDayRepo(db *sqlx.DB) port.ShootingDayRepository {
	return &shootingDayRepo{db: db}
}

func (r *shootingDayRepo) Create(ctx context.Context, day *domain.ShootingDay) error {
	day.ID = uuid.New()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now

	query := `INSERT INTO shooting_days (id, org_id, project_id, date, call_time, wrap_time,
		location, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		day.ID, day.OrgID, day.ProjectID, day.Date, day.CallTime, day.WrapTime,
		day.Location, day.Notes, day.CreatedAt, day.UpdatedAt)
	if err != nil {
		return fmt.Errorf("shootingDayRepo.Create: %w", err)
	}
	return nil
}

func (r *shootingDayRepo) GetByID(ctx context.Context, orgID, dayID uuid.UUID) (*domain.ShootingDay, error) {
	var day domain.ShootingDay
	err := r.db.GetContext(ctx, &day,
		"SELECT * FROM shooting_days WHERE id = $1 AND org_id = $2", dayID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("shootingDayRepo.GetByID: %w", err)
	}
	return &day, nil
}

func (r *shootingDayRepo) ListByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.ShootingDay, error) {
	var days []domain.ShootingDay
	err := r.db.SelectContext(ctx, &days,
		"SELECT * FROM shooting_days WHERE org_id = $1 AND project_id = $2 ORDER BY date ASC",
		orgID, projectID)
	if err != nil {
		return nil, fmt.Errorf("shootingDayRepo.ListByProject: %w", err)
	}
	return days, nil
}

func (r *shootingDayRepo) Update(ctx context.Context, day *domain.ShootingDay) error {
	day.UpdatedAt = time.Now().UTC()
	query := `UPDATE shooting_days SET date = $1, call_time = $2, wrap_time = $3,
		location = $4, notes = $5, updated_at = $6
		WHERE id = $7 AND org_id = $8`
	result, err := r.db.ExecContext(ctx, query,
		day.Date, day.CallTime, day.WrapTime, day.Location, day.Notes,
		day.UpdatedAt, day.ID, day.OrgID)
	if err != nil {
		return fmt.Errorf("shootingDayRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *shootingDayRepo) Delete(ctx context.Context, orgID, dayID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM shooting_days WHERE id = $1 AND org_id = $2", dayID, orgID)
	if err != nil {
		return fmt.Errorf("shootingDayRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
