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

type projectRepo struct {
	db *sqlx.DB
}

// NewProjectRepo creates a new PostgreSQL-backed ProjectRepository.
func NewProjectRepo(db *sqlx.DB) port.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *domain.Project) error {
	project.ID = uuid.New()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	query := `INSERT INTO projects (id, org_id, client_id, proposal_id, name, status,
		budget_cents, start_date, end_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.OrgID, project.ClientID, project.ProposalID, project.Name,
		project.Status, project.BudgetCents, project.StartDate, project.EndDate,
		project.CreatedBy, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("projectRepo.Create: %w", err)
	}
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, orgID, projectID uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.GetContext(ctx, &project,
		"SELECT * FROM projects WHERE id = $1 AND org_id = $2", projectID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("projectRepo.GetByID: %w", err)
	}
	return &project, nil
}

func (r *projectRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Project, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM projects WHERE org_id = $1", orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("projectRepo.ListByOrg count: %w", err)
	}

	var projects []domain.Project
	err = r.db.SelectContext(ctx, &projects,
		"SELECT * FROM projects WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("projectRepo.ListByOrg: %w", err)
	}
	return projects, total, nil
}

func (r *projectRepo) Update(ctx context.Context, project *domain.Project) error {
	project.UpdatedAt = time.Now().UTC()
	query := `UPDATE projects SET name = $1, status = $2, budget_cents = $3,
		start_date = $4, end_date = $5, updated_at = $6
		WHERE id = $7 AND org_id = $8`
	result, err := r.db.ExecContext(ctx, query,
		project.Name, project.Status, project.BudgetCents, project.StartDate,
		project.EndDate, project.UpdatedAt, project.ID, project.OrgID)
	if err != nil {
		return fmt.Errorf("projectRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, orgID, projectID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM projects WHERE id = $1 AND org_id = $2", projectID, orgID)
	if err != nil {
		return fmt.Errorf("projectRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
