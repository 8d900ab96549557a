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

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogServiceRepo creates a new PostgreSQL-backed CatalogServiceRepository.
func NewCatalogServiceRepo(db *sqlx.DB) port.CatalogServiceRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) Create(ctx context.Context, svc *domain.CatalogService) error {
	svc.ID = uuid.New()
	now := time.Now().UTC()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	query := `INSERT INTO catalog_services (id, org_id, name, description, rate_cents, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		svc.ID, svc.OrgID, svc.Name, svc.Description, svc.RateCents, svc.IsActive,
		svc.CreatedAt, svc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("catalogRepo.Create: %w", err)
	}
	return nil
}

func (r *catalogRepo) GetByID(ctx context.Context, orgID, svcID uuid.UUID) (*domain.CatalogService, error) {
	var svc domain.CatalogService
	err := r.db.GetContext(ctx, &svc,
		"SELECT * FROM catalog_services WHERE id = $1 AND org_id = $2", svcID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("catalogRepo.GetByID: %w", err)
	}
	return &svc, nil
}

func (r *catalogRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.CatalogService, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM catalog_services WHERE org_id = $1", orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("catalogRepo.ListByOrg count: %w", err)
	}

	var services []domain.CatalogService
	err = r.db.SelectContext(ctx, &services,
		"SELECT * FROM catalog_services WHERE org_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3",
		orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("catalogRepo.ListByOrg: %w", err)
	}
	return services, total, nil
}

func (r *catalogRepo) ListByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]domain.CatalogService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT * FROM catalog_services WHERE org_id = ? AND id IN (?)", orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.ListByIDs building query: %w", err)
	}
	query = r.db.Rebind(query)

	var services []domain.CatalogService
	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, fmt.Errorf("catalogRepo.ListByIDs: %w", err)
	}
	return services, nil
}

func (r *catalogRepo) Update(ctx context.Context, svc *domain.CatalogService) error {
	svc.UpdatedAt = time.Now().UTC()
	query := `UPDATE catalog_services SET name = $1, description = $2, rate_cents = $3,
		is_active = $4, updated_at = $5
		WHERE id = $6 AND org_id = $7`
	result, err := r.db.ExecContext(ctx, query,
		svc.Name, svc.Description, svc.RateCents, svc.IsActive,
		svc.UpdatedAt, svc.ID, svc.OrgID)
	if err != nil {
		return fmt.Errorf("catalogRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *catalogRepo) Delete(ctx context.Context, orgID, svcID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM catalog_services WHERE id = $1 AND org_id = $2", svcID, orgID)
	if err != nil {
		return fmt.Errorf("catalogRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
