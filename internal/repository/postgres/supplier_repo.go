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

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *domain.Supplier) error {
	supplier.ID = uuid.New()
	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	query := `INSERT INTO suppliers (id, org_id, name, category, email, phone, profile_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		supplier.ID, supplier.OrgID, supplier.Name, supplier.Category, supplier.Email,
		supplier.Phone, supplier.ProfileID, supplier.Notes, supplier.CreatedAt, supplier.UpdatedAt)
	if err != nil {
		return fmt.Errorf("supplierRepo.Create: %w", err)
	}
	return nil
}

func (r *supplierRepo) GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.GetContext(ctx, &supplier,
		"SELECT * FROM suppliers WHERE id = $1 AND org_id = $2", supplierID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByID: %w", err)
	}
	return &supplier, nil
}

func (r *supplierRepo) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.GetContext(ctx, &supplier,
		"SELECT * FROM suppliers WHERE org_id = $1 AND email = $2", orgID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByEmail: %w", err)
	}
	return &supplier, nil
}

func (r *supplierRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, category domain.SupplierCategory, offset, limit int) ([]domain.Supplier, int, error) {
	countQuery := "SELECT COUNT(*) FROM suppliers WHERE org_id = $1"
	listQuery := "SELECT * FROM suppliers WHERE org_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3"
	countArgs := []interface{}{orgID}
	listArgs := []interface{}{orgID, limit, offset}

	if category != "" {
		countQuery = "SELECT COUNT(*) FROM suppliers WHERE org_id = $1 AND category = $2"
		listQuery = "SELECT * FROM suppliers WHERE org_id = $1 AND category = $2 ORDER BY name ASC LIMIT $3 OFFSET $4"
		countArgs = []interface{}{orgID, category}
		listArgs = []interface{}{orgID, category, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.ListByOrg count: %w", err)
	}

	var suppliers []domain.Supplier
	if err := r.db.SelectContext(ctx, &suppliers, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.ListByOrg: %w", err)
	}
	return suppliers, total, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *domain.Supplier) error {
	supplier.UpdatedAt = time.Now().UTC()
	query := `UPDATE suppliers SET name = $1, category = $2, email = $3, phone = $4,
		profile_id = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND org_id = $9`
	result, err := r.db.ExecContext(ctx, query,
		supplier.Name, supplier.Category, supplier.Email, supplier.Phone,
		supplier.ProfileID, supplier.Notes, supplier.UpdatedAt, supplier.ID, supplier.OrgID)
	if err != nil {
		return fmt.Errorf("supplierRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, orgID, supplierID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM suppliers WHERE id = $1 AND org_id = $2", supplierID, orgID)
	if err != nil {
		return fmt.Errorf("supplierRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
