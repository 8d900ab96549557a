package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"setflow/internal/domain"
	"setflow/internal/port"
)

type organizationRepo struct {
	db *sqlx.DB
}

// NewOrganizationRepo creates a new PostgreSQL-backed OrganizationRepository.
func NewOrganizationRepo(db *sqlx.DB) port.OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	org.ID = uuid.New()
	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now

	query := `INSERT INTO organizations (id, name, slug, currency, seat_limit, allow_seat_overage,
		cnpj_tax_rate_pct, produtora_tax_rate_pct, master_owner_profile_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		org.ID, org.Name, org.Slug, org.Currency, org.SeatLimit, org.AllowSeatOverage,
		org.CNPJTaxRatePct, org.ProdutoraTaxRatePct, org.MasterOwnerProfileID,
		org.IsActive, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("organizationRepo.Create: %w", err)
	}
	return nil
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.GetContext(ctx, &org, "SELECT * FROM organizations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("organizationRepo.GetByID: %w", err)
	}
	return &org, nil
}

func (r *organizationRepo) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.GetContext(ctx, &org, "SELECT * FROM organizations WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("organizationRepo.GetBySlug: %w", err)
	}
	return &org, nil
}

func (r *organizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	org.UpdatedAt = time.Now().UTC()
	query := `UPDATE organizations SET name = $1, currency = $2, seat_limit = $3,
		allow_seat_overage = $4, cnpj_tax_rate_pct = $5, produtora_tax_rate_pct = $6,
		master_owner_profile_id = $7, is_active = $8, updated_at = $9
		WHERE id = $10`
	result, err := r.db.ExecContext(ctx, query,
		org.Name, org.Currency, org.SeatLimit, org.AllowSeatOverage,
		org.CNPJTaxRatePct, org.ProdutoraTaxRatePct, org.MasterOwnerProfileID,
		org.IsActive, org.UpdatedAt, org.ID)
	if err != nil {
		return fmt.Errorf("organizationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
