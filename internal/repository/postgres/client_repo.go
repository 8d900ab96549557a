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

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, client *domain.Client) error {
	client.ID = uuid.New()
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	query := `INSERT INTO clients (id, org_id, name, company, email, phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		client.ID, client.OrgID, client.Name, client.Company, client.Email,
		client.Phone, client.Notes, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, orgID, clientID uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client,
		"SELECT * FROM clients WHERE id = $1 AND org_id = $2", clientID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByID: %w", err)
	}
	return &client, nil
}

func (r *clientRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Client, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM clients WHERE org_id = $1", orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.ListByOrg count: %w", err)
	}

	var clients []domain.Client
	err = r.db.SelectContext(ctx, &clients,
		"SELECT * FROM clients WHERE org_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3",
		orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.ListByOrg: %w", err)
	}
	return clients, total, nil
}

func (r *clientRepo) Update(ctx context.Context, client *domain.Client) error {
	client.UpdatedAt = time.Now().UTC()
	query := `UPDATE clients SET name = $1, company = $2, email = $3, phone = $4,
		notes = $5, updated_at = $6
		WHERE id = $7 AND org_id = $8`
	result, err := r.db.ExecContext(ctx, query,
		client.Name, client.Company, client.Email, client.Phone, client.Notes,
		client.UpdatedAt, client.ID, client.OrgID)
	if err != nil {
		return fmt.Errorf("clientRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, orgID, clientID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM clients WHERE id = $1 AND org_id = $2", clientID, orgID)
	if err != nil {
		return fmt.Errorf("clientRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
