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

type proposalRepo struct {
	db *sqlx.DB
}

// NewProposalRepo creates a new PostgreSQL-backed ProposalRepository.
func NewProposalRepo(db *sqlx.DB) port.ProposalRepository {
	return &proposalRepo{db: db}
}

func (r *proposalRepo) Create(ctx context.Context, proposal *domain.Proposal) error {
	proposal.ID = uuid.New()
	now := time.Now().UTC()
	proposal.CreatedAt = now
	proposal.UpdatedAt = now

	query := `INSERT INTO proposals (id, org_id, client_id, title, currency, status,
		service_ids, line_items, discount_cents, subtotal_cents, tax_cents, total_cents,
		project_id, sent_at, valid_until, decided_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.ExecContext(ctx, query,
		proposal.ID, proposal.OrgID, proposal.ClientID, proposal.Title, proposal.Currency,
		proposal.Status, proposal.ServiceIDs, proposal.LineItems, proposal.DiscountCents,
		proposal.SubtotalCents, proposal.TaxCents, proposal.TotalCents,
		proposal.ProjectID, proposal.SentAt, proposal.ValidUntil, proposal.DecidedAt,
		proposal.CreatedBy, proposal.CreatedAt, proposal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("proposalRepo.Create: %w", err)
	}
	return nil
}

func (r *proposalRepo) GetByID(ctx context.Context, orgID, proposalID uuid.UUID) (*domain.Proposal, error) {
	var proposal domain.Proposal
	err := r.db.GetContext(ctx, &proposal,
		"SELECT * FROM proposals WHERE id = $1 AND org_id = $2", proposalID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("proposalRepo.GetByID: %w", err)
	}
	return &proposal, nil
}

func (r *proposalRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, status domain.ProposalStatus, offset, limit int) ([]domain.Proposal, int, error) {
	countQuery := "SELECT COUNT(*) FROM proposals WHERE org_id = $1"
	listQuery := "SELECT * FROM proposals WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3"
	countArgs := []interface{}{orgID}
	listArgs := []interface{}{orgID, limit, offset}

	if status != "" {
		countQuery = "SELECT COUNT(*) FROM proposals WHERE org_id = $1 AND status = $2"
		listQuery = "SELECT * FROM proposals WHERE org_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4"
		countArgs = []interface{}{orgID, status}
		listArgs = []interface{}{orgID, status, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("proposalRepo.ListByOrg count: %w", err)
	}

	var proposals []domain.Proposal
	if err := r.db.SelectContext(ctx, &proposals, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("proposalRepo.ListByOrg: %w", err)
	}
	return proposals, total, nil
}

func (r *proposalRepo) Update(ctx context.Context, proposal *domain.Proposal) error {
	proposal.UpdatedAt = time.Now().UTC()
	query := `UPDATE proposals SET client_id = $1, title = $2, currency = $3, status = $4,
		service_ids = $5, line_items = $6, discount_cents = $7, subtotal_cents = $8,
		tax_cents = $9, total_cents = $10, project_id = $11, sent_at = $12,
		valid_until = $13, decided_at = $14, updated_at = $15
		WHERE id = $16 AND org_id = $17`
	result, err := r.db.ExecContext(ctx, query,
		proposal.ClientID, proposal.Title, proposal.Currency, proposal.Status,
		proposal.ServiceIDs, proposal.LineItems, proposal.DiscountCents,
		proposal.SubtotalCents, proposal.TaxCents, proposal.TotalCents,
		proposal.ProjectID, proposal.SentAt, proposal.ValidUntil, proposal.DecidedAt,
		proposal.UpdatedAt, proposal.ID, proposal.OrgID)
	if err != nil {
		return fmt.Errorf("proposalRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *proposalRepo) MarkExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE proposals SET status = 'expired', decided_at = NOW(), updated_at = NOW()
		 WHERE status = 'sent' AND valid_until IS NOT NULL AND valid_until < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("proposalRepo.MarkExpired: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *proposalRepo) Delete(ctx context.Context, orgID, proposalID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM proposals WHERE id = $1 AND org_id = $2", proposalID, orgID)
	if err != nil {
		return fmt.Errorf("proposalRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
