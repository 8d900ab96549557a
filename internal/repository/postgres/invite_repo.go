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

type inviteRepo struct {
	db *sqlx.DB
}

// NewInviteRepo creates a new PostgreSQL-backed InviteRepository.
func NewInviteRepo(db *sqlx.DB) port.InviteRepository {
	return &inviteRepo{db: db}
}

func (r *inviteRepo) Create(ctx context.Context, invite *domain.Invite) error {
	invite.ID = uuid.New()
	now := time.Now().UTC()
	invite.CreatedAt = now
	invite.UpdatedAt = now

	// Partial unique index on (org_id, email) WHERE status = 'pending'
	// backs the duplicate-pending-invite rule.
	query := `INSERT INTO invites (id, org_id, email, role, status, token_hash, invited_by,
		expires_at, accepted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		invite.ID, invite.OrgID, invite.Email, invite.Role, invite.Status,
		invite.TokenHash, invite.InvitedBy, invite.ExpiresAt, invite.AcceptedAt,
		invite.CreatedAt, invite.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateInvite
		}
		return fmt.Errorf("inviteRepo.Create: %w", err)
	}
	return nil
}

func (r *inviteRepo) GetByID(ctx context.Context, orgID, inviteID uuid.UUID) (*domain.Invite, error) {
	var invite domain.Invite
	err := r.db.GetContext(ctx, &invite,
		"SELECT * FROM invites WHERE id = $1 AND org_id = $2", inviteID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("inviteRepo.GetByID: %w", err)
	}
	return &invite, nil
}

func (r *inviteRepo) GetPendingByEmail(ctx context.Context, orgID uuid.UUID, email string) (*domain.Invite, error) {
	var invite domain.Invite
	err := r.db.GetContext(ctx, &invite,
		"SELECT * FROM invites WHERE org_id = $1 AND email = $2 AND status = 'pending'",
		orgID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("inviteRepo.GetPendingByEmail: %w", err)
	}
	return &invite, nil
}

func (r *inviteRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Invite, error) {
	var invite domain.Invite
	err := r.db.GetContext(ctx, &invite,
		"SELECT * FROM invites WHERE token_hash = $1", tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("inviteRepo.GetByTokenHash: %w", err)
	}
	return &invite, nil
}

func (r *inviteRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invite, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invites WHERE org_id = $1", orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("inviteRepo.ListByOrg count: %w", err)
	}

	var invites []domain.Invite
	err = r.db.SelectContext(ctx, &invites,
		"SELECT * FROM invites WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("inviteRepo.ListByOrg: %w", err)
	}
	return invites, total, nil
}

func (r *inviteRepo) CountPending(ctx context.Context, orgID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM invites WHERE org_id = $1 AND status = 'pending'", orgID)
	if err != nil {
		return 0, fmt.Errorf("inviteRepo.CountPending: %w", err)
	}
	return count, nil
}

func (r *inviteRepo) Update(ctx context.Context, invite *domain.Invite) error {
	invite.UpdatedAt = time.Now().UTC()
	query := `UPDATE invites SET status = $1, token_hash = $2, expires_at = $3,
		accepted_at = $4, updated_at = $5
		WHERE id = $6 AND org_id = $7`
	result, err := r.db.ExecContext(ctx, query,
		invite.Status, invite.TokenHash, invite.ExpiresAt, invite.AcceptedAt,
		invite.UpdatedAt, invite.ID, invite.OrgID)
	if err != nil {
		return fmt.Errorf("inviteRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inviteRepo) MarkExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invites SET status = 'expired', updated_at = NOW()
		 WHERE status = 'pending' AND expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("inviteRepo.MarkExpired: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
