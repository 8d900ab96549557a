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

type memberRepo struct {
	db *sqlx.DB
}

// NewMemberRepo creates a new PostgreSQL-backed MemberRepository.
func NewMemberRepo(db *sqlx.DB) port.MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, member *domain.Member) error {
	member.ID = uuid.New()
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	query := `INSERT INTO members (id, org_id, email, password_hash, full_name, effective_role,
		is_master_owner, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.OrgID, member.Email, member.PasswordHash, member.FullName,
		member.EffectiveRole, member.IsMasterOwner, member.IsActive,
		member.CreatedAt, member.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("memberRepo.Create: %w", err)
	}
	return nil
}

func (r *memberRepo) GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*domain.Member, error) {
	var member domain.Member
	err := r.db.GetContext(ctx, &member,
		"SELECT * FROM members WHERE id = $1 AND org_id = $2", memberID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("memberRepo.GetByID: %w", err)
	}
	return &member, nil
}

func (r *memberRepo) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*domain.Member, error) {
	var member domain.Member
	err := r.db.GetContext(ctx, &member,
		"SELECT * FROM members WHERE org_id = $1 AND email = $2", orgID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("memberRepo.GetByEmail: %w", err)
	}
	return &member, nil
}

func (r *memberRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Member, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM members WHERE org_id = $1", orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("memberRepo.ListByOrg count: %w", err)
	}

	var members []domain.Member
	err = r.db.SelectContext(ctx, &members,
		"SELECT * FROM members WHERE org_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3",
		orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("memberRepo.ListByOrg: %w", err)
	}
	return members, total, nil
}

func (r *memberRepo) CountActive(ctx context.Context, orgID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM members WHERE org_id = $1 AND is_active = true", orgID)
	if err != nil {
		return 0, fmt.Errorf("memberRepo.CountActive: %w", err)
	}
	return count, nil
}

func (r *memberRepo) Update(ctx context.Context, member *domain.Member) error {
	member.UpdatedAt = time.Now().UTC()
	query := `UPDATE members SET email = $1, full_name = $2, effective_role = $3,
		is_active = $4, updated_at = $5
		WHERE id = $6 AND org_id = $7`
	result, err := r.db.ExecContext(ctx, query,
		member.Email, member.FullName, member.EffectiveRole, member.IsActive,
		member.UpdatedAt, member.ID, member.OrgID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("memberRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memberRepo) Delete(ctx context.Context, orgID, memberID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM members WHERE id = $1 AND org_id = $2", memberID, orgID)
	if err != nil {
		return fmt.Errorf("memberRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
