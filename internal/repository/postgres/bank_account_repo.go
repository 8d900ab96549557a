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

type bankAccountRepo struct {
	db *sqlx.DB
}

// NewBankAccountRepo creates a new PostgreSQL-backed BankAccountRepository.
func NewBankAccountRepo(db *sqlx.DB) port.BankAccountRepository {
	return &bankAccountRepo{db: db}
}

func (r *bankAccountRepo) Create(ctx context.Context, account *domain.BankAccount) error {
	account.ID = uuid.New()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	query := `INSERT INTO bank_accounts (id, org_id, name, currency, balance_cents, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.OrgID, account.Name, account.Currency, account.BalanceCents,
		account.IsActive, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("bankAccountRepo.Create: %w", err)
	}
	return nil
}

func (r *bankAccountRepo) GetByID(ctx context.Context, orgID, accountID uuid.UUID) (*domain.BankAccount, error) {
	var account domain.BankAccount
	err := r.db.GetContext(ctx, &account,
		"SELECT * FROM bank_accounts WHERE id = $1 AND org_id = $2", accountID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("bankAccountRepo.GetByID: %w", err)
	}
	return &account, nil
}

func (r *bankAccountRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.BankAccount, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM bank_accounts WHERE org_id = $1", orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("bankAccountRepo.ListByOrg count: %w", err)
	}

	var accounts []domain.BankAccount
	err = r.db.SelectContext(ctx, &accounts,
		"SELECT * FROM bank_accounts WHERE org_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3",
		orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("bankAccountRepo.ListByOrg: %w", err)
	}
	return accounts, total, nil
}

func (r *bankAccountRepo) Update(ctx context.Context, account *domain.BankAccount) error {
	account.UpdatedAt = time.Now().UTC()
	// balance_cents is deliberately excluded: the balance only moves via
	// RecomputeBalance.
	query := `UPDATE bank_accounts SET name = $1, currency = $2, is_active = $3, updated_at = $4
		WHERE id = $5 AND org_id = $6`
	result, err := r.db.ExecContext(ctx, query,
		account.Name, account.Currency, account.IsActive, account.UpdatedAt,
		account.ID, account.OrgID)
	if err != nil {
		return fmt.Errorf("bankAccountRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bankAccountRepo) Delete(ctx context.Context, orgID, accountID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM bank_accounts WHERE id = $1 AND org_id = $2", accountID, orgID)
	if err != nil {
		return fmt.Errorf("bankAccountRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bankAccountRepo) RecomputeBalance(ctx context.Context, orgID, accountID uuid.UUID) (domain.Cents, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, `
		UPDATE bank_accounts
		SET balance_cents = COALESCE(
			(SELECT SUM(amount_cents) FROM transactions
			 WHERE bank_account_id = $1 AND org_id = $2), 0),
			updated_at = NOW()
		WHERE id = $1 AND org_id = $2
		RETURNING balance_cents`,
		accountID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("bankAccountRepo.RecomputeBalance: %w", err)
	}
	return domain.Cents(balance), nil
}
