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

type transactionRepo struct {
	db *sqlx.DB
}

// NewTransactionRepo creates a new PostgreSQL-backed TransactionRepository.
func NewTransactionRepo(db *sqlx.DB) port.TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Create(ctx context.Context, txn *domain.Transaction) error {
	txn.ID = uuid.New()
	txn.CreatedAt = time.Now().UTC()
	if txn.OccurredAt.IsZero() {
		txn.OccurredAt = txn.CreatedAt
	}

	query := `INSERT INTO transactions (id, org_id, bank_account_id, supplier_id, project_id,
		description, amount_cents, occurred_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.OrgID, txn.BankAccountID, txn.SupplierID, txn.ProjectID,
		txn.Description, txn.AmountCents, txn.OccurredAt, txn.CreatedBy, txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("transactionRepo.Create: %w", err)
	}
	return nil
}

func (r *transactionRepo) GetByID(ctx context.Context, orgID, txnID uuid.UUID) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := r.db.GetContext(ctx, &txn,
		"SELECT * FROM transactions WHERE id = $1 AND org_id = $2", txnID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("transactionRepo.GetByID: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepo) ListByAccount(ctx context.Context, orgID, accountID uuid.UUID, offset, limit int) ([]domain.Transaction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM transactions WHERE org_id = $1 AND bank_account_id = $2",
		orgID, accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("transactionRepo.ListByAccount count: %w", err)
	}

	var txns []domain.Transaction
	err = r.db.SelectContext(ctx, &txns,
		`SELECT * FROM transactions WHERE org_id = $1 AND bank_account_id = $2
		ORDER BY occurred_at DESC, created_at DESC LIMIT $3 OFFSET $4`,
		orgID, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("transactionRepo.ListByAccount: %w", err)
	}
	return txns, total, nil
}

func (r *transactionRepo) ListBySupplier(ctx context.Context, orgID, supplierID uuid.UUID) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	err := r.db.SelectContext(ctx, &txns,
		`SELECT * FROM transactions WHERE org_id = $1 AND supplier_id = $2
		ORDER BY occurred_at DESC`,
		orgID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("transactionRepo.ListBySupplier: %w", err)
	}
	return txns, nil
}

func (r *transactionRepo) Delete(ctx context.Context, orgID, txnID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = $1 AND org_id = $2", txnID, orgID)
	if err != nil {
		return fmt.Errorf("transactionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
