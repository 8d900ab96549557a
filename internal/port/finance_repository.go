package port

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/domain"
)

// BankAccountRepository defines the contract for bank account persistence.
type BankAccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) error
	GetByID(ctx context.Context, orgID, accountID uuid.UUID) (*domain.BankAccount, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.BankAccount, int, error)
	Update(ctx context.Context, account *domain.BankAccount) error
	Delete(ctx context.Context, orgID, accountID uuid.UUID) error
	// RecomputeBalance rolls the account balance up from its transactions
	// in a single statement and returns the new balance.
	RecomputeBalance(ctx context.Context, orgID, accountID uuid.UUID) (domain.Cents, error)
}

// TransactionRepository defines the contract for transaction persistence.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, orgID, txnID uuid.UUID) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, orgID, accountID uuid.UUID, offset, limit int) ([]domain.Transaction, int, error)
	ListBySupplier(ctx context.Context, orgID, supplierID uuid.UUID) ([]domain.Transaction, error)
	Delete(ctx context.Context, orgID, txnID uuid.UUID) error
}
