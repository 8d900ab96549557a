package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"setflow/internal/cache"
	"setflow/internal/domain"
	"setflow/internal/export"
	"setflow/internal/port"
)

// CreateBankAccountInput is the DTO for creating a bank account.
type CreateBankAccountInput struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency" binding:"required,len=3"`
}

// UpdateBankAccountInput is the DTO for updating a bank account.
// Balance is deliberately absent: it only moves through transactions.
type UpdateBankAccountInput struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// CreateTransactionInput is the DTO for recording a transaction.
// Amount is a signed decimal string; inflows positive, outflows negative.
type CreateTransactionInput struct {
	BankAccountID uuid.UUID  `json:"bank_account_id" binding:"required"`
	SupplierID    *uuid.UUID `json:"supplier_id"`
	ProjectID     *uuid.UUID `json:"project_id"`
	Description   string     `json:"description" binding:"required"`
	Amount        string     `json:"amount" binding:"required"`
	OccurredAt    *time.Time `json:"occurred_at"`
}

// FinanceService defines the bank account and transaction contract.
// Every mutation is admin-gated.
type FinanceService interface {
	CreateAccount(ctx context.Context, actor *Claims, input CreateBankAccountInput) (*domain.BankAccount, error)
	GetAccount(ctx context.Context, orgID, accountID uuid.UUID) (*domain.BankAccount, error)
	ListAccounts(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.BankAccount, int, error)
	UpdateAccount(ctx context.Context, actor *Claims, accountID uuid.UUID, input UpdateBankAccountInput) (*domain.BankAccount, error)
	DeleteAccount(ctx context.Context, actor *Claims, accountID uuid.UUID) error

	CreateTransaction(ctx context.Context, actor *Claims, input CreateTransactionInput) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, orgID, accountID uuid.UUID, offset, limit int) ([]domain.Transaction, int, error)
	ListSupplierTransactions(ctx context.Context, orgID, supplierID uuid.UUID) ([]domain.Transaction, error)
	DeleteTransaction(ctx context.Context, actor *Claims, txnID uuid.UUID) error

	// Statement returns the account and its full transaction history
	// rendered as statement rows, oldest first.
	Statement(ctx context.Context, orgID, accountID uuid.UUID) (*domain.BankAccount, []export.StatementRow, error)
}

type financeService struct {
	accountRepo  port.BankAccountRepository
	txnRepo      port.TransactionRepository
	supplierRepo port.SupplierRepository
	projectRepo  port.ProjectRepository
	store        *cache.Store
}

// NewFinanceService creates a new FinanceService implementation.
func NewFinanceService(
	accountRepo port.BankAccountRepository,
	txnRepo port.TransactionRepository,
	supplierRepo port.SupplierRepository,
	projectRepo port.ProjectRepository,
	store *cache.Store,
) FinanceService {
	return &financeService{
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		supplierRepo: supplierRepo,
		projectRepo:  projectRepo,
		store:        store,
	}
}

func (s *financeService) CreateAccount(ctx context.Context, actor *Claims, input CreateBankAccountInput) (*domain.BankAccount, error) {
	if !domain.CanEditFinancialRecord(actor.Role) {
		return nil, domain.ErrInsufficientRole
	}

	account := &domain.BankAccount{
		OrgID:    actor.OrgID,
		Name:     input.Name,
		Currency: input.Currency,
		IsActive: true,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationTransactionWrite)
	return account, nil
}

func (s *financeService) GetAccount(ctx context.Context, orgID, accountID uuid.UUID) (*domain.BankAccount, error) {
	return s.accountRepo.GetByID(ctx, orgID, accountID)
}

func (s *financeService) ListAccounts(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.BankAccount, int, error) {
	return s.accountRepo.ListByOrg(ctx, orgID, offset, limit)
}

func (s *financeService) UpdateAccount(ctx context.Context, actor *Claims, accountID uuid.UUID, input UpdateBankAccountInput) (*domain.BankAccount, error) {
	if !domain.CanEditFinancialRecord(actor.Role) {
		return nil, domain.ErrInsufficientRole
	}

	account, err := s.accountRepo.GetByID(ctx, actor.OrgID, accountID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationTransactionWrite)
	return account, nil
}

func (s *financeService) DeleteAccount(ctx context.Context, actor *Claims, accountID uuid.UUID) error {
	if !domain.CanEditFinancialRecord(actor.Role) {
		return domain.ErrInsufficientRole
	}
	if err := s.accountRepo.Delete(ctx, actor.OrgID, accountID); err != nil {
		return err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationTransactionWrite)
	return nil
}

func (s *financeService) CreateTransaction(ctx context.Context, actor *Claims, input CreateTransactionInput) (*domain.Transaction, error) {
	if !domain.CanEditFinancialRecord(actor.Role) {
		return nil, domain.ErrInsufficientRole
	}

	account, err := s.accountRepo.GetByID(ctx, actor.OrgID, input.BankAccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, domain.ErrBankAccountInactive
	}

	txn := &domain.Transaction{
		OrgID:         actor.OrgID,
		BankAccountID: account.ID,
		SupplierID:    input.SupplierID,
		ProjectID:     input.ProjectID,
		Description:   input.Description,
		AmountCents:   domain.ParseAmount(input.Amount),
		CreatedBy:     actor.MemberID,
	}
	if input.OccurredAt != nil {
		txn.OccurredAt = *input.OccurredAt
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.RecomputeBalance(ctx, actor.OrgID, account.ID); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationTransactionWrite)
	return txn, nil
}

func (s *financeService) ListTransactions(ctx context.Context, orgID, accountID uuid.UUID, offset, limit int) ([]domain.Transaction, int, error) {
	return s.txnRepo.ListByAccount(ctx, orgID, accountID, offset, limit)
}

func (s *financeService) ListSupplierTransactions(ctx context.Context, orgID, supplierID uuid.UUID) ([]domain.Transaction, error) {
	return s.txnRepo.ListBySupplier(ctx, orgID, supplierID)
}

func (s *financeService) DeleteTransaction(ctx context.Context, actor *Claims, txnID uuid.UUID) error {
	if !domain.CanEditFinancialRecord(actor.Role) {
		return domain.ErrInsufficientRole
	}

	txn, err := s.txnRepo.GetByID(ctx, actor.OrgID, txnID)
	if err != nil {
		return err
	}
	if err := s.txnRepo.Delete(ctx, actor.OrgID, txnID); err != nil {
		return err
	}
	if _, err := s.accountRepo.RecomputeBalance(ctx, actor.OrgID, txn.BankAccountID); err != nil {
		return err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationTransactionWrite)
	return nil
}

// statementPageSize bounds each transaction fetch while building a statement.
const statementPageSize = 500

func (s *financeService) Statement(ctx context.Context, orgID, accountID uuid.UUID) (*domain.BankAccount, []export.StatementRow, error) {
	account, err := s.accountRepo.GetByID(ctx, orgID, accountID)
	if err != nil {
		return nil, nil, err
	}

	var all []domain.Transaction
	for offset := 0; ; offset += statementPageSize {
		txns, total, err := s.txnRepo.ListByAccount(ctx, orgID, accountID, offset, statementPageSize)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, txns...)
		if len(all) >= total || len(txns) == 0 {
			break
		}
	}

	// Listing is newest first; statements read oldest first.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	supplierNames := make(map[string]string)
	projectNames := make(map[string]string)
	for _, txn := range all {
		if txn.SupplierID != nil {
			key := txn.SupplierID.String()
			if _, seen := supplierNames[key]; !seen {
				if supplier, err := s.supplierRepo.GetByID(ctx, orgID, *txn.SupplierID); err == nil {
					supplierNames[key] = supplier.Name
				} else {
					supplierNames[key] = ""
				}
			}
		}
		if txn.ProjectID != nil {
			key := txn.ProjectID.String()
			if _, seen := projectNames[key]; !seen {
				if project, err := s.projectRepo.GetByID(ctx, orgID, *txn.ProjectID); err == nil {
					projectNames[key] = project.Name
				} else {
					projectNames[key] = ""
				}
			}
		}
	}

	return account, export.BuildStatement(account, all, supplierNames, projectNames), nil
}
