package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
	"setflow/internal/export"
	"setflow/internal/service"
)

// MockFinanceService is a mock implementation of service.FinanceService.
type MockFinanceService struct {
	mock.Mock
}

func (m *MockFinanceService) CreateAccount(ctx context.Context, actor *service.Claims, input service.CreateBankAccountInput) (*domain.BankAccount, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockFinanceService) GetAccount(ctx context.Context, orgID, accountID uuid.UUID) (*domain.BankAccount, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockFinanceService) ListAccounts(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.BankAccount, int, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BankAccount), args.Int(1), args.Error(2)
}

func (m *MockFinanceService) UpdateAccount(ctx context.Context, actor *service.Claims, accountID uuid.UUID, input service.UpdateBankAccountInput) (*domain.BankAccount, error) {
	args := m.Called(ctx, actor, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockFinanceService) DeleteAccount(ctx context.Context, actor *service.Claims, accountID uuid.UUID) error {
	args := m.Called(ctx, actor, accountID)
	return args.Error(0)
}

func (m *MockFinanceService) CreateTransaction(ctx context.Context, actor *service.Claims, input service.CreateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockFinanceService) ListTransactions(ctx context.Context, orgID, accountID uuid.UUID, offset, limit int) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, orgID, accountID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockFinanceService) ListSupplierTransactions(ctx context.Context, orgID, supplierID uuid.UUID) ([]domain.Transaction, error) {
	args := m.Called(ctx, orgID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockFinanceService) DeleteTransaction(ctx context.Context, actor *service.Claims, txnID uuid.UUID) error {
	args := m.Called(ctx, actor, txnID)
	return args.Error(0)
}

func (m *MockFinanceService) Statement(ctx context.Context, orgID, accountID uuid.UUID) (*domain.BankAccount, []export.StatementRow, error) {
	args := m.Called(ctx, orgID, accountID)
	var account *domain.BankAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.BankAccount)
	}
	var rows []export.StatementRow
	if args.Get(1) != nil {
		rows = args.Get(1).([]export.StatementRow)
	}
	return account, rows, args.Error(2)
}
