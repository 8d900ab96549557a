package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockTransactionRepo is a mock implementation of port.TransactionRepository.
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, orgID, txnID uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, orgID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) ListByAccount(ctx context.Context, orgID, accountID uuid.UUID, offset, limit int) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, orgID, accountID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepo) ListBySupplier(ctx context.Context, orgID, supplierID uuid.UUID) ([]domain.Transaction, error) {
	args := m.Called(ctx, orgID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) Delete(ctx context.Context, orgID, txnID uuid.UUID) error {
	args := m.Called(ctx, orgID, txnID)
	return args.Error(0)
}
