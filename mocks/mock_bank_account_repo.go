package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockBankAccountRepo is a mock implementation of port.BankAccountRepository.
type MockBankAccountRepo struct {
	mock.Mock
}

func (m *MockBankAccountRepo) Create(ctx context.Context, account *domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepo) GetByID(ctx context.Context, orgID, accountID uuid.UUID) (*domain.BankAccount, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.BankAccount, int, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BankAccount), args.Int(1), args.Error(2)
}

func (m *MockBankAccountRepo) Update(ctx context.Context, account *domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepo) Delete(ctx context.Context, orgID, accountID uuid.UUID) error {
	args := m.Called(ctx, orgID, accountID)
	return args.Error(0)
}

func (m *MockBankAccountRepo) RecomputeBalance(ctx context.Context, orgID, accountID uuid.UUID) (domain.Cents, error) {
	args := m.Called(ctx, orgID, accountID)
	return args.Get(0).(domain.Cents), args.Error(1)
}
