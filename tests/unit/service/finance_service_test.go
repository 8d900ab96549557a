package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"setflow/internal/cache"
	"setflow/internal/domain"
	"setflow/internal/service"
	"setflow/mocks"
)

type financeFixture struct {
	accountRepo  *mocks.MockBankAccountRepo
	txnRepo      *mocks.MockTransactionRepo
	supplierRepo *mocks.MockSupplierRepo
	projectRepo  *mocks.MockProjectRepo
	svc          service.FinanceService
}

func newFinanceFixture() *financeFixture {
	f := &financeFixture{
		accountRepo:  new(mocks.MockBankAccountRepo),
		txnRepo:      new(mocks.MockTransactionRepo),
		supplierRepo: new(mocks.MockSupplierRepo),
		projectRepo:  new(mocks.MockProjectRepo),
	}
	f.svc = service.NewFinanceService(
		f.accountRepo,
		f.txnRepo,
		f.supplierRepo,
		f.projectRepo,
		cache.NewStore(),
	)
	return f
}

// Financial mutations are admin-gated, stricter than the role order.
func financeClaims(orgID uuid.UUID) *service.Claims {
	return &service.Claims{
		OrgID:    orgID,
		MemberID: uuid.New(),
		Email:    "bruno@lumafilms.com",
		Role:     domain.RoleAdmin,
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	f := newFinanceFixture()

	orgID := uuid.New()
	actor := financeClaims(orgID)
	account := &domain.BankAccount{
		ID:       uuid.New(),
		OrgID:    orgID,
		Name:     "Conta Principal",
		Currency: "BRL",
		IsActive: true,
	}

	f.accountRepo.On("GetByID", mock.Anything, orgID, account.ID).Return(account, nil)
	f.txnRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil)
	f.accountRepo.On("RecomputeBalance", mock.Anything, orgID, account.ID).Return(domain.Cents(150_000), nil)

	txn, err := f.svc.CreateTransaction(context.Background(), actor, service.CreateTransactionInput{
		BankAccountID: account.ID,
		Description:   "Client payment",
		Amount:        "1500.00",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.Cents(150_000), txn.AmountCents)
	assert.Equal(t, actor.MemberID, txn.CreatedBy)

	f.accountRepo.AssertExpectations(t)
	f.txnRepo.AssertExpectations(t)
}

func TestCreateTransaction_RoleGate(t *testing.T) {
	f := newFinanceFixture()

	// Even the finance role cannot mutate records; only admin can.
	actor := &service.Claims{
		OrgID:    uuid.New(),
		MemberID: uuid.New(),
		Role:     domain.RoleFinance,
	}

	_, err := f.svc.CreateTransaction(context.Background(), actor, service.CreateTransactionInput{
		BankAccountID: uuid.New(),
		Description:   "Client payment",
		Amount:        "1500.00",
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	f.txnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTransaction_InactiveAccount(t *testing.T) {
	f := newFinanceFixture()

	orgID := uuid.New()
	actor := financeClaims(orgID)
	account := &domain.BankAccount{
		ID:       uuid.New(),
		OrgID:    orgID,
		Name:     "Conta Encerrada",
		Currency: "BRL",
		IsActive: false,
	}

	f.accountRepo.On("GetByID", mock.Anything, orgID, account.ID).Return(account, nil)

	_, err := f.svc.CreateTransaction(context.Background(), actor, service.CreateTransactionInput{
		BankAccountID: account.ID,
		Description:   "Late entry",
		Amount:        "100.00",
	})

	assert.ErrorIs(t, err, domain.ErrBankAccountInactive)
	f.txnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteTransaction_RecomputesBalance(t *testing.T) {
	f := newFinanceFixture()

	orgID := uuid.New()
	actor := financeClaims(orgID)
	accountID := uuid.New()
	txn := &domain.Transaction{
		ID:            uuid.New(),
		OrgID:         orgID,
		BankAccountID: accountID,
		AmountCents:   -20_000,
	}

	f.txnRepo.On("GetByID", mock.Anything, orgID, txn.ID).Return(txn, nil)
	f.txnRepo.On("Delete", mock.Anything, orgID, txn.ID).Return(nil)
	f.accountRepo.On("RecomputeBalance", mock.Anything, orgID, accountID).Return(domain.Cents(0), nil)

	err := f.svc.DeleteTransaction(context.Background(), actor, txn.ID)

	require.NoError(t, err)
	f.accountRepo.AssertExpectations(t)
}

func TestUpdateAccount_BalanceUntouchable(t *testing.T) {
	f := newFinanceFixture()

	orgID := uuid.New()
	actor := financeClaims(orgID)
	account := &domain.BankAccount{
		ID:           uuid.New(),
		OrgID:        orgID,
		Name:         "Conta Principal",
		Currency:     "BRL",
		BalanceCents: 130_000,
		IsActive:     true,
	}

	f.accountRepo.On("GetByID", mock.Anything, orgID, account.ID).Return(account, nil)
	f.accountRepo.On("Update", mock.Anything, account).Return(nil)

	name := "Conta Corrente"
	inactive := false
	got, err := f.svc.UpdateAccount(context.Background(), actor, account.ID, service.UpdateBankAccountInput{
		Name:     &name,
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "Conta Corrente", got.Name)
	assert.False(t, got.IsActive)
	assert.Equal(t, domain.Cents(130_000), got.BalanceCents)
}

func TestStatement_OldestFirstWithNames(t *testing.T) {
	f := newFinanceFixture()

	orgID := uuid.New()
	accountID := uuid.New()
	supplierID := uuid.New()
	projectID := uuid.New()

	account := &domain.BankAccount{
		ID:       accountID,
		OrgID:    orgID,
		Name:     "Conta Principal",
		Currency: "BRL",
		IsActive: true,
	}
	// Listing order is newest first.
	txns := []domain.Transaction{
		{
			ID:            uuid.New(),
			OrgID:         orgID,
			BankAccountID: accountID,
			SupplierID:    &supplierID,
			Description:   "Equipment rental",
			AmountCents:   -20_000,
			OccurredAt:    time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            uuid.New(),
			OrgID:         orgID,
			BankAccountID: accountID,
			ProjectID:     &projectID,
			Description:   "Client payment",
			AmountCents:   150_000,
			OccurredAt:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	f.accountRepo.On("GetByID", mock.Anything, orgID, accountID).Return(account, nil)
	f.txnRepo.On("ListByAccount", mock.Anything, orgID, accountID, 0, 500).Return(txns, 2, nil)
	f.supplierRepo.On("GetByID", mock.Anything, orgID, supplierID).
		Return(&domain.Supplier{ID: supplierID, OrgID: orgID, Name: "LocAll Equipamentos"}, nil)
	f.projectRepo.On("GetByID", mock.Anything, orgID, projectID).
		Return(&domain.Project{ID: projectID, OrgID: orgID, Name: "Duarte Campaign"}, nil)

	got, rows, err := f.svc.Statement(context.Background(), orgID, accountID)

	require.NoError(t, err)
	assert.Equal(t, account, got)
	require.Len(t, rows, 2)

	assert.Equal(t, "Client payment", rows[0].Description)
	assert.Equal(t, "Duarte Campaign", rows[0].Project)
	assert.Equal(t, domain.Cents(150_000), rows[0].Amount)
	assert.Equal(t, domain.Cents(150_000), rows[0].Balance)

	assert.Equal(t, "Equipment rental", rows[1].Description)
	assert.Equal(t, "LocAll Equipamentos", rows[1].Supplier)
	assert.Equal(t, domain.Cents(130_000), rows[1].Balance)
}

func TestStatement_PagesThroughHistory(t *testing.T) {
	f := newFinanceFixture()

	orgID := uuid.New()
	accountID := uuid.New()
	account := &domain.BankAccount{ID: accountID, OrgID: orgID, Name: "Reserve", Currency: "BRL"}

	page1 := make([]domain.Transaction, 500)
	for i := range page1 {
		page1[i] = domain.Transaction{
			ID:            uuid.New(),
			OrgID:         orgID,
			BankAccountID: accountID,
			AmountCents:   100,
			OccurredAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	page2 := []domain.Transaction{{
		ID:            uuid.New(),
		OrgID:         orgID,
		BankAccountID: accountID,
		AmountCents:   100,
		OccurredAt:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}}

	f.accountRepo.On("GetByID", mock.Anything, orgID, accountID).Return(account, nil)
	f.txnRepo.On("ListByAccount", mock.Anything, orgID, accountID, 0, 500).Return(page1, 501, nil)
	f.txnRepo.On("ListByAccount", mock.Anything, orgID, accountID, 500, 500).Return(page2, 501, nil)

	_, rows, err := f.svc.Statement(context.Background(), orgID, accountID)

	require.NoError(t, err)
	assert.Len(t, rows, 501)
	// Final balance is the sum of every transaction.
	assert.Equal(t, domain.Cents(50_100), rows[len(rows)-1].Balance)
	f.txnRepo.AssertExpectations(t)
}

func TestDeleteAccount_RoleGate(t *testing.T) {
	f := newFinanceFixture()

	actor := &service.Claims{
		OrgID:    uuid.New(),
		MemberID: uuid.New(),
		Role:     domain.RoleProducer,
	}

	err := f.svc.DeleteAccount(context.Background(), actor, uuid.New())

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	f.accountRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
