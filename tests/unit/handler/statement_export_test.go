package handler_test

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"setflow/internal/domain"
	"setflow/internal/export"
	"setflow/internal/handler"
	"setflow/mocks"
)

func newFinanceHandler() (*handler.FinanceHandler, *mocks.MockFinanceService) {
	financeSvc := new(mocks.MockFinanceService)
	h := handler.NewFinanceHandler(financeSvc)
	return h, financeSvc
}

func TestExportStatement_CSV(t *testing.T) {
	h, financeSvc := newFinanceHandler()

	orgID := uuid.New()
	memberID := uuid.New()
	accountID := uuid.New()

	account := &domain.BankAccount{
		ID:       accountID,
		OrgID:    orgID,
		Name:     "Conta Principal",
		Currency: "BRL",
	}
	rows := []export.StatementRow{
		{
			Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Description: "Client payment",
			Project:     "Duarte Campaign",
			Amount:      1_500_000,
			Balance:     1_500_000,
			Currency:    "BRL",
		},
		{
			Date:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			Description: "Equipment rental",
			Supplier:    "LocAll Equipamentos",
			Amount:      -200_000,
			Balance:     1_300_000,
			Currency:    "BRL",
		},
	}

	financeSvc.On("Statement", mock.Anything, orgID, accountID).Return(account, rows, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bank-accounts/"+accountID.String()+"/statement", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	setAuthContext(c, orgID, memberID, domain.RoleFinance)

	h.ExportStatement(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Conta_Principal_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	// Verify BOM
	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, export.BOM, body[:3])

	// Parse CSV (skip BOM)
	r := csv.NewReader(strings.NewReader(string(body[3:])))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 data rows

	assert.Equal(t, "Date", records[0][0])
	assert.Equal(t, "Running Balance", records[0][5])

	assert.Equal(t, "2025-03-10", records[1][0])
	assert.Equal(t, "Client payment", records[1][1])
	assert.Equal(t, "15000.00", records[1][4])
	assert.Equal(t, "15000.00", records[1][5])

	assert.Equal(t, "LocAll Equipamentos", records[2][2])
	assert.Equal(t, "-2000.00", records[2][4])
	assert.Equal(t, "13000.00", records[2][5])

	financeSvc.AssertExpectations(t)
}

func TestExportStatement_XLSX(t *testing.T) {
	h, financeSvc := newFinanceHandler()

	orgID := uuid.New()
	memberID := uuid.New()
	accountID := uuid.New()

	account := &domain.BankAccount{ID: accountID, OrgID: orgID, Name: "Reserve", Currency: "BRL"}

	financeSvc.On("Statement", mock.Anything, orgID, accountID).Return(account, []export.StatementRow{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bank-accounts/"+accountID.String()+"/statement?format=xlsx", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	setAuthContext(c, orgID, memberID, domain.RoleOwner)

	h.ExportStatement(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())

	financeSvc.AssertExpectations(t)
}

func TestExportStatement_InvalidFormat(t *testing.T) {
	h, _ := newFinanceHandler()

	orgID := uuid.New()
	memberID := uuid.New()
	accountID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bank-accounts/"+accountID.String()+"/statement?format=pdf", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	setAuthContext(c, orgID, memberID, domain.RoleFinance)

	h.ExportStatement(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportStatement_AccountNotFound(t *testing.T) {
	h, financeSvc := newFinanceHandler()

	orgID := uuid.New()
	memberID := uuid.New()
	accountID := uuid.New()

	financeSvc.On("Statement", mock.Anything, orgID, accountID).Return(nil, nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bank-accounts/"+accountID.String()+"/statement", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	setAuthContext(c, orgID, memberID, domain.RoleFinance)

	h.ExportStatement(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	financeSvc.AssertExpectations(t)
}

func TestExportStatement_InvalidID(t *testing.T) {
	h, _ := newFinanceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bank-accounts/not-a-uuid/statement", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	setAuthContext(c, uuid.New(), uuid.New(), domain.RoleFinance)

	h.ExportStatement(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
