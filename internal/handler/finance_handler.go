package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/export"
	"setflow/internal/service"
)

// FinanceHandler handles bank account and transaction endpoints.
type FinanceHandler struct {
	financeService service.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// CreateAccount handles POST /api/v1/bank-accounts
// @Summary      Create a bank account
// @Description  Creates an account with a zero balance. Admin or owner only.
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body service.CreateBankAccountInput true "Account details"
// @Success      201 {object} Response{data=domain.BankAccount}
// @Failure      400 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Security     BearerAuth
// @Router       /bank-accounts [post]
func (h *FinanceHandler) CreateAccount(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	var input service.CreateBankAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	account, err := h.financeService.CreateAccount(c.Request.Context(), claims, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, account)
}

// ListAccounts handles GET /api/v1/bank-accounts
func (h *FinanceHandler) ListAccounts(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	accounts, total, err := h.financeService.ListAccounts(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, accounts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetAccount handles GET /api/v1/bank-accounts/:id
func (h *FinanceHandler) GetAccount(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bank account ID")
		return
	}

	account, err := h.financeService.GetAccount(c.Request.Context(), orgID, accountID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, account)
}

// UpdateAccount handles PUT /api/v1/bank-accounts/:id
func (h *FinanceHandler) UpdateAccount(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bank account ID")
		return
	}

	var input service.UpdateBankAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	account, err := h.financeService.UpdateAccount(c.Request.Context(), claims, accountID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, account)
}

// DeleteAccount handles DELETE /api/v1/bank-accounts/:id
func (h *FinanceHandler) DeleteAccount(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bank account ID")
		return
	}

	if err := h.financeService.DeleteAccount(c.Request.Context(), claims, accountID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "bank account deleted"})
}

// CreateTransaction handles POST /api/v1/transactions
// @Summary      Record a transaction
// @Description  Records a signed-amount transaction against an active account and recomputes the account balance. Admin or owner only.
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body service.CreateTransactionInput true "Transaction details"
// @Success      201 {object} Response{data=domain.Transaction}
// @Failure      400 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /transactions [post]
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	var input service.CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	txn, err := h.financeService.CreateTransaction(c.Request.Context(), claims, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, txn)
}

// ListTransactions handles GET /api/v1/bank-accounts/:id/transactions
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bank account ID")
		return
	}

	offset, limit := parsePagination(c)

	txns, total, err := h.financeService.ListTransactions(c.Request.Context(), orgID, accountID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, txns, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid transaction ID")
		return
	}

	if err := h.financeService.DeleteTransaction(c.Request.Context(), claims, txnID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "transaction deleted"})
}

// ExportStatement handles GET /api/v1/bank-accounts/:id/statement?format=csv|xlsx
// @Summary      Export an account statement
// @Description  Streams the full transaction history with a running balance as CSV (default) or XLSX.
// @Tags         finance
// @Produce      text/csv
// @Param        id path string true "Bank account UUID"
// @Param        format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /bank-accounts/{id}/statement [get]
func (h *FinanceHandler) ExportStatement(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bank account ID")
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be csv or xlsx")
		return
	}

	account, rows, err := h.financeService.Statement(c.Request.Context(), orgID, accountID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(account.Name, format)

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Status(http.StatusOK)
		if err := export.WriteXLSX(c.Writer, account.Name, rows); err != nil {
			requestID, _ := c.Get("request_id")
			log.Printf("[%s] statement xlsx export: %v", requestID, err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	// BOM first so Excel detects UTF-8.
	_, _ = c.Writer.Write(export.BOM)

	w := export.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteRows(rows); err != nil {
		return
	}
	w.Flush()
}
