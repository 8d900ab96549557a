package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/domain"
	"setflow/internal/service"
)

// SupplierHandler handles supplier endpoints.
type SupplierHandler struct {
	supplierService service.SupplierService
	financeService  service.FinanceService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierService service.SupplierService, financeService service.FinanceService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService, financeService: financeService}
}

// Create handles POST /api/v1/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), orgID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, supplier)
}

// List handles GET /api/v1/suppliers
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Param        category query string false "Filter by category" Enums(crew, equipment, location, catering, post, other)
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} Response{data=[]domain.Supplier,meta=PagMeta}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	category := domain.SupplierCategory(c.Query("category"))

	suppliers, total, err := h.supplierService.List(c.Request.Context(), orgID, category, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, suppliers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetByID(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), orgID, supplierID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, supplier)
}

// Update handles PUT /api/v1/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
		return
	}

	var input service.UpdateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), orgID, supplierID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, supplier)
}

// Delete handles DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), orgID, supplierID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "supplier deleted"})
}

// LinkProfile handles POST /api/v1/suppliers/:id/link-profile
// @Summary      Link a supplier to a member profile
// @Description  Attaches an existing member's profile to the supplier record. Fails if already linked.
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier UUID"
// @Param        request body LinkProfileRequest true "Member to link"
// @Success      200 {object} Response{data=domain.Supplier}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/link-profile [post]
func (h *SupplierHandler) LinkProfile(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
		return
	}

	var req LinkProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	supplier, err := h.supplierService.LinkProfile(c.Request.Context(), orgID, supplierID, req.MemberID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, supplier)
}

// Transactions handles GET /api/v1/suppliers/:id/transactions
// @Summary      List supplier transactions
// @Description  Returns all transactions recorded against the supplier, newest first.
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier UUID"
// @Success      200 {object} Response{data=[]domain.Transaction}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/transactions [get]
func (h *SupplierHandler) Transactions(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
		return
	}

	txns, err := h.financeService.ListSupplierTransactions(c.Request.Context(), orgID, supplierID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, txns)
}
