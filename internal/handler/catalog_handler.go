package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/service"
)

// CatalogHandler handles service catalog endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create handles POST /api/v1/catalog
// @Summary      Add a catalog service
// @Description  Creates a reusable service with a decimal rate, stored as integer cents.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body service.CreateCatalogServiceInput true "Service details"
// @Success      201 {object} Response{data=domain.CatalogService}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /catalog [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateCatalogServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	svc, err := h.catalogService.Create(c.Request.Context(), orgID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, svc)
}

// List handles GET /api/v1/catalog
func (h *CatalogHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	services, total, err := h.catalogService.List(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, services, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/catalog/:id
func (h *CatalogHandler) GetByID(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	svcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid catalog service ID")
		return
	}

	svc, err := h.catalogService.GetByID(c.Request.Context(), orgID, svcID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, svc)
}

// Update handles PUT /api/v1/catalog/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	svcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid catalog service ID")
		return
	}

	var input service.UpdateCatalogServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	svc, err := h.catalogService.Update(c.Request.Context(), orgID, svcID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, svc)
}

// Delete handles DELETE /api/v1/catalog/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	svcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid catalog service ID")
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), orgID, svcID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "catalog service deleted"})
}
