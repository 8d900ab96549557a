package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"setflow/internal/service"
)

// OrganizationHandler handles organization settings endpoints.
type OrganizationHandler struct {
	orgService service.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// Get handles GET /api/v1/organization
// @Summary      Get organization settings
// @Description  Returns the authenticated member's organization
// @Tags         organization
// @Produce      json
// @Success      200 {object} Response{data=domain.Organization}
// @Failure      401 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /organization [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	org, err := h.orgService.GetByID(c.Request.Context(), orgID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, org)
}

// Update handles PUT /api/v1/organization
// @Summary      Update organization settings
// @Description  Updates name, currency, seat limit, and tax rates. Owner only.
// @Tags         organization
// @Accept       json
// @Produce      json
// @Param        request body service.UpdateOrganizationInput true "Settings to update"
// @Success      200 {object} Response{data=domain.Organization}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Security     BearerAuth
// @Router       /organization [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	var input service.UpdateOrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), claims, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, org)
}
