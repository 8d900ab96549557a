package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/service"
)

// ProductionHandler handles shooting day and call sheet endpoints.
type ProductionHandler struct {
	productionService service.ProductionService
}

// NewProductionHandler creates a new ProductionHandler.
func NewProductionHandler(productionService service.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// parseProjectID reads the required project_id query parameter.
func parseProjectID(c *gin.Context) (uuid.UUID, bool) {
	projectID, err := uuid.Parse(c.Query("project_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "project_id query parameter is required and must be a valid UUID")
		return uuid.Nil, false
	}
	return projectID, true
}

// CreateShootingDay handles POST /api/v1/shooting-days
// @Summary      Schedule a shooting day
// @Description  Adds a shooting day to a project. Call and wrap times are normalized to HH:MM:SS.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        request body service.CreateShootingDayInput true "Shooting day details"
// @Success      201 {object} Response{data=domain.ShootingDay}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /shooting-days [post]
func (h *ProductionHandler) CreateShootingDay(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateShootingDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	day, err := h.productionService.CreateShootingDay(c.Request.Context(), orgID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, day)
}

// ListShootingDays handles GET /api/v1/shooting-days?project_id=...
func (h *ProductionHandler) ListShootingDays(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	days, err := h.productionService.ListShootingDays(c.Request.Context(), orgID, projectID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, days)
}

// GetShootingDay handles GET /api/v1/shooting-days/:id
func (h *ProductionHandler) GetShootingDay(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	dayID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid shooting day ID")
		return
	}

	day, err := h.productionService.GetShootingDay(c.Request.Context(), orgID, dayID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, day)
}

// UpdateShootingDay handles PUT /api/v1/shooting-days/:id
func (h *ProductionHandler) UpdateShootingDay(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	dayID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid shooting day ID")
		return
	}

	var input service.UpdateShootingDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	day, err := h.productionService.UpdateShootingDay(c.Request.Context(), orgID, dayID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, day)
}

// DeleteShootingDay handles DELETE /api/v1/shooting-days/:id
func (h *ProductionHandler) DeleteShootingDay(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	dayID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid shooting day ID")
		return
	}

	if err := h.productionService.DeleteShootingDay(c.Request.Context(), orgID, dayID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "shooting day deleted"})
}

// CreateCallSheet handles POST /api/v1/call-sheets
// @Summary      Create a call sheet
// @Description  Creates a draft call sheet for a shooting day.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        request body service.CreateCallSheetInput true "Call sheet details"
// @Success      201 {object} Response{data=domain.CallSheet}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /call-sheets [post]
func (h *ProductionHandler) CreateCallSheet(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	var input service.CreateCallSheetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sheet, err := h.productionService.CreateCallSheet(c.Request.Context(), claims, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, sheet)
}

// ListCallSheets handles GET /api/v1/call-sheets?project_id=...
func (h *ProductionHandler) ListCallSheets(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	sheets, err := h.productionService.ListCallSheets(c.Request.Context(), orgID, projectID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sheets)
}

// GetCallSheet handles GET /api/v1/call-sheets/:id
func (h *ProductionHandler) GetCallSheet(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	sheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid call sheet ID")
		return
	}

	sheet, err := h.productionService.GetCallSheet(c.Request.Context(), orgID, sheetID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sheet)
}

// UpdateCallSheet handles PUT /api/v1/call-sheets/:id
func (h *ProductionHandler) UpdateCallSheet(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	sheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid call sheet ID")
		return
	}

	var input service.UpdateCallSheetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sheet, err := h.productionService.UpdateCallSheet(c.Request.Context(), orgID, sheetID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sheet)
}

// PublishCallSheet handles POST /api/v1/call-sheets/:id/publish
// @Summary      Publish a call sheet
// @Description  Moves a draft call sheet to published so the crew can see it.
// @Tags         production
// @Produce      json
// @Param        id path string true "Call sheet UUID"
// @Success      200 {object} Response{data=domain.CallSheet}
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /call-sheets/{id}/publish [post]
func (h *ProductionHandler) PublishCallSheet(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	sheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid call sheet ID")
		return
	}

	sheet, err := h.productionService.PublishCallSheet(c.Request.Context(), orgID, sheetID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sheet)
}

// DeleteCallSheet handles DELETE /api/v1/call-sheets/:id
func (h *ProductionHandler) DeleteCallSheet(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	sheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid call sheet ID")
		return
	}

	if err := h.productionService.DeleteCallSheet(c.Request.Context(), orgID, sheetID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "call sheet deleted"})
}
