package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/domain"
	"setflow/internal/service"
)

// ProposalHandler handles proposal endpoints.
type ProposalHandler struct {
	proposalService service.ProposalService
}

// NewProposalHandler creates a new ProposalHandler.
func NewProposalHandler(proposalService service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

// Create handles POST /api/v1/proposals
// @Summary      Create a proposal
// @Description  Creates a draft proposal. Totals are computed server-side from line items, discount, and the organization's tax regime.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        request body service.CreateProposalInput true "Proposal details"
// @Success      201 {object} Response{data=domain.Proposal}
// @Failure      400 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Security     BearerAuth
// @Router       /proposals [post]
func (h *ProposalHandler) Create(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	var input service.CreateProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	proposal, err := h.proposalService.Create(c.Request.Context(), claims, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, proposal)
}

// List handles GET /api/v1/proposals
// @Summary      List proposals
// @Tags         proposals
// @Produce      json
// @Param        status query string false "Filter by status" Enums(draft, sent, approved, rejected, expired)
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} Response{data=[]domain.Proposal,meta=PagMeta}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	status := domain.ProposalStatus(c.Query("status"))

	proposals, total, err := h.proposalService.List(c.Request.Context(), orgID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, proposals, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/proposals/:id
func (h *ProposalHandler) GetByID(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	proposal, err := h.proposalService.GetByID(c.Request.Context(), orgID, proposalID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, proposal)
}

// Update handles PUT /api/v1/proposals/:id
// @Summary      Update a proposal
// @Description  Updates proposal fields and recomputes totals. Financial fields are rejected once the proposal is decided.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id path string true "Proposal UUID"
// @Param        request body service.UpdateProposalInput true "Fields to update"
// @Success      200 {object} Response{data=domain.Proposal}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /proposals/{id} [put]
func (h *ProposalHandler) Update(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	var input service.UpdateProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	proposal, err := h.proposalService.Update(c.Request.Context(), claims, proposalID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, proposal)
}

// Delete handles DELETE /api/v1/proposals/:id
func (h *ProposalHandler) Delete(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	if err := h.proposalService.Delete(c.Request.Context(), orgID, proposalID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "proposal deleted"})
}

// Send handles POST /api/v1/proposals/:id/send
// @Summary      Send a proposal
// @Description  Moves a draft to sent after a final totals recompute.
// @Tags         proposals
// @Produce      json
// @Param        id path string true "Proposal UUID"
// @Success      200 {object} Response{data=domain.Proposal}
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /proposals/{id}/send [post]
func (h *ProposalHandler) Send(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	proposal, err := h.proposalService.Send(c.Request.Context(), claims, proposalID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, proposal)
}

// Approve handles POST /api/v1/proposals/:id/approve
// @Summary      Approve a proposal
// @Description  Approves a sent proposal and spawns a project with the proposal total as its budget.
// @Tags         proposals
// @Produce      json
// @Param        id path string true "Proposal UUID"
// @Success      200 {object} Response{data=domain.Proposal}
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /proposals/{id}/approve [post]
func (h *ProposalHandler) Approve(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	proposal, err := h.proposalService.Approve(c.Request.Context(), claims, proposalID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, proposal)
}

// Reject handles POST /api/v1/proposals/:id/reject
func (h *ProposalHandler) Reject(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	proposal, err := h.proposalService.Reject(c.Request.Context(), claims, proposalID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, proposal)
}
