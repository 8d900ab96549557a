package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/service"
)

// InviteHandler handles team invitation endpoints.
type InviteHandler struct {
	inviteService service.InviteService
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(inviteService service.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// Create handles POST /api/v1/invites
// @Summary      Invite a team member
// @Description  Creates a pending invite and emails an acceptance link. Responds 402 when the seat limit is hit and overage is disallowed; otherwise the response may carry a warning.
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        request body service.CreateInviteInput true "Invite details"
// @Success      201 {object} Response{data=service.InviteOutput}
// @Failure      400 {object} APIResponse
// @Failure      402 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /invites [post]
func (h *InviteHandler) Create(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	var input service.CreateInviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	output, err := h.inviteService.Create(c.Request.Context(), claims, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, output)
}

// List handles GET /api/v1/invites
// @Summary      List invites
// @Tags         invites
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} Response{data=[]domain.Invite,meta=PagMeta}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /invites [get]
func (h *InviteHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	invites, total, err := h.inviteService.List(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invites, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Resend handles POST /api/v1/invites/:id/resend
// @Summary      Resend an invite
// @Description  Rotates the invite token, extends the expiry, and re-sends the email. Concurrent resends collapse into one send.
// @Tags         invites
// @Produce      json
// @Param        id path string true "Invite UUID"
// @Success      200 {object} Response{data=service.InviteOutput}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /invites/{id}/resend [post]
func (h *InviteHandler) Resend(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	inviteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invite ID")
		return
	}

	output, err := h.inviteService.Resend(c.Request.Context(), claims, inviteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, output)
}

// Revoke handles POST /api/v1/invites/:id/revoke
// @Summary      Revoke an invite
// @Description  Revokes a pending invite. Revoking an already revoked invite is a no-op.
// @Tags         invites
// @Produce      json
// @Param        id path string true "Invite UUID"
// @Success      200 {object} Response{data=domain.Invite}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /invites/{id}/revoke [post]
func (h *InviteHandler) Revoke(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	inviteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invite ID")
		return
	}

	invite, err := h.inviteService.Revoke(c.Request.Context(), claims, inviteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invite)
}

// Accept handles POST /api/v1/invites/accept (public)
// @Summary      Accept an invite
// @Description  Exchanges a valid invite token for a new member account.
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        request body service.AcceptInviteInput true "Token and account details"
// @Success      201 {object} Response{data=domain.Member}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Failure      410 {object} APIResponse
// @Router       /invites/accept [post]
func (h *InviteHandler) Accept(c *gin.Context) {
	var input service.AcceptInviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	member, err := h.inviteService.Accept(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, member)
}
