package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/service"
)

// MemberHandler handles team member endpoints.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List handles GET /api/v1/members
// @Summary      List team members
// @Tags         members
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} Response{data=[]domain.Member,meta=PagMeta}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	members, total, err := h.memberService.List(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, members, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/members/:id
// @Summary      Get a team member
// @Tags         members
// @Produce      json
// @Param        id path string true "Member UUID"
// @Success      200 {object} Response{data=domain.Member}
// @Failure      401 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /members/{id} [get]
func (h *MemberHandler) GetByID(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid member ID")
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), orgID, memberID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, member)
}

// Me handles GET /api/v1/members/me
func (h *MemberHandler) Me(c *gin.Context) {
	orgID, memberID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), orgID, memberID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, member)
}

// UpdateRole handles PUT /api/v1/members/:id/role
// @Summary      Change a member's role
// @Description  Reassigns the member's effective role. Owner only; the master owner is immutable.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id path string true "Member UUID"
// @Param        request body service.UpdateMemberRoleInput true "New role"
// @Success      200 {object} Response{data=domain.Member}
// @Failure      400 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /members/{id}/role [put]
func (h *MemberHandler) UpdateRole(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid member ID")
		return
	}

	var input service.UpdateMemberRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	member, err := h.memberService.UpdateRole(c.Request.Context(), claims, memberID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, member)
}

// UpdateProfile handles PUT /api/v1/members/me
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	orgID, memberID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	member, err := h.memberService.UpdateProfile(c.Request.Context(), orgID, memberID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, member)
}

// Remove handles DELETE /api/v1/members/:id
// @Summary      Remove a team member
// @Description  Deactivates the member. Admins can remove producers and below; owners can remove anyone but the master owner.
// @Tags         members
// @Produce      json
// @Param        id path string true "Member UUID"
// @Success      200 {object} Response{data=MessageResponse}
// @Failure      400 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /members/{id} [delete]
func (h *MemberHandler) Remove(c *gin.Context) {
	claims := extractClaims(c)
	if claims == nil {
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid member ID")
		return
	}

	if err := h.memberService.Remove(c.Request.Context(), claims, memberID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "member removed"})
}
