package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/service"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /api/v1/notifications
// @Summary      List notifications
// @Description  Lists the member's notifications, newest first. Pass unread=true for unread only.
// @Tags         notifications
// @Produce      json
// @Param        unread query bool false "Only unread notifications"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} Response{data=[]domain.Notification,meta=PagMeta}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	orgID, memberID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.notificationService.List(c.Request.Context(), orgID, memberID, unreadOnly, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, notifications, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// MarkRead handles POST /api/v1/notifications/:id/read
// @Summary      Mark a notification as read
// @Description  Marking an already read notification is a no-op.
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification UUID"
// @Success      200 {object} Response{data=MessageResponse}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	orgID, memberID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), orgID, memberID, notificationID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "notification marked as read"})
}
