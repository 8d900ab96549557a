package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"setflow/internal/service"
)

// AssistHandler handles AI assistance endpoints.
type AssistHandler struct {
	assistService service.AssistService
}

// NewAssistHandler creates a new AssistHandler.
func NewAssistHandler(assistService service.AssistService) *AssistHandler {
	return &AssistHandler{assistService: assistService}
}

// Complete handles POST /api/v1/assist
// @Summary      Run an assistant task
// @Description  Sends a prompt plus optional project and shooting day context to the configured LLM provider. Tasks: script_analysis, budget_estimate, call_sheet_suggest.
// @Tags         assist
// @Accept       json
// @Produce      json
// @Param        request body service.AssistInput true "Task and prompt"
// @Success      200 {object} Response{data=port.AssistResponse}
// @Failure      400 {object} APIResponse
// @Failure      503 {object} APIResponse
// @Security     BearerAuth
// @Router       /assist [post]
func (h *AssistHandler) Complete(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.AssistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	resp, err := h.assistService.Complete(c.Request.Context(), orgID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, resp)
}
