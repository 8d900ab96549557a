package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/service"
)

// FileHandler handles call sheet attachment endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload handles POST /api/v1/call-sheets/:id/files
// @Summary      Attach a file to a call sheet
// @Description  Uploads a pdf, jpg, or png attachment to object storage.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Call sheet UUID"
// @Param        file formData file true "File to upload"
// @Success      201 {object} Response{data=domain.FileMeta}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      413 {object} APIResponse
// @Security     BearerAuth
// @Router       /call-sheets/{id}/files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	orgID, memberID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	callSheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid call sheet ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file form field is required")
		return
	}
	defer file.Close()

	meta, err := h.fileService.Upload(c.Request.Context(), service.FileUploadInput{
		OrgID:       orgID,
		CallSheetID: callSheetID,
		UploadedBy:  memberID,
		File:        file,
		Header:      header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, meta)
}

// List handles GET /api/v1/call-sheets/:id/files
func (h *FileHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	callSheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid call sheet ID")
		return
	}

	files, err := h.fileService.ListByCallSheet(c.Request.Context(), orgID, callSheetID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, files)
}

// Download handles GET /api/v1/files/:id/download
// @Summary      Get a file download URL
// @Description  Returns a presigned URL for downloading the attachment.
// @Tags         files
// @Produce      json
// @Param        id path string true "File UUID"
// @Success      200 {object} Response{data=FileWithDownloadURL}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /files/{id}/download [get]
func (h *FileHandler) Download(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	meta, err := h.fileService.GetByID(c.Request.Context(), orgID, fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	url, err := h.fileService.GetDownloadURL(c.Request.Context(), orgID, fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, FileWithDownloadURL{File: *meta, DownloadURL: url})
}

// Delete handles DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), orgID, fileID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "file deleted"})
}
