package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	httpapi "github.com/spec-kit/maintenance-service/internal/api/http/respond"
	"github.com/spec-kit/maintenance-service/internal/service"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// FilesHandler accepts file uploads ahead of ticket creation.
type FilesHandler struct {
	files *service.FileService
}

// NewFilesHandler constructs the handler.
func NewFilesHandler(files *service.FileService) *FilesHandler {
	return &FilesHandler{files: files}
}

// Upload handles POST /files. The multipart field name is "file".
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart field 'file' is required", nil)
	}

	stored, err := h.files.SaveUpload(c.Context(), header)
	if err != nil {
		return err
	}

	return httpapi.Success(c, fiber.StatusCreated, "file uploaded", dto.UploadResponse{
		ID:        stored.ID,
		FileName:  stored.FileName,
		Path:      h.files.PublicPath(stored),
		SizeBytes: stored.SizeBytes,
		MimeType:  stored.MimeType,
	})
}
