package handler

import (
	"io"

	"bizprep/internal/domain"
	"bizprep/internal/service"
	"bizprep/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles study guide upload requests
type UploadHandler struct {
	service   service.UploadService
	validator *validation.Validator
}

// NewUploadHandler creates a new UploadHandler instance
func NewUploadHandler(service service.UploadService) *UploadHandler {
	return &UploadHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Upload handles POST /api/upload (multipart form: file, eventId)
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	eventID := c.FormValue("eventId")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}

	if errs := h.validator.ValidateUploadRequest(eventID, fileHeader.Filename); len(errs) > 0 {
		return errs
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInvalidInputError("could not open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	resp, err := h.service.UploadStudyGuide(c.Context(), eventID, fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
