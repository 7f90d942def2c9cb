package handler

import (
	"bizprep/internal/domain"
	"bizprep/internal/dto"
	"bizprep/internal/service"
	"bizprep/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GenerationHandler handles question generation HTTP requests
type GenerationHandler struct {
	service   service.GenerationService
	validator *validation.Validator
}

// NewGenerationHandler creates a new GenerationHandler instance
func NewGenerationHandler(service service.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Generate handles POST /api/generate
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidateGenerateRequest(req.EventID, req.KnowledgeBaseIDs, req.QuestionCount); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.RequestGeneration(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetGeneration handles GET /api/generations/:id
func (h *GenerationHandler) GetGeneration(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validation.IsValidULID(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", id)}
	}

	resp, err := h.service.GetGeneration(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
