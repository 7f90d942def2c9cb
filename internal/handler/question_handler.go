package handler

import (
	"bizprep/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question serving HTTP requests
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

// GetQuestions handles GET /api/questions. It expects the validation
// middleware to have stored the validated parameters in context locals.
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	eventRef := c.Locals("validated_event_id").(string)
	limit := c.Locals("validated_limit").(int)
	publishedOnly := c.Locals("validated_published_only").(bool)

	resp, err := h.service.GetQuestions(c.Context(), eventRef, limit, publishedOnly)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
