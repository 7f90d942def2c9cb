package handler

import (
	"bizprep/internal/domain"
	"bizprep/internal/dto"
	"bizprep/internal/service"
	"bizprep/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	service   service.EventService
	validator *validation.Validator
}

// NewEventHandler creates a new EventHandler instance
func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	resp, err := h.service.ListEvents(c.Context(), c.Query("organization"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidateCreateEventRequest(req.Name, req.Slug, req.Organization); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.CreateEvent(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateEventImage handles POST /api/events/image
func (h *EventHandler) UpdateEventImage(c *fiber.Ctx) error {
	var req dto.UpdateEventImageRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	var errs domain.ValidationErrors
	if req.EventID == "" {
		errs = append(errs, domain.NewMissingFieldError("eventId"))
	} else if !validation.IsValidULID(req.EventID) {
		errs = append(errs, domain.NewInvalidFormatError("eventId", req.EventID))
	}
	if req.ImageURL == "" {
		errs = append(errs, domain.NewMissingFieldError("imageUrl"))
	}
	if len(errs) > 0 {
		return errs
	}

	if err := h.service.UpdateEventImage(c.Context(), &req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
