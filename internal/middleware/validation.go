package middleware

import (
	"strings"

	"bizprep/internal/domain"
	"bizprep/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateQuestionsParams validates question listing request parameters
func (vm *ValidationMiddleware) ValidateQuestionsParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID := strings.TrimSpace(c.Query("eventId"))
		if eventID == "" {
			return domain.ValidationErrors{
				domain.NewMissingFieldError("eventId"),
			}
		}

		limit := 0 // no limit
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := parseLimit(limitStr)
			if err != nil {
				return domain.ValidationErrors{
					domain.NewInvalidFormatError("limit", limitStr),
				}
			}
			limit = parsed
		}

		publishedOnly := true
		switch c.Query("publishedOnly") {
		case "", "true":
		case "false":
			publishedOnly = false
		default:
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("publishedOnly", c.Query("publishedOnly")),
			}
		}

		// Store validated values in context for handlers to use
		c.Locals("validated_event_id", eventID)
		c.Locals("validated_limit", limit)
		c.Locals("validated_published_only", publishedOnly)
		return c.Next()
	}
}

// parseLimit parses the limit parameter with validation
func parseLimit(limitStr string) (int, error) {
	limit := 0
	for _, char := range limitStr {
		if char < '0' || char > '9' {
			return 0, domain.NewValidationError("limit must be a number")
		}
		limit = limit*10 + int(char-'0')
		if limit > 500 {
			return 0, domain.NewValidationError("limit exceeds maximum value")
		}
	}
	if limit == 0 {
		return 0, domain.NewValidationError("limit must be greater than 0")
	}
	return limit, nil
}
