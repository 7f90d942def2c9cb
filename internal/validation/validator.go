package validation

import (
	"regexp"
	"strings"

	"bizprep/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateEventRequest validates the create event request
func (v *Validator) ValidateCreateEventRequest(name, slug, organization string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	} else if len(name) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("name", len(name), 1, 200))
	}

	if strings.TrimSpace(slug) == "" {
		errors = append(errors, domain.NewMissingFieldError("slug"))
	} else if !domain.IsValidSlug(slug) {
		errors = append(errors, domain.NewInvalidFormatError("slug", slug))
	}

	if strings.TrimSpace(organization) == "" {
		errors = append(errors, domain.NewMissingFieldError("organization"))
	} else if !domain.IsValidOrganization(organization) {
		errors = append(errors, domain.NewInvalidFormatError("organization", organization))
	}

	return errors
}

// ValidateGenerateRequest validates the question generation request
func (v *Validator) ValidateGenerateRequest(eventID string, knowledgeBaseIDs []string, questionCount int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(eventID) == "" {
		errors = append(errors, domain.NewMissingFieldError("event_id"))
	} else if !IsValidULID(eventID) {
		errors = append(errors, domain.NewInvalidFormatError("event_id", eventID))
	}

	if len(knowledgeBaseIDs) == 0 {
		errors = append(errors, domain.NewMissingFieldError("knowledge_base_ids"))
	} else {
		for _, id := range knowledgeBaseIDs {
			if !IsValidULID(id) {
				errors = append(errors, domain.NewInvalidFormatError("knowledge_base_ids", id))
				break
			}
		}
	}

	if questionCount <= 0 || questionCount > 100 {
		errors = append(errors, domain.NewOutOfRangeError("question_count", questionCount, 1, 100))
	}

	return errors
}

// ValidateUploadRequest validates the knowledge base upload fields
func (v *Validator) ValidateUploadRequest(eventID, fileName string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(eventID) == "" {
		errors = append(errors, domain.NewMissingFieldError("event_id"))
	} else if !IsValidULID(eventID) {
		errors = append(errors, domain.NewInvalidFormatError("event_id", eventID))
	}

	if strings.TrimSpace(fileName) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
	}

	return errors
}

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// IsValidULID checks if the string is a valid ULID format
func IsValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	return ulidPattern.MatchString(s)
}
