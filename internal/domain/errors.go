package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"
	CodeSlugConflict  ErrorCode = "SLUG_CONFLICT"
	CodePersistence   ErrorCode = "PERSISTENCE_ERROR"

	// Generation pipeline errors
	CodeProviderConfig      ErrorCode = "PROVIDER_CONFIG"
	CodeGenerationEmpty     ErrorCode = "GENERATION_EMPTY"
	CodeGenerationMalformed ErrorCode = "GENERATION_MALFORMED"
	CodeGenerationAPIError  ErrorCode = "GENERATION_API_ERROR"
	CodeNoValidQuestions    ErrorCode = "NO_VALID_QUESTIONS"
)

// DomainError represents a domain-specific error with an optional cause and
// structured context for the error response body.
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair to the error's context.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for the error taxonomy

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewPersistenceError(message string, cause error) *DomainError {
	return NewError(CodePersistence, message, cause)
}

func NewSlugConflictError(slug string) *DomainError {
	return NewError(CodeSlugConflict, fmt.Sprintf("An event with slug %q already exists", slug), nil)
}

func NewProviderConfigError(message string) *DomainError {
	return NewError(CodeProviderConfig, message, nil)
}

// NewGenerationEmptyError reports an LLM response with no content at all.
func NewGenerationEmptyError() *DomainError {
	return NewError(CodeGenerationEmpty, "Generation API returned no content", nil)
}

// NewGenerationMalformedError reports a response that could not be parsed as
// JSON by any strategy.
func NewGenerationMalformedError(cause error) *DomainError {
	return NewError(CodeGenerationMalformed, "Generation API response is not valid JSON", cause)
}

// NewGenerationAPIError wraps a rejection from the generation provider.
func NewGenerationAPIError(cause error) *DomainError {
	return NewError(CodeGenerationAPIError, "Generation API call failed", cause)
}

// NewNoValidQuestionsError reports that every candidate failed validation.
func NewNoValidQuestionsError(rejected int) *DomainError {
	return NewError(CodeNoValidQuestions,
		fmt.Sprintf("No candidate questions passed validation (%d rejected)", rejected), nil)
}

// IsNotFound reports whether err is a NOT_FOUND domain error.
func IsNotFound(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == CodeNotFound
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level validation failures for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError creates a generic validation domain error.
func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value),
	}
}
