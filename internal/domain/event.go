package domain

import (
	"regexp"
	"time"
)

// Organization identifies which competition circuit an event belongs to.
type Organization string

const (
	OrganizationDECA Organization = "DECA"
	OrganizationFBLA Organization = "FBLA"
	OrganizationBoth Organization = "Both"
)

// IsValidOrganization reports whether s is one of the fixed categories.
func IsValidOrganization(s string) bool {
	switch Organization(s) {
	case OrganizationDECA, OrganizationFBLA, OrganizationBoth:
		return true
	}
	return false
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsValidSlug reports whether s is URL-safe: lowercase alphanumerics
// separated by single hyphens.
func IsValidSlug(s string) bool {
	return len(s) > 0 && len(s) <= 100 && slugPattern.MatchString(s)
}

// Event represents one competitive event students can practice for.
type Event struct {
	ID             string
	Name           string
	Organization   Organization
	Slug           string
	Description    string
	ImageURL       string
	TotalQuestions int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewEvent creates a new Event instance
func NewEvent(name string, organization Organization, slug, description string) *Event {
	now := time.Now()
	return &Event{
		Name:         name,
		Organization: organization,
		Slug:         slug,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the event
func (e *Event) Validate() error {
	if e.Name == "" {
		return NewInvalidInputError("name is required")
	}
	if !IsValidOrganization(string(e.Organization)) {
		return NewInvalidInputError("organization must be DECA, FBLA or Both")
	}
	if !IsValidSlug(e.Slug) {
		return NewInvalidInputError("slug must be URL-safe (lowercase letters, digits, hyphens)")
	}
	return nil
}
