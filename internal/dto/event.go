package dto

import "time"

// CreateEventRequest is the body for POST /api/events
type CreateEventRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
}

// UpdateEventImageRequest is the body for POST /api/events/image
type UpdateEventImageRequest struct {
	EventID  string `json:"eventId"`
	ImageURL string `json:"imageUrl"`
}

// EventResponse is one event in API responses
type EventResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Organization   string    `json:"organization"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	TotalQuestions int       `json:"totalQuestions"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EventListResponse wraps GET /api/events
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}
