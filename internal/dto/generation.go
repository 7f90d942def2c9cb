package dto

import "time"

// GenerateQuestionsRequest is the body for POST /api/generate
type GenerateQuestionsRequest struct {
	EventID           string   `json:"eventId"`
	KnowledgeBaseIDs  []string `json:"knowledgeBaseIds"`
	QuestionCount     int      `json:"questionCount"`
	AdditionalContext string   `json:"additionalContext,omitempty"`
}

// GenerateQuestionsResponse is returned immediately, before the background
// job finishes.
type GenerateQuestionsResponse struct {
	Success      bool   `json:"success"`
	GenerationID string `json:"generationId"`
	Message      string `json:"message"`
}

// GenerationJobResponse is the pollable job state for GET /api/generations/:id
type GenerationJobResponse struct {
	ID             string     `json:"id"`
	EventID        string     `json:"eventId"`
	RequestedCount int        `json:"requestedCount"`
	Status         string     `json:"status"`
	GeneratedCount int        `json:"generatedCount"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
