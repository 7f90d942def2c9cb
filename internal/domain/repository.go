package domain

import "context"

// EventRepository defines the interface for event persistence
type EventRepository interface {
	// GetByID retrieves an event by its primary identifier
	GetByID(ctx context.Context, id string) (*Event, error)

	// GetBySlug retrieves an event by its URL slug
	GetBySlug(ctx context.Context, slug string) (*Event, error)

	// List returns events, optionally filtered by organization.
	// "DECA" and "FBLA" filters also include "Both".
	List(ctx context.Context, organization string) ([]*Event, error)

	// Save persists a new event
	Save(ctx context.Context, event *Event) error

	// UpdateImageURL replaces the event's image URL
	UpdateImageURL(ctx context.Context, id string, imageURL string) error

	// IncrementTotalQuestions atomically adds delta to the event's
	// running question counter
	IncrementTotalQuestions(ctx context.Context, id string, delta int) error
}

// KnowledgeBaseRepository defines the interface for knowledge-base persistence
type KnowledgeBaseRepository interface {
	// Save persists a new knowledge base entry
	Save(ctx context.Context, entry *KnowledgeBaseEntry) error

	// GetByIDs retrieves entries for the given ids; missing ids are simply
	// absent from the result
	GetByIDs(ctx context.Context, ids []string) ([]*KnowledgeBaseEntry, error)

	// ListByEvent returns all entries for an event
	ListByEvent(ctx context.Context, eventID string) ([]*KnowledgeBaseEntry, error)
}

// GenerationJobRepository defines the interface for generation-job persistence
type GenerationJobRepository interface {
	// Save persists a new job record
	Save(ctx context.Context, job *GenerationJob) error

	// GetByID retrieves a job by its identifier
	GetByID(ctx context.Context, id string) (*GenerationJob, error)

	// MarkCompleted transitions the job to its completed terminal state
	MarkCompleted(ctx context.Context, id string, generatedCount int) error

	// MarkFailed transitions the job to its failed terminal state
	MarkFailed(ctx context.Context, id string, errorMessage string) error
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// SaveBatch persists all questions of one generation job
	SaveBatch(ctx context.Context, questions []*Question) error

	// ListByEvent returns questions for an event, newest first.
	// limit <= 0 means no limit.
	ListByEvent(ctx context.Context, eventID string, limit int, publishedOnly bool) ([]*Question, error)
}

// TransactionManager runs fn inside a database transaction; repository calls
// made with the ctx it passes to fn join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
