package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bizprep/internal/domain"
	"bizprep/internal/repository/models"
	"bizprep/internal/util"

	"github.com/jmoiron/sqlx"
)

const generationColumns = `id, event_id, knowledge_base_ids, requested_count, additional_context, status, generated_count, error_message, completed_at, created_at`

// GenerationJobDatabaseAdapter implements domain.GenerationJobRepository
// using sqlx.
type GenerationJobDatabaseAdapter struct {
	db DBTX
}

// NewGenerationJobDatabaseAdapter creates a new instance of
// GenerationJobDatabaseAdapter.
func NewGenerationJobDatabaseAdapter(db *sqlx.DB) domain.GenerationJobRepository {
	return &GenerationJobDatabaseAdapter{db: db}
}

// Save implements domain.GenerationJobRepository
func (a *GenerationJobDatabaseAdapter) Save(ctx context.Context, job *domain.GenerationJob) error {
	if job == nil {
		return fmt.Errorf("cannot save nil generation job")
	}
	if job.ID == "" {
		job.ID = util.NewULID()
	}
	job.CreatedAt = time.Now()

	query := `INSERT INTO question_generations (
		id, event_id, knowledge_base_ids, requested_count, additional_context, status, generated_count, error_message, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		job.ID,
		job.EventID,
		models.StringSlice(job.KnowledgeBaseIDs),
		job.RequestedCount,
		job.AdditionalContext,
		string(job.Status),
		job.GeneratedCount,
		job.ErrorMessage,
		job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save generation job: %w", err)
	}
	return nil
}

// GetByID implements domain.GenerationJobRepository
func (a *GenerationJobDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.GenerationJob, error) {
	var model models.QuestionGeneration
	query := `SELECT ` + generationColumns + ` FROM question_generations WHERE id = $1`

	err := GetExecutor(ctx, a.db).GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generation job %s: %w", id, err)
	}
	return toDomainGenerationJob(&model), nil
}

// MarkCompleted implements domain.GenerationJobRepository
func (a *GenerationJobDatabaseAdapter) MarkCompleted(ctx context.Context, id string, generatedCount int) error {
	query := `UPDATE question_generations
	SET status = $1, generated_count = $2, completed_at = $3
	WHERE id = $4`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		string(domain.JobStatusCompleted), generatedCount, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark generation job %s completed: %w", id, err)
	}
	return nil
}

// MarkFailed implements domain.GenerationJobRepository
func (a *GenerationJobDatabaseAdapter) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	query := `UPDATE question_generations
	SET status = $1, error_message = $2, completed_at = $3
	WHERE id = $4`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		string(domain.JobStatusFailed), errorMessage, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark generation job %s failed: %w", id, err)
	}
	return nil
}

func toDomainGenerationJob(m *models.QuestionGeneration) *domain.GenerationJob {
	if m == nil {
		return nil
	}
	job := &domain.GenerationJob{
		ID:                m.ID,
		EventID:           m.EventID,
		KnowledgeBaseIDs:  []string(m.KnowledgeBaseIDs),
		RequestedCount:    m.RequestedCount,
		AdditionalContext: m.AdditionalContext,
		Status:            domain.JobStatus(m.Status),
		GeneratedCount:    m.GeneratedCount,
		ErrorMessage:      m.ErrorMessage,
		CreatedAt:         m.CreatedAt,
	}
	if m.CompletedAt.Valid {
		t := m.CompletedAt.Time
		job.CompletedAt = &t
	}
	return job
}
