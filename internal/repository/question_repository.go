package repository

import (
	"context"
	"fmt"
	"time"

	"bizprep/internal/domain"
	"bizprep/internal/repository/models"
	"bizprep/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id, event_id, knowledge_base_id, generation_id, question, options, correct_answer, explanation, difficulty, topic_tags, is_published, created_at`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of
// QuestionDatabaseAdapter.
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// SaveBatch implements domain.QuestionRepository. All rows of one job are
// written with the same executor, so wrapping the call in a transaction makes
// the batch all-or-nothing.
func (a *QuestionDatabaseAdapter) SaveBatch(ctx context.Context, questions []*domain.Question) error {
	if len(questions) == 0 {
		return nil
	}

	query := `INSERT INTO questions (
		id, event_id, knowledge_base_id, generation_id, question, options, correct_answer, explanation, difficulty, topic_tags, is_published, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	exec := GetExecutor(ctx, a.db)
	now := time.Now()
	for _, q := range questions {
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.CreatedAt = now

		_, err := exec.ExecContext(ctx, query,
			q.ID,
			q.EventID,
			q.KnowledgeBaseID,
			q.GenerationID,
			q.Question,
			models.StringSlice(q.Options),
			q.CorrectAnswer,
			q.Explanation,
			q.Difficulty,
			models.StringSlice(q.TopicTags),
			q.IsPublished,
			q.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save question for generation %s: %w", q.GenerationID, err)
		}
	}
	return nil
}

// ListByEvent implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListByEvent(ctx context.Context, eventID string, limit int, publishedOnly bool) ([]*domain.Question, error) {
	var rows []models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE event_id = $1`
	args := []interface{}{eventID}

	if publishedOnly {
		query += ` AND is_published = true`
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions for event %s: %w", eventID, err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:              m.ID,
		EventID:         m.EventID,
		KnowledgeBaseID: m.KnowledgeBaseID,
		GenerationID:    m.GenerationID,
		Question:        m.Question,
		Options:         []string(m.Options),
		CorrectAnswer:   m.CorrectAnswer,
		Explanation:     m.Explanation,
		Difficulty:      m.Difficulty,
		TopicTags:       []string(m.TopicTags),
		IsPublished:     m.IsPublished,
		CreatedAt:       m.CreatedAt,
	}
}
