package repository

import (
	"context"
	"fmt"
	"time"

	"bizprep/internal/domain"
	"bizprep/internal/repository/models"
	"bizprep/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const knowledgeBaseColumns = `id, event_id, file_name, file_url, file_size, file_type, extracted_text, chunk_count, created_at`

// KnowledgeBaseDatabaseAdapter implements domain.KnowledgeBaseRepository
// using sqlx.
type KnowledgeBaseDatabaseAdapter struct {
	db DBTX
}

// NewKnowledgeBaseDatabaseAdapter creates a new instance of
// KnowledgeBaseDatabaseAdapter.
func NewKnowledgeBaseDatabaseAdapter(db *sqlx.DB) domain.KnowledgeBaseRepository {
	return &KnowledgeBaseDatabaseAdapter{db: db}
}

// Save implements domain.KnowledgeBaseRepository
func (a *KnowledgeBaseDatabaseAdapter) Save(ctx context.Context, entry *domain.KnowledgeBaseEntry) error {
	if entry == nil {
		return fmt.Errorf("cannot save nil knowledge base entry")
	}
	if entry.ID == "" {
		entry.ID = util.NewULID()
	}
	entry.CreatedAt = time.Now()

	query := `INSERT INTO knowledge_base (
		id, event_id, file_name, file_url, file_size, file_type, extracted_text, chunk_count, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		entry.ID,
		entry.EventID,
		entry.FileName,
		entry.FileURL,
		entry.FileSize,
		entry.FileType,
		entry.ExtractedText,
		entry.ChunkCount,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save knowledge base entry: %w", err)
	}
	return nil
}

// GetByIDs implements domain.KnowledgeBaseRepository. Missing ids are simply
// absent from the result; callers compare lengths to detect them.
func (a *KnowledgeBaseDatabaseAdapter) GetByIDs(ctx context.Context, ids []string) ([]*domain.KnowledgeBaseEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.KnowledgeBase
	query := `SELECT ` + knowledgeBaseColumns + ` FROM knowledge_base WHERE id = ANY($1) ORDER BY created_at ASC`

	err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge base entries: %w", err)
	}

	entries := make([]*domain.KnowledgeBaseEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, toDomainKnowledgeBase(&rows[i]))
	}
	return entries, nil
}

// ListByEvent implements domain.KnowledgeBaseRepository
func (a *KnowledgeBaseDatabaseAdapter) ListByEvent(ctx context.Context, eventID string) ([]*domain.KnowledgeBaseEntry, error) {
	var rows []models.KnowledgeBase
	query := `SELECT ` + knowledgeBaseColumns + ` FROM knowledge_base WHERE event_id = $1 ORDER BY created_at DESC`

	err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge base entries for event %s: %w", eventID, err)
	}

	entries := make([]*domain.KnowledgeBaseEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, toDomainKnowledgeBase(&rows[i]))
	}
	return entries, nil
}

func toDomainKnowledgeBase(m *models.KnowledgeBase) *domain.KnowledgeBaseEntry {
	if m == nil {
		return nil
	}
	return &domain.KnowledgeBaseEntry{
		ID:            m.ID,
		EventID:       m.EventID,
		FileName:      m.FileName,
		FileURL:       m.FileURL,
		FileSize:      m.FileSize,
		FileType:      m.FileType,
		ExtractedText: m.ExtractedText,
		ChunkCount:    m.ChunkCount,
		CreatedAt:     m.CreatedAt,
	}
}
