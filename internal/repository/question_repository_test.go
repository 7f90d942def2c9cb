package repository

import (
	"context"
	"testing"
	"time"

	"bizprep/internal/domain"
	"bizprep/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestQuestionSaveBatch(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuestionDatabaseAdapter(db)

	questions := []*domain.Question{
		{
			EventID:       util.NewULID(),
			GenerationID:  util.NewULID(),
			Question:      "What does SWOT stand for?",
			Options:       []string{"Strengths weaknesses opportunities threats", "Sales workflow order tracking", "Systematic work output timing", "Strategic wealth oversight tool"},
			CorrectAnswer: 0,
			Explanation:   "SWOT analysis reviews internal strengths and weaknesses alongside external opportunities and threats.",
			Difficulty:    domain.DifficultyEasy,
			IsPublished:   true,
		},
		{
			EventID:       util.NewULID(),
			GenerationID:  util.NewULID(),
			Question:      "Which statement reports profitability over a period?",
			Options:       []string{"The income statement", "The balance sheet", "A cash budget", "An audit report"},
			CorrectAnswer: 0,
			Explanation:   "The income statement summarizes revenues and expenses over a reporting period.",
			Difficulty:    domain.DifficultyMedium,
			IsPublished:   true,
		},
	}

	mock.ExpectExec(`INSERT INTO questions`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO questions`).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveBatch(context.Background(), questions)

	assert.NoError(t, err)
	assert.NotEmpty(t, questions[0].ID)
	assert.NotEmpty(t, questions[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionSaveBatch_EmptyIsNoop(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuestionDatabaseAdapter(db)

	err := repo.SaveBatch(context.Background(), nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func questionRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "event_id", "knowledge_base_id", "generation_id", "question", "options",
		"correct_answer", "explanation", "difficulty", "topic_tags", "is_published", "created_at",
	}).AddRow(util.NewULID(), util.NewULID(), util.NewULID(), util.NewULID(),
		"Which element of the marketing mix covers distribution?",
		`["The place","The product","A promotion","Unit price"]`,
		0, "Place covers how the product reaches the customer.", "easy",
		`["marketing-mix"]`, true, now)
}

func TestQuestionListByEvent_PublishedOnly(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuestionDatabaseAdapter(db)

	eventID := util.NewULID()
	mock.ExpectQuery(`SELECT .+ FROM questions WHERE event_id = \$1 AND is_published = true ORDER BY created_at DESC`).
		WithArgs(eventID).
		WillReturnRows(questionRows())

	questions, err := repo.ListByEvent(context.Background(), eventID, 0, true)

	assert.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, []string{"The place", "The product", "A promotion", "Unit price"}, questions[0].Options)
	assert.Equal(t, []string{"marketing-mix"}, questions[0].TopicTags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionListByEvent_WithLimit(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuestionDatabaseAdapter(db)

	eventID := util.NewULID()
	mock.ExpectQuery(`SELECT .+ FROM questions WHERE event_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs(eventID, 25).
		WillReturnRows(questionRows())

	questions, err := repo.ListByEvent(context.Background(), eventID, 25, false)

	assert.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
