package repository

import (
	"context"
	"testing"
	"time"

	"bizprep/internal/domain"
	"bizprep/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var pqUniqueViolation = pq.Error{Code: "23505", Constraint: "events_slug_key"}

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func eventRows(events ...*domain.Event) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "organization", "slug", "description", "image_url",
		"total_questions", "created_at", "updated_at",
	})
	for _, e := range events {
		rows.AddRow(e.ID, e.Name, string(e.Organization), e.Slug, e.Description,
			e.ImageURL, e.TotalQuestions, e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func TestEventGetByID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewEventDatabaseAdapter(db)

	now := time.Now()
	event := &domain.Event{
		ID:           util.NewULID(),
		Name:         "Principles of Marketing",
		Organization: domain.OrganizationDECA,
		Slug:         "principles-of-marketing",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(`SELECT .+ FROM events WHERE id = \$1`).
		WithArgs(event.ID).
		WillReturnRows(eventRows(event))

	got, err := repo.GetByID(context.Background(), event.ID)

	assert.NoError(t, err)
	assert.Equal(t, event.Name, got.Name)
	assert.Equal(t, domain.OrganizationDECA, got.Organization)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventGetByID_NoRowsReturnsNil(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewEventDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT .+ FROM events WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(eventRows())

	got, err := repo.GetByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestEventList_OrganizationFilterIncludesBoth(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewEventDatabaseAdapter(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM events WHERE organization IN \(\$1, \$2\) ORDER BY name ASC`).
		WithArgs("DECA", "Both").
		WillReturnRows(eventRows(
			&domain.Event{ID: util.NewULID(), Name: "Finance", Organization: domain.OrganizationBoth, Slug: "finance", CreatedAt: now, UpdatedAt: now},
			&domain.Event{ID: util.NewULID(), Name: "Marketing", Organization: domain.OrganizationDECA, Slug: "marketing", CreatedAt: now, UpdatedAt: now},
		))

	events, err := repo.List(context.Background(), "DECA")

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventList_NoFilterReturnsAll(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewEventDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT .+ FROM events ORDER BY name ASC`).
		WillReturnRows(eventRows())

	events, err := repo.List(context.Background(), "")

	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventSave_AssignsULID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewEventDatabaseAdapter(db)

	event := domain.NewEvent("Sports and Entertainment Marketing", domain.OrganizationDECA, "sports-entertainment-marketing", "")

	mock.ExpectExec(`INSERT INTO events`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), event)

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventSave_DuplicateSlug(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewEventDatabaseAdapter(db)

	event := domain.NewEvent("Marketing", domain.OrganizationDECA, "marketing", "")

	mock.ExpectExec(`INSERT INTO events`).
		WillReturnError(&pqUniqueViolation)

	err := repo.Save(context.Background(), event)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeSlugConflict, domainErr.Code)
}

func TestEventIncrementTotalQuestions(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewEventDatabaseAdapter(db)

	id := util.NewULID()
	mock.ExpectExec(`UPDATE events SET total_questions = total_questions \+ \$1`).
		WithArgs(10, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementTotalQuestions(context.Background(), id, 10)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventIncrementTotalQuestions_MissingEvent(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewEventDatabaseAdapter(db)

	mock.ExpectExec(`UPDATE events SET total_questions = total_questions \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementTotalQuestions(context.Background(), "missing", 5)

	assert.True(t, domain.IsNotFound(err))
}

func TestEventUpdateImageURL_MissingEvent(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewEventDatabaseAdapter(db)

	mock.ExpectExec(`UPDATE events SET image_url = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateImageURL(context.Background(), "missing", "https://img.example.com/e.png")

	assert.True(t, domain.IsNotFound(err))
}
