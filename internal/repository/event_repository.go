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
	"github.com/lib/pq"
)

const eventColumns = `id, name, organization, slug, description, image_url, total_questions, created_at, updated_at`

// EventDatabaseAdapter implements domain.EventRepository using sqlx.
type EventDatabaseAdapter struct {
	db DBTX
}

// NewEventDatabaseAdapter creates a new instance of EventDatabaseAdapter.
func NewEventDatabaseAdapter(db *sqlx.DB) domain.EventRepository {
	return &EventDatabaseAdapter{db: db}
}

// GetByID implements domain.EventRepository
func (a *EventDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var model models.Event
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	err := GetExecutor(ctx, a.db).GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event by ID %s: %w", id, err)
	}
	return toDomainEvent(&model), nil
}

// GetBySlug implements domain.EventRepository
func (a *EventDatabaseAdapter) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	var model models.Event
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`

	err := GetExecutor(ctx, a.db).GetContext(ctx, &model, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event by slug %s: %w", slug, err)
	}
	return toDomainEvent(&model), nil
}

// List implements domain.EventRepository. "DECA" and "FBLA" filters include
// events tagged "Both"; an empty filter returns everything.
func (a *EventDatabaseAdapter) List(ctx context.Context, organization string) ([]*domain.Event, error) {
	var rows []models.Event
	var err error

	switch organization {
	case "", "All":
		query := `SELECT ` + eventColumns + ` FROM events ORDER BY name ASC`
		err = GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query)
	case string(domain.OrganizationDECA), string(domain.OrganizationFBLA):
		query := `SELECT ` + eventColumns + ` FROM events WHERE organization IN ($1, $2) ORDER BY name ASC`
		err = GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, organization, string(domain.OrganizationBoth))
	default:
		query := `SELECT ` + eventColumns + ` FROM events WHERE organization = $1 ORDER BY name ASC`
		err = GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, organization)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*domain.Event, 0, len(rows))
	for i := range rows {
		events = append(events, toDomainEvent(&rows[i]))
	}
	return events, nil
}

// Save implements domain.EventRepository
func (a *EventDatabaseAdapter) Save(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return fmt.Errorf("cannot save nil event")
	}
	if event.ID == "" {
		event.ID = util.NewULID()
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	query := `INSERT INTO events (
		id, name, organization, slug, description, image_url, total_questions, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		event.ID,
		event.Name,
		string(event.Organization),
		event.Slug,
		event.Description,
		event.ImageURL,
		event.TotalQuestions,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.NewSlugConflictError(event.Slug)
		}
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// UpdateImageURL implements domain.EventRepository
func (a *EventDatabaseAdapter) UpdateImageURL(ctx context.Context, id string, imageURL string) error {
	query := `UPDATE events SET image_url = $1, updated_at = $2 WHERE id = $3`

	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, imageURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update event image: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("Event not found: %s", id))
	}
	return nil
}

// IncrementTotalQuestions implements domain.EventRepository. The increment is
// a single atomic UPDATE so concurrent jobs cannot lose updates.
func (a *EventDatabaseAdapter) IncrementTotalQuestions(ctx context.Context, id string, delta int) error {
	query := `UPDATE events SET total_questions = total_questions + $1, updated_at = $2 WHERE id = $3`

	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, delta, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to increment question counter: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check increment result: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("Event not found: %s", id))
	}
	return nil
}

func toDomainEvent(m *models.Event) *domain.Event {
	if m == nil {
		return nil
	}
	return &domain.Event{
		ID:             m.ID,
		Name:           m.Name,
		Organization:   domain.Organization(m.Organization),
		Slug:           m.Slug,
		Description:    m.Description,
		ImageURL:       m.ImageURL,
		TotalQuestions: m.TotalQuestions,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
