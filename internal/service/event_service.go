package service

import (
	"context"
	"encoding/json"
	"time"

	"bizprep/internal/cache"
	"bizprep/internal/domain"
	"bizprep/internal/dto"
	"bizprep/internal/logger"

	"go.uber.org/zap"
)

const eventListCacheTTL = 10 * time.Minute

// EventService defines the interface for event-related operations
type EventService interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, organization string) (*dto.EventListResponse, error)
	UpdateEventImage(ctx context.Context, req *dto.UpdateEventImageRequest) error
}

type eventService struct {
	repo  domain.EventRepository
	cache domain.Cache
}

// NewEventService creates a new instance of eventService
func NewEventService(repo domain.EventRepository, cacheClient domain.Cache) EventService {
	return &eventService{
		repo:  repo,
		cache: cacheClient,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	event := domain.NewEvent(req.Name, domain.Organization(req.Organization), req.Slug, req.Description)
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	resp := toEventResponse(event)
	return &resp, nil
}

func (s *eventService) ListEvents(ctx context.Context, organization string) (*dto.EventListResponse, error) {
	if organization != "" && !domain.IsValidOrganization(organization) {
		return nil, domain.NewInvalidInputError("unknown organization filter: " + organization)
	}

	cacheKey := s.listCacheKey(organization)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp dto.EventListResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			logger.Get().Warn("Failed to unmarshal cached event list, falling back to DB",
				zap.String("cache_key", cacheKey))
		}
	}

	events, err := s.repo.List(ctx, organization)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventListResponse{Events: make([]dto.EventResponse, 0, len(events))}
	for _, event := range events {
		resp.Events = append(resp.Events, toEventResponse(event))
	}

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), eventListCacheTTL); err != nil {
				logger.Get().Warn("Failed to cache event list", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *eventService) UpdateEventImage(ctx context.Context, req *dto.UpdateEventImageRequest) error {
	if err := s.repo.UpdateImageURL(ctx, req.EventID, req.ImageURL); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *eventService) listCacheKey(organization string) string {
	if organization == "" {
		organization = "all"
	}
	return cache.GenerateCacheKey("event", "list", organization)
}

// invalidateListCache drops every organization variant of the list key.
func (s *eventService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, org := range []string{"", string(domain.OrganizationDECA), string(domain.OrganizationFBLA), string(domain.OrganizationBoth)} {
		if err := s.cache.Delete(ctx, s.listCacheKey(org)); err != nil {
			logger.Get().Warn("Failed to invalidate event list cache", zap.Error(err))
		}
	}
}

func toEventResponse(event *domain.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:             event.ID,
		Name:           event.Name,
		Organization:   string(event.Organization),
		Slug:           event.Slug,
		Description:    event.Description,
		ImageURL:       event.ImageURL,
		TotalQuestions: event.TotalQuestions,
		CreatedAt:      event.CreatedAt,
		UpdatedAt:      event.UpdatedAt,
	}
}
