package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bizprep/internal/cache"
	"bizprep/internal/domain"
	"bizprep/internal/dto"
	"bizprep/internal/logger"
	"bizprep/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const questionListCacheTTL = 5 * time.Minute

// QuestionService defines the interface for serving generated questions
type QuestionService interface {
	// GetQuestions returns questions for an event identified by id or slug.
	GetQuestions(ctx context.Context, eventRef string, limit int, publishedOnly bool) (*dto.QuestionListResponse, error)
}

type questionService struct {
	events    domain.EventRepository
	questions domain.QuestionRepository
	cache     domain.Cache
	group     singleflight.Group
}

// NewQuestionService creates a new instance of questionService
func NewQuestionService(events domain.EventRepository, questions domain.QuestionRepository, cacheClient domain.Cache) QuestionService {
	return &questionService{
		events:    events,
		questions: questions,
		cache:     cacheClient,
	}
}

func (s *questionService) GetQuestions(ctx context.Context, eventRef string, limit int, publishedOnly bool) (*dto.QuestionListResponse, error) {
	event, err := s.resolveEvent(ctx, eventRef)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.NewNotFoundError("event not found: " + eventRef)
	}

	// Only the default view is cached; filtered variants go to the DB.
	cacheable := s.cache != nil && limit <= 0 && publishedOnly
	cacheKey := cache.GenerateCacheKey("question", "list", event.ID)

	if cacheable {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp dto.QuestionListResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			logger.Get().Warn("Failed to unmarshal cached question list",
				zap.String("cache_key", cacheKey))
		}
	}

	// Collapse concurrent identical loads into one DB round trip.
	flightKey := fmt.Sprintf("%s:%d:%t", cacheKey, limit, publishedOnly)
	result, err, _ := s.group.Do(flightKey, func() (interface{}, error) {
		questions, err := s.questions.ListByEvent(ctx, event.ID, limit, publishedOnly)
		if err != nil {
			return nil, err
		}

		resp := &dto.QuestionListResponse{
			Questions: make([]dto.QuestionResponse, 0, len(questions)),
			Count:     len(questions),
		}
		for _, q := range questions {
			resp.Questions = append(resp.Questions, dto.QuestionResponse{
				ID:            q.ID,
				Question:      q.Question,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				Difficulty:    q.Difficulty,
				TopicTags:     q.TopicTags,
			})
		}

		if cacheable {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.cache.Set(ctx, cacheKey, string(data), questionListCacheTTL); err != nil {
					logger.Get().Warn("Failed to cache question list", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*dto.QuestionListResponse), nil
}

// resolveEvent treats a ULID-shaped reference as a primary key and anything
// else as a slug.
func (s *questionService) resolveEvent(ctx context.Context, eventRef string) (*domain.Event, error) {
	if validation.IsValidULID(eventRef) {
		return s.events.GetByID(ctx, eventRef)
	}
	return s.events.GetBySlug(ctx, eventRef)
}
