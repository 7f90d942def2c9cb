package service

import (
	"context"
	"strings"

	"bizprep/internal/cache"
	"bizprep/internal/config"
	"bizprep/internal/domain"
	"bizprep/internal/dto"
	"bizprep/internal/logger"
	"bizprep/internal/quizgen"
	"bizprep/internal/util"

	"go.uber.org/zap"
)

// GenerationService defines the interface for question generation jobs
type GenerationService interface {
	// RequestGeneration validates the request, records a job and enqueues it
	// for the background worker. It returns before generation runs.
	RequestGeneration(ctx context.Context, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error)

	// GetGeneration returns the current state of a job for polling.
	GetGeneration(ctx context.Context, id string) (*dto.GenerationJobResponse, error)

	// Run processes enqueued jobs until ctx is cancelled. Jobs run one at a
	// time so counter updates on an event never race.
	Run(ctx context.Context)
}

type generationService struct {
	events    domain.EventRepository
	knowledge domain.KnowledgeBaseRepository
	jobs      domain.GenerationJobRepository
	questions domain.QuestionRepository
	txManager domain.TransactionManager
	generator domain.QuestionGenerator
	cache     domain.Cache
	cfg       config.GenerationConfig
	queue     chan *domain.GenerationJob
}

// NewGenerationService creates a new instance of generationService
func NewGenerationService(
	events domain.EventRepository,
	knowledge domain.KnowledgeBaseRepository,
	jobs domain.GenerationJobRepository,
	questions domain.QuestionRepository,
	txManager domain.TransactionManager,
	generator domain.QuestionGenerator,
	cacheClient domain.Cache,
	cfg config.GenerationConfig,
) GenerationService {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1
	}
	return &generationService{
		events:    events,
		knowledge: knowledge,
		jobs:      jobs,
		questions: questions,
		txManager: txManager,
		generator: generator,
		cache:     cacheClient,
		cfg:       cfg,
		queue:     make(chan *domain.GenerationJob, queueSize),
	}
}

func (s *generationService) RequestGeneration(ctx context.Context, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.NewNotFoundError("event not found: " + req.EventID)
	}

	entries, err := s.knowledge.GetByIDs(ctx, req.KnowledgeBaseIDs)
	if err != nil {
		return nil, err
	}
	if len(entries) != len(req.KnowledgeBaseIDs) {
		return nil, domain.NewNotFoundError("one or more knowledge base entries not found")
	}
	for _, entry := range entries {
		if entry.EventID != event.ID {
			return nil, domain.NewInvalidInputError(
				"knowledge base entry " + entry.ID + " does not belong to event " + event.ID)
		}
	}

	job := &domain.GenerationJob{
		ID:                util.NewULID(),
		EventID:           event.ID,
		KnowledgeBaseIDs:  req.KnowledgeBaseIDs,
		RequestedCount:    req.QuestionCount,
		AdditionalContext: req.AdditionalContext,
		Status:            domain.JobStatusProcessing,
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	select {
	case s.queue <- job:
	default:
		if markErr := s.jobs.MarkFailed(ctx, job.ID, "generation queue is full"); markErr != nil {
			logger.Get().Error("Failed to mark overflowed job as failed",
				zap.String("job_id", job.ID), zap.Error(markErr))
		}
		return nil, domain.NewInternalError("generation queue is full, try again later", nil)
	}

	return &dto.GenerateQuestionsResponse{
		Success:      true,
		GenerationID: job.ID,
		Message:      "Question generation started",
	}, nil
}

func (s *generationService) GetGeneration(ctx context.Context, id string) (*dto.GenerationJobResponse, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.NewNotFoundError("generation job not found: " + id)
	}

	return &dto.GenerationJobResponse{
		ID:             job.ID,
		EventID:        job.EventID,
		RequestedCount: job.RequestedCount,
		Status:         string(job.Status),
		GeneratedCount: job.GeneratedCount,
		ErrorMessage:   job.ErrorMessage,
		CompletedAt:    job.CompletedAt,
		CreatedAt:      job.CreatedAt,
	}, nil
}

// Run implements the single background worker. Serial execution is
// deliberate: it keeps event counter updates ordered and bounds LLM spend.
func (s *generationService) Run(ctx context.Context) {
	log := logger.Get()
	log.Info("Generation worker started", zap.Int("queue_size", cap(s.queue)))

	for {
		select {
		case <-ctx.Done():
			log.Info("Generation worker stopping", zap.Int("pending", len(s.queue)))
			return
		case job := <-s.queue:
			s.processJob(ctx, job)
		}
	}
}

func (s *generationService) processJob(ctx context.Context, job *domain.GenerationJob) {
	log := logger.Get().With(
		zap.String("job_id", job.ID),
		zap.String("event_id", job.EventID),
		zap.Int("requested_count", job.RequestedCount),
	)

	saved, err := s.runGeneration(ctx, job)
	if err != nil {
		log.Error("Generation job failed", zap.Error(err))
		if markErr := s.jobs.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			log.Error("Failed to record job failure", zap.Error(markErr))
		}
		return
	}

	s.invalidateQuestionCache(ctx, job.EventID)
	log.Info("Generation job completed", zap.Int("generated_count", saved))
}

func (s *generationService) runGeneration(ctx context.Context, job *domain.GenerationJob) (int, error) {
	event, err := s.events.GetByID(ctx, job.EventID)
	if err != nil {
		return 0, err
	}
	if event == nil {
		return 0, domain.NewNotFoundError("event not found: " + job.EventID)
	}

	entries, err := s.knowledge.GetByIDs(ctx, job.KnowledgeBaseIDs)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, domain.NewNotFoundError("no knowledge base entries for job")
	}

	texts := make([]string, 0, len(entries))
	for _, entry := range entries {
		texts = append(texts, entry.ExtractedText)
	}
	knowledgeText := strings.Join(texts, "\n\n")

	dist := quizgen.CalculateDistribution(job.RequestedCount)
	prompt := quizgen.BuildPrompt(knowledgeText, event.Name, job.AdditionalContext,
		job.RequestedCount, dist, s.cfg.PromptTextBudget)

	genCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	candidates, err := s.generator.Generate(genCtx, prompt.System, prompt.User)
	if err != nil {
		return 0, err
	}

	valid, err := quizgen.ValidateCandidates(candidates, dist, logger.Get())
	if err != nil {
		return 0, err
	}

	// Questions are attributed to the first source entry; the generation row
	// keeps the full id list.
	sourceID := entries[0].ID
	questions := make([]*domain.Question, 0, len(valid))
	for _, c := range valid {
		questions = append(questions, &domain.Question{
			ID:              util.NewULID(),
			EventID:         event.ID,
			KnowledgeBaseID: sourceID,
			GenerationID:    job.ID,
			Question:        c.Question,
			Options:         c.Options,
			CorrectAnswer:   c.CorrectAnswer,
			Explanation:     c.Explanation,
			Difficulty:      c.Difficulty,
			TopicTags:       c.TopicTags,
			IsPublished:     true,
		})
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.questions.SaveBatch(txCtx, questions); err != nil {
			return err
		}
		if err := s.jobs.MarkCompleted(txCtx, job.ID, len(questions)); err != nil {
			return err
		}
		return s.events.IncrementTotalQuestions(txCtx, event.ID, len(questions))
	})
	if err != nil {
		return 0, domain.NewPersistenceError("failed to persist generated questions", err)
	}

	return len(questions), nil
}

func (s *generationService) invalidateQuestionCache(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	key := cache.GenerateCacheKey("question", "list", eventID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate question cache",
			zap.String("event_id", eventID), zap.Error(err))
	}
}
