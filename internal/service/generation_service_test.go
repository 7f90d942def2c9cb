package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bizprep/internal/config"
	"bizprep/internal/domain"
	"bizprep/internal/dto"
	"bizprep/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type generationFixture struct {
	events    *MockEventRepository
	knowledge *MockKnowledgeBaseRepository
	jobs      *MockGenerationJobRepository
	questions *MockQuestionRepository
	tx        *MockTransactionManager
	generator *MockQuestionGenerator
	cache     *MockCache
	svc       *generationService
}

func newGenerationFixture() *generationFixture {
	f := &generationFixture{
		events:    new(MockEventRepository),
		knowledge: new(MockKnowledgeBaseRepository),
		jobs:      new(MockGenerationJobRepository),
		questions: new(MockQuestionRepository),
		tx:        new(MockTransactionManager),
		generator: new(MockQuestionGenerator),
		cache:     new(MockCache),
	}
	svc := NewGenerationService(
		f.events, f.knowledge, f.jobs, f.questions, f.tx, f.generator, f.cache,
		config.GenerationConfig{PromptTextBudget: 12000, QueueSize: 4},
	)
	f.svc = svc.(*generationService)
	return f
}

func generatedCandidate(difficulty string) *domain.QuestionCandidate {
	return &domain.QuestionCandidate{
		Question:      "Which pricing approach sets price primarily from production cost plus a fixed margin?",
		Options:       []string{"Cost-plus pricing", "Value-based pricing", "Penetration pricing strategy", "Dynamic surge pricing"},
		CorrectAnswer: 0,
		Explanation:   strings.Repeat("Cost-plus pricing adds a standard markup to the unit cost of the product. ", 4),
		Difficulty:    difficulty,
		TopicTags:     []string{"pricing"},
	}
}

func TestRequestGeneration_CreatesAndEnqueuesJob(t *testing.T) {
	f := newGenerationFixture()
	eventID := util.NewULID()
	kbID := util.NewULID()

	f.events.On("GetByID", mock.Anything, eventID).Return(&domain.Event{ID: eventID, Name: "Marketing"}, nil)
	f.knowledge.On("GetByIDs", mock.Anything, []string{kbID}).Return([]*domain.KnowledgeBaseEntry{
		{ID: kbID, EventID: eventID, ExtractedText: "content"},
	}, nil)
	f.jobs.On("Save", mock.Anything, mock.MatchedBy(func(job *domain.GenerationJob) bool {
		return job.Status == domain.JobStatusProcessing && job.EventID == eventID
	})).Return(nil)

	resp, err := f.svc.RequestGeneration(context.Background(), &dto.GenerateQuestionsRequest{
		EventID:          eventID,
		KnowledgeBaseIDs: []string{kbID},
		QuestionCount:    10,
	})

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.GenerationID)
	assert.Len(t, f.svc.queue, 1)
	f.jobs.AssertExpectations(t)
}

func TestRequestGeneration_EventNotFound(t *testing.T) {
	f := newGenerationFixture()
	eventID := util.NewULID()

	f.events.On("GetByID", mock.Anything, eventID).Return(nil, nil)

	_, err := f.svc.RequestGeneration(context.Background(), &dto.GenerateQuestionsRequest{
		EventID:          eventID,
		KnowledgeBaseIDs: []string{util.NewULID()},
		QuestionCount:    5,
	})

	assert.True(t, domain.IsNotFound(err))
}

func TestRequestGeneration_MissingKnowledgeBaseEntry(t *testing.T) {
	f := newGenerationFixture()
	eventID := util.NewULID()
	kbIDs := []string{util.NewULID(), util.NewULID()}

	f.events.On("GetByID", mock.Anything, eventID).Return(&domain.Event{ID: eventID}, nil)
	// Only one of the two requested entries exists.
	f.knowledge.On("GetByIDs", mock.Anything, kbIDs).Return([]*domain.KnowledgeBaseEntry{
		{ID: kbIDs[0], EventID: eventID},
	}, nil)

	_, err := f.svc.RequestGeneration(context.Background(), &dto.GenerateQuestionsRequest{
		EventID:          eventID,
		KnowledgeBaseIDs: kbIDs,
		QuestionCount:    5,
	})

	assert.True(t, domain.IsNotFound(err))
}

func TestRequestGeneration_EntryBelongsToOtherEvent(t *testing.T) {
	f := newGenerationFixture()
	eventID := util.NewULID()
	kbID := util.NewULID()

	f.events.On("GetByID", mock.Anything, eventID).Return(&domain.Event{ID: eventID}, nil)
	f.knowledge.On("GetByIDs", mock.Anything, []string{kbID}).Return([]*domain.KnowledgeBaseEntry{
		{ID: kbID, EventID: util.NewULID()},
	}, nil)

	_, err := f.svc.RequestGeneration(context.Background(), &dto.GenerateQuestionsRequest{
		EventID:          eventID,
		KnowledgeBaseIDs: []string{kbID},
		QuestionCount:    5,
	})

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestRequestGeneration_QueueFullMarksJobFailed(t *testing.T) {
	f := newGenerationFixture()
	eventID := util.NewULID()
	kbID := util.NewULID()

	// Fill the queue so the enqueue select falls through.
	for i := 0; i < cap(f.svc.queue); i++ {
		f.svc.queue <- &domain.GenerationJob{}
	}

	f.events.On("GetByID", mock.Anything, eventID).Return(&domain.Event{ID: eventID}, nil)
	f.knowledge.On("GetByIDs", mock.Anything, []string{kbID}).Return([]*domain.KnowledgeBaseEntry{
		{ID: kbID, EventID: eventID},
	}, nil)
	f.jobs.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.jobs.On("MarkFailed", mock.Anything, mock.Anything, "generation queue is full").Return(nil)

	_, err := f.svc.RequestGeneration(context.Background(), &dto.GenerateQuestionsRequest{
		EventID:          eventID,
		KnowledgeBaseIDs: []string{kbID},
		QuestionCount:    5,
	})

	assert.Error(t, err)
	f.jobs.AssertCalled(t, "MarkFailed", mock.Anything, mock.Anything, "generation queue is full")
}

func TestProcessJob_PersistsQuestionsAndUpdatesCounter(t *testing.T) {
	f := newGenerationFixture()
	eventID := util.NewULID()
	kbID := util.NewULID()
	job := &domain.GenerationJob{
		ID:               util.NewULID(),
		EventID:          eventID,
		KnowledgeBaseIDs: []string{kbID},
		RequestedCount:   2,
		Status:           domain.JobStatusProcessing,
	}

	f.events.On("GetByID", mock.Anything, eventID).Return(&domain.Event{ID: eventID, Name: "Marketing"}, nil)
	f.knowledge.On("GetByIDs", mock.Anything, []string{kbID}).Return([]*domain.KnowledgeBaseEntry{
		{ID: kbID, EventID: eventID, ExtractedText: "Pricing strategy content."},
	}, nil)
	f.generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.QuestionCandidate{
		generatedCandidate("easy"),
		generatedCandidate("medium"),
	}, nil)
	f.tx.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.questions.On("SaveBatch", mock.Anything, mock.MatchedBy(func(qs []*domain.Question) bool {
		return len(qs) == 2 && qs[0].GenerationID == job.ID && qs[0].KnowledgeBaseID == kbID && qs[0].IsPublished
	})).Return(nil)
	f.jobs.On("MarkCompleted", mock.Anything, job.ID, 2).Return(nil)
	f.events.On("IncrementTotalQuestions", mock.Anything, eventID, 2).Return(nil)
	f.cache.On("Delete", mock.Anything, mock.Anything).Return(nil)

	f.svc.processJob(context.Background(), job)

	f.questions.AssertExpectations(t)
	f.jobs.AssertExpectations(t)
	f.events.AssertExpectations(t)
	f.jobs.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessJob_GeneratorErrorMarksFailed(t *testing.T) {
	f := newGenerationFixture()
	eventID := util.NewULID()
	kbID := util.NewULID()
	job := &domain.GenerationJob{
		ID:               util.NewULID(),
		EventID:          eventID,
		KnowledgeBaseIDs: []string{kbID},
		RequestedCount:   5,
	}

	f.events.On("GetByID", mock.Anything, eventID).Return(&domain.Event{ID: eventID}, nil)
	f.knowledge.On("GetByIDs", mock.Anything, []string{kbID}).Return([]*domain.KnowledgeBaseEntry{
		{ID: kbID, EventID: eventID, ExtractedText: "content"},
	}, nil)
	f.generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewGenerationAPIError(errors.New("rate limited")))
	f.jobs.On("MarkFailed", mock.Anything, job.ID, mock.Anything).Return(nil)

	f.svc.processJob(context.Background(), job)

	f.jobs.AssertCalled(t, "MarkFailed", mock.Anything, job.ID, mock.Anything)
	f.questions.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
}

func TestProcessJob_AllCandidatesInvalidMarksFailed(t *testing.T) {
	f := newGenerationFixture()
	eventID := util.NewULID()
	kbID := util.NewULID()
	job := &domain.GenerationJob{
		ID:               util.NewULID(),
		EventID:          eventID,
		KnowledgeBaseIDs: []string{kbID},
		RequestedCount:   3,
	}

	bad := generatedCandidate("easy")
	bad.Explanation = "too short"

	f.events.On("GetByID", mock.Anything, eventID).Return(&domain.Event{ID: eventID}, nil)
	f.knowledge.On("GetByIDs", mock.Anything, []string{kbID}).Return([]*domain.KnowledgeBaseEntry{
		{ID: kbID, EventID: eventID, ExtractedText: "content"},
	}, nil)
	f.generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.QuestionCandidate{bad}, nil)
	f.jobs.On("MarkFailed", mock.Anything, job.ID, mock.Anything).Return(nil)

	f.svc.processJob(context.Background(), job)

	f.jobs.AssertCalled(t, "MarkFailed", mock.Anything, job.ID, mock.Anything)
}

func TestGetGeneration_NotFound(t *testing.T) {
	f := newGenerationFixture()
	id := util.NewULID()

	f.jobs.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := f.svc.GetGeneration(context.Background(), id)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetGeneration_ReturnsJobState(t *testing.T) {
	f := newGenerationFixture()
	id := util.NewULID()

	f.jobs.On("GetByID", mock.Anything, id).Return(&domain.GenerationJob{
		ID:             id,
		Status:         domain.JobStatusCompleted,
		RequestedCount: 10,
		GeneratedCount: 9,
	}, nil)

	resp, err := f.svc.GetGeneration(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, string(domain.JobStatusCompleted), resp.Status)
	assert.Equal(t, 9, resp.GeneratedCount)
}
