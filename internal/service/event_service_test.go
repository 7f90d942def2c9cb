package service

import (
	"context"
	"encoding/json"
	"testing"

	"bizprep/internal/domain"
	"bizprep/internal/dto"
	"bizprep/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateEvent_Success(t *testing.T) {
	repo := new(MockEventRepository)
	cacheClient := new(MockCache)
	svc := NewEventService(repo, cacheClient)

	repo.On("Save", mock.Anything, mock.MatchedBy(func(e *domain.Event) bool {
		return e.Name == "Business Management" && e.Organization == domain.OrganizationDECA
	})).Return(nil)
	cacheClient.On("Delete", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Name:         "Business Management",
		Organization: "DECA",
		Slug:         "business-management",
	})

	assert.NoError(t, err)
	assert.Equal(t, "business-management", resp.Slug)
	repo.AssertExpectations(t)
}

func TestCreateEvent_InvalidSlug(t *testing.T) {
	repo := new(MockEventRepository)
	svc := NewEventService(repo, nil)

	_, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Name:         "Business Management",
		Organization: "DECA",
		Slug:         "Business Management!",
	})

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateEvent_SlugConflictPassedThrough(t *testing.T) {
	repo := new(MockEventRepository)
	svc := NewEventService(repo, nil)

	repo.On("Save", mock.Anything, mock.Anything).
		Return(domain.NewSlugConflictError("business-management"))

	_, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Name:         "Business Management",
		Organization: "DECA",
		Slug:         "business-management",
	})

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeSlugConflict, domainErr.Code)
}

func TestListEvents_CacheMissHitsRepo(t *testing.T) {
	repo := new(MockEventRepository)
	cacheClient := new(MockCache)
	svc := NewEventService(repo, cacheClient)

	cacheClient.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
	repo.On("List", mock.Anything, "DECA").Return([]*domain.Event{
		{ID: util.NewULID(), Name: "Marketing", Organization: domain.OrganizationDECA, Slug: "marketing"},
		{ID: util.NewULID(), Name: "Finance", Organization: domain.OrganizationBoth, Slug: "finance"},
	}, nil)
	cacheClient.On("Set", mock.Anything, mock.Anything, mock.Anything, eventListCacheTTL).Return(nil)

	resp, err := svc.ListEvents(context.Background(), "DECA")

	assert.NoError(t, err)
	assert.Len(t, resp.Events, 2)
	cacheClient.AssertExpectations(t)
}

func TestListEvents_CacheHit(t *testing.T) {
	repo := new(MockEventRepository)
	cacheClient := new(MockCache)
	svc := NewEventService(repo, cacheClient)

	cached, _ := json.Marshal(&dto.EventListResponse{
		Events: []dto.EventResponse{{Name: "Cached Event"}},
	})
	cacheClient.On("Get", mock.Anything, mock.Anything).Return(string(cached), nil)

	resp, err := svc.ListEvents(context.Background(), "")

	assert.NoError(t, err)
	assert.Equal(t, "Cached Event", resp.Events[0].Name)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListEvents_RejectsUnknownOrganization(t *testing.T) {
	repo := new(MockEventRepository)
	svc := NewEventService(repo, nil)

	_, err := svc.ListEvents(context.Background(), "NHS")

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestUpdateEventImage_InvalidatesCache(t *testing.T) {
	repo := new(MockEventRepository)
	cacheClient := new(MockCache)
	svc := NewEventService(repo, cacheClient)

	eventID := util.NewULID()
	repo.On("UpdateImageURL", mock.Anything, eventID, "https://img.example.com/e.png").Return(nil)
	cacheClient.On("Delete", mock.Anything, mock.Anything).Return(nil)

	err := svc.UpdateEventImage(context.Background(), &dto.UpdateEventImageRequest{
		EventID:  eventID,
		ImageURL: "https://img.example.com/e.png",
	})

	assert.NoError(t, err)
	cacheClient.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}
