package service_test

import (
	"context"
	"testing"

	cacheMocks "event-ticketing/internal/cache/mocks"
	"event-ticketing/internal/model"
	repoMocks "event-ticketing/internal/repository/mocks"
	"event-ticketing/internal/service"
	"event-ticketing/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type eventFixture struct {
	eventRepo  *repoMocks.EventRepositoryMock
	ticketRepo *repoMocks.TicketTypeRepositoryMock
	eventCache *cacheMocks.EventCacheMock
	service    service.EventService
}

func newEventFixture() *eventFixture {
	f := &eventFixture{
		eventRepo:  repoMocks.NewEventRepositoryMock(),
		ticketRepo: repoMocks.NewTicketTypeRepositoryMock(),
		eventCache: cacheMocks.NewEventCacheMock(),
	}
	f.service = service.NewEventService(f.eventRepo, f.ticketRepo, f.eventCache, clock.NewFixed(testNow))
	return f
}

func TestEventService_ListUpcoming(t *testing.T) {
	ctx := context.Background()
	events := []*model.Event{futureEvent()}

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newEventFixture()

		f.eventCache.On("GetUpcoming", mock.Anything, 5).Return(events, nil).Once()

		got, err := f.service.ListUpcoming(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, events, got)
		f.eventRepo.AssertNotCalled(t, "ListUpcomingPublished")
	})

	t.Run("cache miss loads and backfills", func(t *testing.T) {
		f := newEventFixture()

		f.eventCache.On("GetUpcoming", mock.Anything, 5).Return(nil, nil).Once()
		f.eventRepo.On("ListUpcomingPublished", mock.Anything, testNow, 5).Return(events, nil).Once()
		f.eventCache.On("SetUpcoming", mock.Anything, 5, events).Return(nil).Once()

		got, err := f.service.ListUpcoming(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, events, got)
		f.eventCache.AssertExpectations(t)
	})

	t.Run("cache errors fall through to the repository", func(t *testing.T) {
		f := newEventFixture()

		f.eventCache.On("GetUpcoming", mock.Anything, 5).Return(nil, assert.AnError).Once()
		f.eventRepo.On("ListUpcomingPublished", mock.Anything, testNow, 5).Return(events, nil).Once()
		f.eventCache.On("SetUpcoming", mock.Anything, 5, events).Return(assert.AnError).Once()

		got, err := f.service.ListUpcoming(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, events, got)
	})
}

func TestEventService_Publish(t *testing.T) {
	ctx := context.Background()

	f := newEventFixture()

	published := futureEvent()
	published.IsPublished = true
	f.eventRepo.On("Update", mock.Anything, 1, mock.MatchedBy(func(params model.UpdateEventParams) bool {
		return params.IsPublished != nil && *params.IsPublished
	})).Return(published, nil).Once()
	f.eventCache.On("Invalidate", mock.Anything).Return(nil).Once()

	event, err := f.service.Publish(ctx, 1)

	require.NoError(t, err)
	assert.True(t, event.IsPublished)
	f.eventCache.AssertExpectations(t)
}

func TestEventService_CreateTicketType(t *testing.T) {
	ctx := context.Background()

	f := newEventFixture()

	params := model.CreateTicketTypeParams{EventID: 1, Name: "VIP", Capacity: 20}
	f.eventRepo.On("FindByID", mock.Anything, 1).Return(futureEvent(), nil).Once()
	f.ticketRepo.On("Create", mock.Anything, params).Return(openTicketType(20, 0), nil).Once()
	f.eventCache.On("Invalidate", mock.Anything).Return(nil).Once()

	_, err := f.service.CreateTicketType(ctx, params)

	require.NoError(t, err)
	f.ticketRepo.AssertExpectations(t)
}
