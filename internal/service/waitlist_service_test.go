package service_test

import (
	"context"
	"testing"

	"event-ticketing/internal/model"
	repoMocks "event-ticketing/internal/repository/mocks"
	"event-ticketing/internal/service"
	apperrors "event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type waitlistFixture struct {
	db           *fakeDB
	waitlistRepo *repoMocks.WaitlistRepositoryMock
	eventRepo    *repoMocks.EventRepositoryMock
	ticketRepo   *repoMocks.TicketTypeRepositoryMock
	service      service.WaitlistService
}

func newWaitlistFixture() *waitlistFixture {
	f := &waitlistFixture{
		db:           &fakeDB{},
		waitlistRepo: repoMocks.NewWaitlistRepositoryMock(),
		eventRepo:    repoMocks.NewEventRepositoryMock(),
		ticketRepo:   repoMocks.NewTicketTypeRepositoryMock(),
	}
	f.service = service.NewWaitlistService(f.db, f.waitlistRepo, f.eventRepo, f.ticketRepo)
	return f
}

func TestWaitlistService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - first entry takes position one", func(t *testing.T) {
		f := newWaitlistFixture()

		f.eventRepo.On("FindByID", mock.Anything, 1).Return(futureEvent(), nil).Once()
		f.waitlistRepo.On("ExistsForUser", mock.Anything, 5, 1, (*int)(nil)).Return(false, nil).Once()
		f.waitlistRepo.On("MaxPosition", mock.Anything, mock.Anything, 1, (*int)(nil)).Return(0, nil).Once()
		f.waitlistRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			entry := args.Get(2).(*model.WaitlistEntry)
			assert.Equal(t, 1, entry.Position)
			assert.Equal(t, model.WaitlistStatusWaiting, entry.Status)
		}).Return(&model.WaitlistEntry{ID: 9, Position: 1, Status: model.WaitlistStatusWaiting}, nil).Once()

		entry, err := f.service.Join(ctx, 5, 1, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, entry.Position)
		assert.True(t, f.db.tx.committed)
		f.waitlistRepo.AssertExpectations(t)
	})

	t.Run("Success - position appends after the group max", func(t *testing.T) {
		f := newWaitlistFixture()

		ticketTypeID := 10
		f.eventRepo.On("FindByID", mock.Anything, 1).Return(futureEvent(), nil).Once()
		f.ticketRepo.On("FindByID", mock.Anything, 10).Return(openTicketType(100, 100), nil).Once()
		f.waitlistRepo.On("ExistsForUser", mock.Anything, 5, 1, &ticketTypeID).Return(false, nil).Once()
		f.waitlistRepo.On("MaxPosition", mock.Anything, mock.Anything, 1, &ticketTypeID).Return(6, nil).Once()
		f.waitlistRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			entry := args.Get(2).(*model.WaitlistEntry)
			assert.Equal(t, 7, entry.Position)
		}).Return(&model.WaitlistEntry{ID: 9, Position: 7}, nil).Once()

		entry, err := f.service.Join(ctx, 5, 1, &ticketTypeID)

		require.NoError(t, err)
		assert.Equal(t, 7, entry.Position)
	})

	t.Run("Failed - duplicate membership", func(t *testing.T) {
		f := newWaitlistFixture()

		f.eventRepo.On("FindByID", mock.Anything, 1).Return(futureEvent(), nil).Once()
		f.waitlistRepo.On("ExistsForUser", mock.Anything, 5, 1, (*int)(nil)).Return(true, nil).Once()

		_, err := f.service.Join(ctx, 5, 1, nil)

		assert.ErrorIs(t, err, apperrors.ErrWaitlistConflict)
		f.waitlistRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - ticket type from another event", func(t *testing.T) {
		f := newWaitlistFixture()

		ticketTypeID := 10
		ticketType := openTicketType(100, 100)
		ticketType.EventID = 99
		f.eventRepo.On("FindByID", mock.Anything, 1).Return(futureEvent(), nil).Once()
		f.ticketRepo.On("FindByID", mock.Anything, 10).Return(ticketType, nil).Once()

		_, err := f.service.Join(ctx, 5, 1, &ticketTypeID)

		assert.ErrorIs(t, err, apperrors.ErrTicketTypeNotFound)
	})

	t.Run("Failed - event not found", func(t *testing.T) {
		f := newWaitlistFixture()

		f.eventRepo.On("FindByID", mock.Anything, 1).Return(nil, apperrors.ErrEventNotFound).Once()

		_, err := f.service.Join(ctx, 5, 1, nil)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestWaitlistService_Leave(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newWaitlistFixture()

		f.waitlistRepo.On("DeleteByUserEvent", mock.Anything, 5, 1).Return(nil).Once()

		require.NoError(t, f.service.Leave(ctx, 5, 1))
		f.waitlistRepo.AssertExpectations(t)
	})

	t.Run("Failed - no membership", func(t *testing.T) {
		f := newWaitlistFixture()

		f.waitlistRepo.On("DeleteByUserEvent", mock.Anything, 5, 1).Return(apperrors.ErrWaitlistNotFound).Once()

		assert.ErrorIs(t, f.service.Leave(ctx, 5, 1), apperrors.ErrWaitlistNotFound)
	})
}
