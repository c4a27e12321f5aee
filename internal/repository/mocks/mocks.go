// Package mocks holds hand-written testify mocks for the repository
// interfaces, used by service tests.
package mocks

import (
	"context"
	"time"

	"event-ticketing/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type EventRepositoryMock struct {
	mock.Mock
}

func NewEventRepositoryMock() *EventRepositoryMock {
	return &EventRepositoryMock{}
}

func (m *EventRepositoryMock) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) FindByID(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) ListUpcomingPublished(ctx context.Context, now time.Time, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) SearchUpcomingByTitle(ctx context.Context, query string, now time.Time, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, query, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

type TicketTypeRepositoryMock struct {
	mock.Mock
}

func NewTicketTypeRepositoryMock() *TicketTypeRepositoryMock {
	return &TicketTypeRepositoryMock{}
}

func (m *TicketTypeRepositoryMock) Create(ctx context.Context, params model.CreateTicketTypeParams) (*model.TicketType, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) FindByID(ctx context.Context, id int) (*model.TicketType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) ListByEventID(ctx context.Context, eventID int) ([]*model.TicketType, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.TicketType, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) IncrementSold(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	args := m.Called(ctx, tx, id, quantity)
	return args.Error(0)
}

func (m *TicketTypeRepositoryMock) DecrementSold(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	args := m.Called(ctx, tx, id, quantity)
	return args.Error(0)
}

type BookingRepositoryMock struct {
	mock.Mock
}

func NewBookingRepositoryMock() *BookingRepositoryMock {
	return &BookingRepositoryMock{}
}

func (m *BookingRepositoryMock) FindByIDForUser(ctx context.Context, id int, userID int) (*model.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) ListByUserID(ctx context.Context, userID int) ([]*model.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) HasAttendedBooking(ctx context.Context, userID int, eventID int) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepositoryMock) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	args := m.Called(ctx, tx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, from, to model.BookingStatus, at time.Time) (*model.Booking, error) {
	args := m.Called(ctx, tx, id, from, to, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

type WaitlistRepositoryMock struct {
	mock.Mock
}

func NewWaitlistRepositoryMock() *WaitlistRepositoryMock {
	return &WaitlistRepositoryMock{}
}

func (m *WaitlistRepositoryMock) ExistsForUser(ctx context.Context, userID int, eventID int, ticketTypeID *int) (bool, error) {
	args := m.Called(ctx, userID, eventID, ticketTypeID)
	return args.Bool(0), args.Error(1)
}

func (m *WaitlistRepositoryMock) DeleteByUserEvent(ctx context.Context, userID int, eventID int) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func (m *WaitlistRepositoryMock) ListByUserID(ctx context.Context, userID int) ([]*model.WaitlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WaitlistEntry), args.Error(1)
}

func (m *WaitlistRepositoryMock) MaxPosition(ctx context.Context, tx pgx.Tx, eventID int, ticketTypeID *int) (int, error) {
	args := m.Called(ctx, tx, eventID, ticketTypeID)
	return args.Int(0), args.Error(1)
}

func (m *WaitlistRepositoryMock) Create(ctx context.Context, tx pgx.Tx, entry *model.WaitlistEntry) (*model.WaitlistEntry, error) {
	args := m.Called(ctx, tx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WaitlistEntry), args.Error(1)
}

func (m *WaitlistRepositoryMock) ListWaiting(ctx context.Context, tx pgx.Tx, eventID int, ticketTypeID int, limit int) ([]*model.WaitlistEntry, error) {
	args := m.Called(ctx, tx, eventID, ticketTypeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WaitlistEntry), args.Error(1)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

func NewReviewRepositoryMock() *ReviewRepositoryMock {
	return &ReviewRepositoryMock{}
}

func (m *ReviewRepositoryMock) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ExistsForUserEvent(ctx context.Context, userID int, eventID int) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepositoryMock) FindByIDForUser(ctx context.Context, id int, userID int) (*model.Review, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) Update(ctx context.Context, id int, params model.UpdateReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) Delete(ctx context.Context, id int, userID int) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) ListByEventID(ctx context.Context, eventID int) ([]*model.Review, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}
