// Package mocks holds hand-written testify mocks for the service
// interfaces, used by handler and chatbot tests.
package mocks

import (
	"context"

	"event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type BookingServiceMock struct {
	mock.Mock
}

func NewBookingServiceMock() *BookingServiceMock {
	return &BookingServiceMock{}
}

func (m *BookingServiceMock) BookTicket(ctx context.Context, userID, eventID, ticketTypeID, quantity int) (*model.Booking, error) {
	args := m.Called(ctx, userID, eventID, ticketTypeID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) CancelBooking(ctx context.Context, userID, bookingID int) (*model.CancellationResult, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CancellationResult), args.Error(1)
}

func (m *BookingServiceMock) MarkAttendance(ctx context.Context, userID, bookingID int) (*model.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) GetBooking(ctx context.Context, userID, bookingID int) (*model.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) ListBookings(ctx context.Context, userID int) ([]*model.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock() *EventServiceMock {
	return &EventServiceMock{}
}

func (m *EventServiceMock) ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) SearchByTitle(ctx context.Context, query string, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) GetByID(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) ListTicketTypes(ctx context.Context, eventID int) ([]*model.TicketType, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TicketType), args.Error(1)
}

func (m *EventServiceMock) Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) Publish(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) CreateTicketType(ctx context.Context, params model.CreateTicketTypeParams) (*model.TicketType, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

type WaitlistServiceMock struct {
	mock.Mock
}

func NewWaitlistServiceMock() *WaitlistServiceMock {
	return &WaitlistServiceMock{}
}

func (m *WaitlistServiceMock) Join(ctx context.Context, userID, eventID int, ticketTypeID *int) (*model.WaitlistEntry, error) {
	args := m.Called(ctx, userID, eventID, ticketTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WaitlistEntry), args.Error(1)
}

func (m *WaitlistServiceMock) Leave(ctx context.Context, userID, eventID int) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func (m *WaitlistServiceMock) ListForUser(ctx context.Context, userID int) ([]*model.WaitlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WaitlistEntry), args.Error(1)
}

type ReviewServiceMock struct {
	mock.Mock
}

func NewReviewServiceMock() *ReviewServiceMock {
	return &ReviewServiceMock{}
}

func (m *ReviewServiceMock) Create(ctx context.Context, userID, eventID int, req model.CreateReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, userID, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *ReviewServiceMock) Update(ctx context.Context, userID, reviewID int, req model.UpdateReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, userID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *ReviewServiceMock) Delete(ctx context.Context, userID, reviewID int) error {
	args := m.Called(ctx, userID, reviewID)
	return args.Error(0)
}

func (m *ReviewServiceMock) ListByEvent(ctx context.Context, eventID int) ([]*model.Review, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

type ChatbotServiceMock struct {
	mock.Mock
}

func NewChatbotServiceMock() *ChatbotServiceMock {
	return &ChatbotServiceMock{}
}

func (m *ChatbotServiceMock) HandleMessage(ctx context.Context, userID int, req model.ChatRequest) (*model.ChatResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatResponse), args.Error(1)
}
