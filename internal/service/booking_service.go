package service

import (
	"context"

	"event-ticketing/internal/model"
	"event-ticketing/internal/queue"
	"event-ticketing/internal/repository"
	"event-ticketing/monitoring"
	apperrors "event-ticketing/pkg/app_errors"
	"event-ticketing/pkg/clock"
	"event-ticketing/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DB is the slice of pgxpool.Pool the services need to open transactions.
type DB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type BookingService interface {
	// BookTicket runs the atomic booking transaction: the ticket-type row is
	// locked FOR UPDATE for the whole read-check-write sequence, which is the
	// sole serialization point preventing overbooking.
	BookTicket(ctx context.Context, userID, eventID, ticketTypeID, quantity int) (*model.Booking, error)
	// CancelBooking restores sold capacity and reports how many WAITING
	// waitlist entries could be notified (entries are read, never mutated).
	CancelBooking(ctx context.Context, userID, bookingID int) (*model.CancellationResult, error)
	// MarkAttendance transitions CONFIRMED -> ATTENDED once the event has
	// started, unlocking review eligibility.
	MarkAttendance(ctx context.Context, userID, bookingID int) (*model.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID int) (*model.Booking, error)
	ListBookings(ctx context.Context, userID int) ([]*model.Booking, error)
}

type BookingServiceImpl struct {
	db           DB
	bookingRepo  repository.BookingRepository
	ticketRepo   repository.TicketTypeRepository
	eventRepo    repository.EventRepository
	waitlistRepo repository.WaitlistRepository
	notifQueue   queue.NotificationQueue
	clock        clock.Clock
}

func NewBookingService(
	db DB,
	bookingRepo repository.BookingRepository,
	ticketRepo repository.TicketTypeRepository,
	eventRepo repository.EventRepository,
	waitlistRepo repository.WaitlistRepository,
	notifQueue queue.NotificationQueue,
	clk clock.Clock,
) BookingService {
	return &BookingServiceImpl{
		db:           db,
		bookingRepo:  bookingRepo,
		ticketRepo:   ticketRepo,
		eventRepo:    eventRepo,
		waitlistRepo: waitlistRepo,
		notifQueue:   notifQueue,
		clock:        clk,
	}
}

func (s *BookingServiceImpl) BookTicket(ctx context.Context, userID, eventID, ticketTypeID, quantity int) (*model.Booking, error) {
	if quantity < 1 {
		monitoring.ObserveBooking("rejected")
		return nil, apperrors.NewValidation("quantity must be at least 1")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock first: every validation below reads state that must not move
	// until this transaction commits or rolls back.
	ticketType, err := s.ticketRepo.FindByIDWithLock(ctx, tx, ticketTypeID)
	if err != nil {
		monitoring.ObserveBooking("rejected")
		return nil, err
	}
	if ticketType.EventID != eventID {
		monitoring.ObserveBooking("rejected")
		return nil, apperrors.ErrTicketTypeNotFound
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		monitoring.ObserveBooking("rejected")
		return nil, err
	}

	now := s.clock.Now()
	if !event.IsPublished {
		monitoring.ObserveBooking("rejected")
		return nil, apperrors.NewValidation("event is not open for booking")
	}
	if event.HasStarted(now) {
		monitoring.ObserveBooking("rejected")
		return nil, apperrors.NewValidation("cannot book past events")
	}
	if !ticketType.SalesOpen(now) {
		monitoring.ObserveBooking("rejected")
		return nil, apperrors.NewValidation("ticket sales are closed for this ticket type")
	}

	available := ticketType.Available()
	if available < quantity {
		monitoring.ObserveBooking("rejected")
		return nil, apperrors.NewValidationf("Only %d tickets available", available)
	}

	reference, err := model.NewBookingReference()
	if err != nil {
		return nil, err
	}

	unitPrice := ticketType.EffectiveUnitPrice(now)
	booking := &model.Booking{
		UserID:           userID,
		EventID:          eventID,
		TicketTypeID:     ticketTypeID,
		Quantity:         quantity,
		TotalPrice:       unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Status:           model.BookingStatusConfirmed,
		BookingReference: reference,
	}

	created, err := s.bookingRepo.Create(ctx, tx, booking)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.IncrementSold(ctx, tx, ticketType.ID, quantity); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	monitoring.ObserveBooking("confirmed")
	s.publish(&model.Notification{
		Type:             model.NotificationBookingConfirmed,
		UserID:           userID,
		BookingID:        created.ID,
		BookingReference: created.BookingReference,
		EventID:          eventID,
		TicketTypeID:     ticketTypeID,
		Quantity:         quantity,
	})

	return created, nil
}

func (s *BookingServiceImpl) CancelBooking(ctx context.Context, userID, bookingID int) (*model.CancellationResult, error) {
	booking, err := s.bookingRepo.FindByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if booking.Status == model.BookingStatusCancelled {
		return nil, apperrors.NewValidation("booking is already cancelled")
	}
	if booking.Status == model.BookingStatusAttended {
		return nil, apperrors.NewValidation("cannot cancel an attended booking")
	}

	event, err := s.eventRepo.FindByID(ctx, booking.EventID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if event.HasStarted(now) {
		return nil, apperrors.NewValidation("cannot cancel a booking for a started event")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Same lock the booking path takes, so cancellations and bookings on one
	// ticket type serialize against each other.
	if _, err := s.ticketRepo.FindByIDWithLock(ctx, tx, booking.TicketTypeID); err != nil {
		return nil, err
	}

	cancelled, err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, model.BookingStatusConfirmed, model.BookingStatusCancelled, now)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.DecrementSold(ctx, tx, booking.TicketTypeID, booking.Quantity); err != nil {
		return nil, err
	}

	// Reporting side-channel only: no entry is promoted or mutated here.
	waiting, err := s.waitlistRepo.ListWaiting(ctx, tx, booking.EventID, booking.TicketTypeID, booking.Quantity)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	monitoring.ObserveBooking("cancelled")
	s.publish(&model.Notification{
		Type:             model.NotificationBookingCancelled,
		UserID:           userID,
		BookingID:        cancelled.ID,
		BookingReference: cancelled.BookingReference,
		EventID:          cancelled.EventID,
		TicketTypeID:     cancelled.TicketTypeID,
		Quantity:         cancelled.Quantity,
		WaitlistNotified: len(waiting),
	})

	return &model.CancellationResult{
		Booking:          cancelled,
		WaitlistNotified: len(waiting),
	}, nil
}

func (s *BookingServiceImpl) MarkAttendance(ctx context.Context, userID, bookingID int) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.BookingStatusConfirmed {
		return nil, apperrors.NewValidation("only a confirmed booking can be marked attended")
	}

	event, err := s.eventRepo.FindByID(ctx, booking.EventID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !event.HasStarted(now) {
		return nil, apperrors.NewValidation("event has not started yet")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	attended, err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, model.BookingStatusConfirmed, model.BookingStatusAttended, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return attended, nil
}

func (s *BookingServiceImpl) GetBooking(ctx context.Context, userID, bookingID int) (*model.Booking, error) {
	return s.bookingRepo.FindByIDForUser(ctx, bookingID, userID)
}

func (s *BookingServiceImpl) ListBookings(ctx context.Context, userID int) ([]*model.Booking, error) {
	return s.bookingRepo.ListByUserID(ctx, userID)
}

// publish runs post-commit with a background context so delivery is not
// tied to the request lifetime; failures are logged, never surfaced.
func (s *BookingServiceImpl) publish(n *model.Notification) {
	if err := s.notifQueue.Publish(context.Background(), n); err != nil {
		logger.WithComponent("booking-service").Warn("failed to publish notification",
			zap.String("type", string(n.Type)),
			zap.Int("booking_id", n.BookingID),
			zap.Error(err),
		)
	}
}
