package repository

import (
	"context"
	"fmt"
	"time"

	"event-ticketing/internal/model"
	apperrors "event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `
	id, user_id, event_id, ticket_type_id, quantity, total_price, status,
	booking_reference, cancelled_at, attended_at, created_at, updated_at`

type BookingRepository interface {
	FindByIDForUser(ctx context.Context, id int, userID int) (*model.Booking, error)
	ListByUserID(ctx context.Context, userID int) ([]*model.Booking, error)
	// HasAttendedBooking reports whether the user holds an ATTENDED booking
	// for the event (the review gate).
	HasAttendedBooking(ctx context.Context, userID int, eventID int) (bool, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error)
	// UpdateStatus transitions from -> to and stamps the matching timestamp
	// column; it fails if the row is no longer in the from status.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int, from, to model.BookingStatus, at time.Time) (*model.Booking, error)
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.EventID,
		&b.TicketTypeID,
		&b.Quantity,
		&b.TotalPrice,
		&b.Status,
		&b.BookingReference,
		&b.CancelledAt,
		&b.AttendedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, event_id, ticket_type_id, quantity, total_price, status, booking_reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bookingColumns

	created, err := scanBooking(tx.QueryRow(ctx, query,
		booking.UserID, booking.EventID, booking.TicketTypeID,
		booking.Quantity, booking.TotalPrice, booking.Status, booking.BookingReference,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return created, nil
}

func (r *BookingRepositoryImpl) FindByIDForUser(ctx context.Context, id int, userID int) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND user_id = $2`
	return scanBooking(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *BookingRepositoryImpl) ListByUserID(ctx context.Context, userID int) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepositoryImpl) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, from, to model.BookingStatus, at time.Time) (*model.Booking, error) {
	if !from.CanTransitionTo(to) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	stampColumn := ""
	switch to {
	case model.BookingStatusCancelled:
		stampColumn = "cancelled_at"
	case model.BookingStatusAttended:
		stampColumn = "attended_at"
	default:
		return nil, apperrors.ErrInvalidStatusTransition
	}

	query := fmt.Sprintf(`
		UPDATE bookings
		SET status = $1, %s = $2, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING %s
	`, stampColumn, bookingColumns)

	booking, err := scanBooking(tx.QueryRow(ctx, query, to, at, id, from))
	if err != nil {
		if err == apperrors.ErrBookingNotFound {
			// Row exists but is no longer in the expected status, or is gone.
			return nil, apperrors.ErrInvalidStatusTransition
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepositoryImpl) HasAttendedBooking(ctx context.Context, userID int, eventID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND event_id = $2 AND status = $3
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, eventID, model.BookingStatusAttended).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
