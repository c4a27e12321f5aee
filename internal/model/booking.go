package model

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is a closed state machine:
// CONFIRMED -> CANCELLED | ATTENDED, both terminal.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusAttended  BookingStatus = "attended"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusAttended:
		return true
	}
	return false
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	transitions := map[BookingStatus][]BookingStatus{
		BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusAttended},
		BookingStatusCancelled: {},
		BookingStatusAttended:  {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

type Booking struct {
	ID               int             `json:"id" db:"id"`
	UserID           int             `json:"user_id" db:"user_id"`
	EventID          int             `json:"event_id" db:"event_id"`
	TicketTypeID     int             `json:"ticket_type_id" db:"ticket_type_id"`
	Quantity         int             `json:"quantity" db:"quantity"`
	TotalPrice       decimal.Decimal `json:"total_price" db:"total_price"`
	Status           BookingStatus   `json:"status" db:"status"`
	BookingReference string          `json:"booking_reference" db:"booking_reference"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty" db:"cancelled_at"`
	AttendedAt       *time.Time      `json:"attended_at,omitempty" db:"attended_at"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// NewBookingReference generates a short shareable code like "BK-3F9A1C20D4".
func NewBookingReference() (string, error) {
	byt := make([]byte, 5)
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}
	return "BK-" + strings.ToUpper(hex.EncodeToString(byt)), nil
}

// CreateBookingRequest is the direct API booking payload.
type CreateBookingRequest struct {
	EventID      int `json:"eventId" binding:"required"`
	TicketTypeID int `json:"ticketTypeId" binding:"required"`
	Quantity     int `json:"quantity" binding:"required,min=1"`
}

// CancellationResult reports the cancelled booking plus how many WAITING
// waitlist entries could be notified of the freed capacity.
type CancellationResult struct {
	Booking          *Booking `json:"booking"`
	WaitlistNotified int      `json:"waitlistNotified"`
}
