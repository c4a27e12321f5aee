package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Event struct {
	ID            int        `json:"id" db:"id"`
	EventID       uuid.UUID  `json:"event_id" db:"event_id"`
	OrganizerID   int        `json:"organizer_id" db:"organizer_id"`
	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description,omitempty" db:"description"`
	Location      string     `json:"location" db:"location"`
	StartDateTime time.Time  `json:"start_date_time" db:"start_date_time"`
	EndDateTime   *time.Time `json:"end_date_time,omitempty" db:"end_date_time"`
	IsPublished   bool       `json:"is_published" db:"is_published"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`

	// MinPrice is populated on listing queries only (cheapest ticket type).
	MinPrice *decimal.Decimal `json:"min_price,omitempty" db:"-"`
}

// HasStarted reports whether bookings/cancellations are past their cutoff.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.StartDateTime.After(now)
}

type CreateEventParams struct {
	OrganizerID   int
	Title         string
	Description   *string
	Location      string
	StartDateTime time.Time
	EndDateTime   *time.Time
}

type UpdateEventParams struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Location      *string    `json:"location"`
	StartDateTime *time.Time `json:"startDateTime"`
	EndDateTime   *time.Time `json:"endDateTime"`
	IsPublished   *bool      `json:"isPublished"`
}
