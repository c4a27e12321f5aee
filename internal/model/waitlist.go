package model

import "time"

type WaitlistStatus string

const (
	WaitlistStatusWaiting   WaitlistStatus = "waiting"
	WaitlistStatusNotified  WaitlistStatus = "notified"
	WaitlistStatusConverted WaitlistStatus = "converted"
	WaitlistStatusExpired   WaitlistStatus = "expired"
)

func (s WaitlistStatus) IsValid() bool {
	switch s {
	case WaitlistStatusWaiting, WaitlistStatusNotified, WaitlistStatusConverted, WaitlistStatusExpired:
		return true
	}
	return false
}

// WaitlistEntry is one user queued for a sold-out ticket type. Position is
// 1-based and append-only within a (event, ticket type) group; leaving does
// not renumber the remaining entries.
type WaitlistEntry struct {
	ID           int            `json:"id" db:"id"`
	UserID       int            `json:"user_id" db:"user_id"`
	EventID      int            `json:"event_id" db:"event_id"`
	TicketTypeID *int           `json:"ticket_type_id,omitempty" db:"ticket_type_id"`
	Position     int            `json:"position" db:"position"`
	Status       WaitlistStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

type JoinWaitlistRequest struct {
	TicketTypeID *int `json:"ticketTypeId"`
}
