package model

type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
)

// Notification is the payload carried on the notification queue after a
// ledger transaction commits. Delivery (email/push) is the worker's concern.
type Notification struct {
	Type             NotificationType `json:"type"`
	UserID           int              `json:"user_id"`
	BookingID        int              `json:"booking_id"`
	BookingReference string           `json:"booking_reference"`
	EventID          int              `json:"event_id"`
	TicketTypeID     int              `json:"ticket_type_id"`
	Quantity         int              `json:"quantity"`
	WaitlistNotified int              `json:"waitlist_notified,omitempty"`
}
