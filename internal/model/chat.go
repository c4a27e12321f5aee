package model

import "github.com/shopspring/decimal"

// Conversation steps of the booking dialogue. The machine is stateless
// between calls: the caller echoes ConversationState back on every turn.
const (
	StepSelectEvent      = "select_event"
	StepSelectTicketType = "select_ticket_type"
	StepSelectQuantity   = "select_quantity"
	StepConfirmBooking   = "confirm_booking"
)

// SearchResult is a transient candidate (event or ticket type) the user can
// pick by 1-based index or by name on the next turn.
type SearchResult struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type ConversationState struct {
	Intent         string           `json:"intent,omitempty"`
	Step           string           `json:"step,omitempty"`
	EventID        int              `json:"eventId,omitempty"`
	EventName      string           `json:"eventName,omitempty"`
	TicketTypeID   int              `json:"ticketTypeId,omitempty"`
	TicketTypeName string           `json:"ticketTypeName,omitempty"`
	Quantity       int              `json:"quantity,omitempty"`
	TotalPrice     *decimal.Decimal `json:"totalPrice,omitempty"`
	SearchResults  []SearchResult   `json:"searchResults,omitempty"`
}

// Active reports whether a booking flow is in progress.
func (s *ConversationState) Active() bool {
	return s != nil && s.Step != ""
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string             `json:"message" binding:"required"`
	ConversationHistory []ChatMessage      `json:"conversationHistory"`
	ConversationState   *ConversationState `json:"conversationState"`
}

type ChatResponse struct {
	Message           string             `json:"message"`
	ConversationState *ConversationState `json:"conversationState,omitempty"`
	Suggestions       []string           `json:"suggestions,omitempty"`
}
