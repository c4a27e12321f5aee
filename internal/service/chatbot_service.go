package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"event-ticketing/internal/model"
	"event-ticketing/internal/repository"
	"event-ticketing/monitoring"
	apperrors "event-ticketing/pkg/app_errors"
	"event-ticketing/pkg/clock"

	"github.com/shopspring/decimal"
)

const (
	// searchLimit caps how many events one search turn lists.
	searchLimit = 5
	// maxChatQuantity caps a single conversational booking.
	maxChatQuantity = 10

	refusalMessage = "I can only help with browsing events and booking tickets. Let's get back to that! Try \"show me upcoming events\"."
	loginPrompt    = "You need to be logged in to book tickets. Please log in and try again."
)

// injectionPatterns are checked against every inbound message before any
// other handling. A hit returns the fixed refusal and leaves state untouched.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+|the\s+)?(previous|prior|above)\s+(instructions|prompts?|messages?)`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+|the\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+|the\s+)?(previous|prior|your)\s+(instructions|rules)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an)\s`),
	regexp.MustCompile(`(?i)(system|developer)\s+prompt`),
	regexp.MustCompile(`(?i)act\s+as\s+(if|a|an)\s`),
	regexp.MustCompile(`(?i)pretend\s+(to\s+be|you\s+are)`),
	regexp.MustCompile(`(?i)jailbreak`),
}

var (
	bookingKeywords = []string{"book", "buy", "purchase", "reserve", "ticket"}
	searchKeywords  = []string{"show", "search", "find", "events", "upcoming", "list", "browse"}
	cancelKeywords  = []string{"cancel", "stop", "nevermind", "never mind", "quit", "exit"}
)

// firstIntegerRe pulls the first integer token out of a quantity answer.
var firstIntegerRe = regexp.MustCompile(`\d+`)

// ChatbotService drives the multi-turn booking dialogue. It holds no session
// state: everything needed to resume a flow travels in ConversationState,
// echoed back by the caller each turn.
type ChatbotService interface {
	// HandleMessage processes one turn. userID is 0 for anonymous callers,
	// who can search but are prompted to log in before booking.
	HandleMessage(ctx context.Context, userID int, req model.ChatRequest) (*model.ChatResponse, error)
}

type ChatbotServiceImpl struct {
	eventService   EventService
	ticketRepo     repository.TicketTypeRepository
	bookingService BookingService
	clock          clock.Clock
}

func NewChatbotService(
	eventService EventService,
	ticketRepo repository.TicketTypeRepository,
	bookingService BookingService,
	clk clock.Clock,
) ChatbotService {
	return &ChatbotServiceImpl{
		eventService:   eventService,
		ticketRepo:     ticketRepo,
		bookingService: bookingService,
		clock:          clk,
	}
}

func (s *ChatbotServiceImpl) HandleMessage(ctx context.Context, userID int, req model.ChatRequest) (*model.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	state := req.ConversationState

	if isInjectionAttempt(message) {
		monitoring.ObserveChatTurn("refused")
		return &model.ChatResponse{
			Message:           refusalMessage,
			ConversationState: state,
			Suggestions:       []string{"Show me upcoming events"},
		}, nil
	}

	if state.Active() {
		switch state.Step {
		case model.StepSelectEvent:
			monitoring.ObserveChatTurn(model.StepSelectEvent)
			return s.handleSelectEvent(ctx, message, state)
		case model.StepSelectTicketType:
			monitoring.ObserveChatTurn(model.StepSelectTicketType)
			return s.handleSelectTicketType(message, state)
		case model.StepSelectQuantity:
			monitoring.ObserveChatTurn(model.StepSelectQuantity)
			return s.handleSelectQuantity(ctx, message, state)
		case model.StepConfirmBooking:
			monitoring.ObserveChatTurn(model.StepConfirmBooking)
			return s.handleConfirmBooking(ctx, userID, message, state)
		}
	}

	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, cancelKeywords):
		monitoring.ObserveChatTurn("cancel")
		return &model.ChatResponse{
			Message:     "No problem! Let me know if you'd like to browse events or book tickets later.",
			Suggestions: []string{"Show me upcoming events"},
		}, nil
	case containsAny(lower, bookingKeywords):
		monitoring.ObserveChatTurn("booking")
		return s.handleBookingIntent(ctx, userID, message)
	case containsAny(lower, searchKeywords):
		monitoring.ObserveChatTurn("search")
		return s.handleSearch(ctx)
	default:
		monitoring.ObserveChatTurn("info")
		return &model.ChatResponse{
			Message:     "Hi! I can help you discover upcoming events and book tickets. What would you like to do?",
			Suggestions: []string{"Show me upcoming events", "Book tickets"},
		}, nil
	}
}

func isInjectionAttempt(message string) bool {
	for _, p := range injectionPatterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func (s *ChatbotServiceImpl) handleSearch(ctx context.Context) (*model.ChatResponse, error) {
	events, err := s.eventService.ListUpcoming(ctx, searchLimit)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return &model.ChatResponse{
			Message:     "There are no upcoming events right now. Please check back soon!",
			Suggestions: []string{"Show me upcoming events", "Book tickets"},
		}, nil
	}
	return presentEvents(events), nil
}

func presentEvents(events []*model.Event) *model.ChatResponse {
	var b strings.Builder
	b.WriteString("Here are the upcoming events:\n")
	results := make([]model.SearchResult, 0, len(events))
	suggestions := make([]string, 0, 3)
	for i, e := range events {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, e.Title))
		b.WriteString(fmt.Sprintf(" | %s", e.StartDateTime.Format("Mon, 02 Jan 2006 15:04")))
		b.WriteString(fmt.Sprintf(" | %s", e.Location))
		if e.MinPrice != nil {
			b.WriteString(fmt.Sprintf(" | from $%s", e.MinPrice.StringFixed(2)))
		}
		b.WriteString("\n")
		results = append(results, model.SearchResult{ID: e.ID, Title: e.Title})
		if len(suggestions) < 3 {
			suggestions = append(suggestions, e.Title)
		}
	}
	b.WriteString("Reply with a number or an event name to see its tickets.")

	return &model.ChatResponse{
		Message: b.String(),
		ConversationState: &model.ConversationState{
			Intent:        "booking",
			Step:          model.StepSelectEvent,
			SearchResults: results,
		},
		Suggestions: suggestions,
	}
}

func (s *ChatbotServiceImpl) handleBookingIntent(ctx context.Context, userID int, message string) (*model.ChatResponse, error) {
	if userID == 0 {
		return &model.ChatResponse{
			Message:     loginPrompt,
			Suggestions: []string{"Show me upcoming events"},
		}, nil
	}

	// Resolve an event named directly in the message through the title
	// search, so events beyond the first listing page are still found.
	if phrase := extractTitlePhrase(message); phrase != "" {
		matches, err := s.eventService.SearchByTitle(ctx, phrase, searchLimit)
		if err != nil {
			return nil, err
		}
		if len(matches) == 1 {
			return s.enterTicketTypeStep(ctx, matches[0].ID, matches[0].Title)
		}
		if len(matches) > 1 {
			return presentEvents(matches), nil
		}
	}

	return s.handleSearch(ctx)
}

// bookingStopwords are stripped from a booking message before the remainder
// is used as a title search: "book tickets for jazz night" searches for
// "jazz night".
var bookingStopwords = map[string]struct{}{
	"book": {}, "buy": {}, "purchase": {}, "reserve": {}, "ticket": {}, "tickets": {},
	"i": {}, "want": {}, "would": {}, "like": {}, "to": {}, "for": {}, "a": {}, "an": {},
	"the": {}, "me": {}, "my": {}, "please": {}, "some": {}, "get": {},
}

func extractTitlePhrase(message string) string {
	words := strings.Fields(strings.ToLower(message))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,!?\"'")
		if _, skip := bookingStopwords[w]; skip || w == "" {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func (s *ChatbotServiceImpl) handleSelectEvent(ctx context.Context, message string, state *model.ConversationState) (*model.ChatResponse, error) {
	picked := resolveSelection(message, state.SearchResults)
	if picked == nil {
		return &model.ChatResponse{
			Message:           "I didn't catch that. Reply with the number or name of an event from the list.",
			ConversationState: state,
			Suggestions:       suggestionTitles(state.SearchResults),
		}, nil
	}
	return s.enterTicketTypeStep(ctx, picked.ID, picked.Title)
}

func (s *ChatbotServiceImpl) enterTicketTypeStep(ctx context.Context, eventID int, eventName string) (*model.ChatResponse, error) {
	ticketTypes, err := s.eventService.ListTicketTypes(ctx, eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			return &model.ChatResponse{
				Message:     "That event is no longer available. Want to see what else is on?",
				Suggestions: []string{"Show me upcoming events"},
			}, nil
		}
		return nil, err
	}

	available := make([]*model.TicketType, 0, len(ticketTypes))
	for _, tt := range ticketTypes {
		if tt.Available() > 0 {
			available = append(available, tt)
		}
	}
	if len(available) == 0 {
		return &model.ChatResponse{
			Message:     fmt.Sprintf("Sorry, %s is sold out. Want to check other upcoming events?", eventName),
			Suggestions: []string{"Show me upcoming events"},
		}, nil
	}

	now := s.clock.Now()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Great choice! Here are the available tickets for %s:\n", eventName))
	results := make([]model.SearchResult, 0, len(available))
	suggestions := make([]string, 0, 3)
	for i, tt := range available {
		b.WriteString(fmt.Sprintf("%d. %s | $%s | %d left\n", i+1, tt.Name, tt.EffectiveUnitPrice(now).StringFixed(2), tt.Available()))
		results = append(results, model.SearchResult{ID: tt.ID, Title: tt.Name})
		if len(suggestions) < 3 {
			suggestions = append(suggestions, tt.Name)
		}
	}
	b.WriteString("Which ticket would you like?")

	return &model.ChatResponse{
		Message: b.String(),
		ConversationState: &model.ConversationState{
			Intent:        "booking",
			Step:          model.StepSelectTicketType,
			EventID:       eventID,
			EventName:     eventName,
			SearchResults: results,
		},
		Suggestions: suggestions,
	}, nil
}

func (s *ChatbotServiceImpl) handleSelectTicketType(message string, state *model.ConversationState) (*model.ChatResponse, error) {
	picked := resolveSelection(message, state.SearchResults)
	if picked == nil {
		return &model.ChatResponse{
			Message:           "I didn't catch that. Reply with the number or name of a ticket type from the list.",
			ConversationState: state,
			Suggestions:       suggestionTitles(state.SearchResults),
		}, nil
	}

	next := *state
	next.Step = model.StepSelectQuantity
	next.TicketTypeID = picked.ID
	next.TicketTypeName = picked.Title
	next.SearchResults = nil

	return &model.ChatResponse{
		Message:           fmt.Sprintf("How many %s tickets would you like? (1-%d)", picked.Title, maxChatQuantity),
		ConversationState: &next,
		Suggestions:       []string{"1", "2", "4"},
	}, nil
}

func (s *ChatbotServiceImpl) handleSelectQuantity(ctx context.Context, message string, state *model.ConversationState) (*model.ChatResponse, error) {
	reprompt := func(text string) *model.ChatResponse {
		return &model.ChatResponse{
			Message:           text,
			ConversationState: state,
			Suggestions:       []string{"1", "2", "4"},
		}
	}

	token := firstIntegerRe.FindString(message)
	if token == "" {
		return reprompt(fmt.Sprintf("Please tell me a number of tickets between 1 and %d.", maxChatQuantity)), nil
	}
	quantity, err := strconv.Atoi(token)
	if err != nil || quantity < 1 || quantity > maxChatQuantity {
		return reprompt(fmt.Sprintf("Please pick a quantity between 1 and %d.", maxChatQuantity)), nil
	}

	// Re-read availability: the listing shown earlier may be stale.
	ticketType, err := s.ticketRepo.FindByID(ctx, state.TicketTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTicketTypeNotFound) {
			return &model.ChatResponse{
				Message:     "That ticket type is no longer available. Want to start over?",
				Suggestions: []string{"Show me upcoming events"},
			}, nil
		}
		return nil, err
	}
	if available := ticketType.Available(); quantity > available {
		return reprompt(fmt.Sprintf("Only %d tickets are left for %s. Please pick a smaller quantity.", available, state.TicketTypeName)), nil
	}

	now := s.clock.Now()
	total := ticketType.EffectiveUnitPrice(now).Mul(decimal.NewFromInt(int64(quantity)))

	next := *state
	next.Step = model.StepConfirmBooking
	next.Quantity = quantity
	next.TotalPrice = &total

	return &model.ChatResponse{
		Message: fmt.Sprintf("To confirm: %d x %s for %s, total $%s. Shall I book it? (yes/no)",
			quantity, state.TicketTypeName, state.EventName, total.StringFixed(2)),
		ConversationState: &next,
		Suggestions:       []string{"Yes", "No"},
	}, nil
}

func (s *ChatbotServiceImpl) handleConfirmBooking(ctx context.Context, userID int, message string, state *model.ConversationState) (*model.ChatResponse, error) {
	lower := strings.ToLower(message)

	// Decline wins over confirm when both appear in one message.
	if strings.Contains(lower, "no") || strings.Contains(lower, "cancel") {
		return &model.ChatResponse{
			Message:     "No worries, I've cancelled that. Let me know if you'd like to book something else!",
			Suggestions: []string{"Show me upcoming events"},
		}, nil
	}

	if !strings.Contains(lower, "yes") && !strings.Contains(lower, "confirm") {
		return &model.ChatResponse{
			Message:           "Please reply yes to confirm the booking, or no to cancel.",
			ConversationState: state,
			Suggestions:       []string{"Yes", "No"},
		}, nil
	}

	if userID == 0 {
		// Keep the accumulated state so the user can log in and confirm.
		return &model.ChatResponse{
			Message:           loginPrompt,
			ConversationState: state,
			Suggestions:       []string{"Yes", "No"},
		}, nil
	}

	booking, err := s.bookingService.BookTicket(ctx, userID, state.EventID, state.TicketTypeID, state.Quantity)
	if err != nil {
		if v, ok := apperrors.AsValidation(err); ok {
			return &model.ChatResponse{
				Message:     fmt.Sprintf("I couldn't complete the booking: %s. Want to try something else?", v.Message),
				Suggestions: []string{"Show me upcoming events"},
			}, nil
		}
		if errors.Is(err, apperrors.ErrEventNotFound) || errors.Is(err, apperrors.ErrTicketTypeNotFound) || errors.Is(err, apperrors.ErrInsufficientCapacity) {
			return &model.ChatResponse{
				Message:     "I couldn't complete the booking, the tickets are no longer available. Want to try something else?",
				Suggestions: []string{"Show me upcoming events"},
			}, nil
		}
		return nil, err
	}

	return &model.ChatResponse{
		Message: fmt.Sprintf("You're all set! Booked %d x %s for %s. Your booking reference is %s.",
			booking.Quantity, state.TicketTypeName, state.EventName, booking.BookingReference),
		Suggestions: []string{"Show me upcoming events"},
	}, nil
}

// resolveSelection matches a reply against the candidates shown last turn:
// a whole-message 1-based index, or a case-insensitive substring match in
// either direction.
func resolveSelection(message string, candidates []model.SearchResult) *model.SearchResult {
	trimmed := strings.TrimSpace(message)
	// An empty reply would substring-match every candidate.
	if trimmed == "" {
		return nil
	}
	if idx, err := strconv.Atoi(trimmed); err == nil {
		if idx >= 1 && idx <= len(candidates) {
			return &candidates[idx-1]
		}
		return nil
	}

	lower := strings.ToLower(trimmed)
	for i := range candidates {
		title := strings.ToLower(candidates[i].Title)
		if strings.Contains(lower, title) || strings.Contains(title, lower) {
			return &candidates[i]
		}
	}
	return nil
}

func suggestionTitles(candidates []model.SearchResult) []string {
	out := make([]string, 0, 3)
	for _, c := range candidates {
		if len(out) == 3 {
			break
		}
		out = append(out, c.Title)
	}
	return out
}
