package service

import (
	"context"

	"event-ticketing/internal/cache"
	"event-ticketing/internal/model"
	"event-ticketing/internal/repository"
	"event-ticketing/pkg/clock"
	"event-ticketing/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	// ListUpcoming serves published future events, soonest first, through
	// the redis cache.
	ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error)
	SearchByTitle(ctx context.Context, query string, limit int) ([]*model.Event, error)
	GetByID(ctx context.Context, id int) (*model.Event, error)
	ListTicketTypes(ctx context.Context, eventID int) ([]*model.TicketType, error)

	// Organizer surface.
	Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	Publish(ctx context.Context, id int) (*model.Event, error)
	CreateTicketType(ctx context.Context, params model.CreateTicketTypeParams) (*model.TicketType, error)
}

type EventServiceImpl struct {
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketTypeRepository
	eventCache cache.EventCache
	clock      clock.Clock
}

func NewEventService(
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketTypeRepository,
	eventCache cache.EventCache,
	clk clock.Clock,
) EventService {
	return &EventServiceImpl{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		eventCache: eventCache,
		clock:      clk,
	}
}

func (s *EventServiceImpl) ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	log := logger.WithComponent("event-service")

	cached, err := s.eventCache.GetUpcoming(ctx, limit)
	if err != nil {
		// Cache trouble must not take the listing down.
		log.Warn("event cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	events, err := s.eventRepo.ListUpcomingPublished(ctx, s.clock.Now(), limit)
	if err != nil {
		return nil, err
	}

	if err := s.eventCache.SetUpcoming(ctx, limit, events); err != nil {
		log.Warn("event cache write failed", zap.Error(err))
	}
	return events, nil
}

func (s *EventServiceImpl) SearchByTitle(ctx context.Context, query string, limit int) ([]*model.Event, error) {
	return s.eventRepo.SearchUpcomingByTitle(ctx, query, s.clock.Now(), limit)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int) (*model.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *EventServiceImpl) ListTicketTypes(ctx context.Context, eventID int) ([]*model.TicketType, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.ticketRepo.ListByEventID(ctx, eventID)
}

func (s *EventServiceImpl) Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error) {
	event := &model.Event{
		EventID:       uuid.New(),
		OrganizerID:   params.OrganizerID,
		Title:         params.Title,
		Description:   params.Description,
		Location:      params.Location,
		StartDateTime: params.StartDateTime,
		EndDateTime:   params.EndDateTime,
		IsPublished:   false,
	}
	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	updated, err := s.eventRepo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *EventServiceImpl) Publish(ctx context.Context, id int) (*model.Event, error) {
	published := true
	return s.Update(ctx, id, model.UpdateEventParams{IsPublished: &published})
}

func (s *EventServiceImpl) CreateTicketType(ctx context.Context, params model.CreateTicketTypeParams) (*model.TicketType, error) {
	if _, err := s.eventRepo.FindByID(ctx, params.EventID); err != nil {
		return nil, err
	}
	created, err := s.ticketRepo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *EventServiceImpl) invalidate(ctx context.Context) {
	if err := s.eventCache.Invalidate(ctx); err != nil {
		logger.WithComponent("event-service").Warn("event cache invalidate failed", zap.Error(err))
	}
}
