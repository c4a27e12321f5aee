package service

import (
	"context"

	"event-ticketing/internal/model"
	"event-ticketing/internal/repository"
	"event-ticketing/monitoring"
	apperrors "event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
)

type WaitlistService interface {
	// Join queues the user for a (event, ticket type) group. Positions are
	// 1-based, assigned as group max + 1 inside one transaction.
	Join(ctx context.Context, userID, eventID int, ticketTypeID *int) (*model.WaitlistEntry, error)
	// Leave removes the user's entries for the event. Remaining positions
	// are not renumbered.
	Leave(ctx context.Context, userID, eventID int) error
	ListForUser(ctx context.Context, userID int) ([]*model.WaitlistEntry, error)
}

type WaitlistServiceImpl struct {
	db           DB
	waitlistRepo repository.WaitlistRepository
	eventRepo    repository.EventRepository
	ticketRepo   repository.TicketTypeRepository
}

func NewWaitlistService(
	db DB,
	waitlistRepo repository.WaitlistRepository,
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketTypeRepository,
) WaitlistService {
	return &WaitlistServiceImpl{
		db:           db,
		waitlistRepo: waitlistRepo,
		eventRepo:    eventRepo,
		ticketRepo:   ticketRepo,
	}
}

func (s *WaitlistServiceImpl) Join(ctx context.Context, userID, eventID int, ticketTypeID *int) (*model.WaitlistEntry, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if ticketTypeID != nil {
		ticketType, err := s.ticketRepo.FindByID(ctx, *ticketTypeID)
		if err != nil {
			return nil, err
		}
		if ticketType.EventID != event.ID {
			return nil, apperrors.ErrTicketTypeNotFound
		}
	}

	exists, err := s.waitlistRepo.ExistsForUser(ctx, userID, eventID, ticketTypeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrWaitlistConflict
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	maxPosition, err := s.waitlistRepo.MaxPosition(ctx, tx, eventID, ticketTypeID)
	if err != nil {
		return nil, err
	}

	entry := &model.WaitlistEntry{
		UserID:       userID,
		EventID:      eventID,
		TicketTypeID: ticketTypeID,
		Position:     maxPosition + 1,
		Status:       model.WaitlistStatusWaiting,
	}

	created, err := s.waitlistRepo.Create(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	monitoring.ObserveWaitlistJoin()
	return created, nil
}

func (s *WaitlistServiceImpl) Leave(ctx context.Context, userID, eventID int) error {
	return s.waitlistRepo.DeleteByUserEvent(ctx, userID, eventID)
}

func (s *WaitlistServiceImpl) ListForUser(ctx context.Context, userID int) ([]*model.WaitlistEntry, error) {
	return s.waitlistRepo.ListByUserID(ctx, userID)
}
