package service

import (
	"context"

	"event-ticketing/internal/model"
	"event-ticketing/internal/repository"
	apperrors "event-ticketing/pkg/app_errors"
)

type ReviewService interface {
	// Create admits a review only for users holding an ATTENDED booking for
	// the event, one review per (user, event).
	Create(ctx context.Context, userID, eventID int, req model.CreateReviewRequest) (*model.Review, error)
	Update(ctx context.Context, userID, reviewID int, req model.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, userID, reviewID int) error
	ListByEvent(ctx context.Context, eventID int) ([]*model.Review, error)
}

type ReviewServiceImpl struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
	}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *ReviewServiceImpl) Create(ctx context.Context, userID, eventID int, req model.CreateReviewRequest) (*model.Review, error) {
	if !validRating(req.Rating) {
		return nil, apperrors.NewValidation("rating must be between 1 and 5")
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForUserEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrReviewConflict
	}

	attended, err := s.bookingRepo.HasAttendedBooking(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if !attended {
		return nil, apperrors.ErrReviewNotAllowed
	}

	review := &model.Review{
		UserID:     userID,
		EventID:    eventID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		MediaFiles: req.MediaFiles,
		// This gate is the only path to review creation, so every review is
		// from a verified attendee.
		IsVerifiedAttendee: true,
	}

	return s.reviewRepo.Create(ctx, review)
}

func (s *ReviewServiceImpl) Update(ctx context.Context, userID, reviewID int, req model.UpdateReviewRequest) (*model.Review, error) {
	if req.Rating != nil && !validRating(*req.Rating) {
		return nil, apperrors.NewValidation("rating must be between 1 and 5")
	}

	review, err := s.reviewRepo.FindByIDForUser(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	return s.reviewRepo.Update(ctx, review.ID, req)
}

func (s *ReviewServiceImpl) Delete(ctx context.Context, userID, reviewID int) error {
	return s.reviewRepo.Delete(ctx, reviewID, userID)
}

func (s *ReviewServiceImpl) ListByEvent(ctx context.Context, eventID int) ([]*model.Review, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByEventID(ctx, eventID)
}
