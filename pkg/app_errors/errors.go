package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrWaitlistNotFound   = errors.New("waitlist entry not found")
	ErrReviewNotFound     = errors.New("review not found")

	ErrWaitlistConflict = errors.New("already on the waitlist")
	ErrReviewConflict   = errors.New("review already exists")

	ErrReviewNotAllowed = errors.New("review requires an attended booking")

	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
	ErrInsufficientCapacity    = errors.New("insufficient capacity")
	ErrSoldUnderflow           = errors.New("sold count cannot drop below zero")

	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)

// ValidationError carries the exact message shown to the caller, e.g.
// the numeric shortfall on a booking attempt.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

func NewValidationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
