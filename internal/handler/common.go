package handler

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "event-ticketing/pkg/app_errors"
	"event-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// PathID parses a numeric path parameter; on failure it writes a 400 and
// returns ok=false.
func PathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	if v, ok := apperrors.AsValidation(err); ok {
		log.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": v.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrTicketTypeNotFound):
		log.Warn("Ticket type not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket type not found"})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, apperrors.ErrWaitlistNotFound):
		log.Warn("Waitlist entry not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Waitlist entry not found"})
	case errors.Is(err, apperrors.ErrReviewNotFound):
		log.Warn("Review not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
	case errors.Is(err, apperrors.ErrInsufficientCapacity):
		log.Warn("Insufficient capacity")
		c.JSON(http.StatusConflict, gin.H{"error": "Not enough tickets available"})
	case errors.Is(err, apperrors.ErrWaitlistConflict):
		log.Warn("Already on waitlist")
		c.JSON(http.StatusConflict, gin.H{"error": "Already on the waitlist for this event"})
	case errors.Is(err, apperrors.ErrReviewConflict):
		log.Warn("Review already exists")
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this event"})
	case errors.Is(err, apperrors.ErrInvalidStatusTransition):
		log.Warn("Invalid status transition")
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is not in a state that allows this operation"})
	case errors.Is(err, apperrors.ErrSoldUnderflow):
		log.Error("Sold counter underflow")
		c.JSON(http.StatusConflict, gin.H{"error": "Ticket sales records are inconsistent for this ticket type"})
	case errors.Is(err, apperrors.ErrReviewNotAllowed):
		log.Warn("Review not allowed")
		c.JSON(http.StatusForbidden, gin.H{"error": "Only verified attendees can review this event"})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		log.Warn("Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func handleSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}
