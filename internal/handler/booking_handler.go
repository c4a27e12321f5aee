package handler

import (
	"net/http"

	"event-ticketing/internal/middleware"
	"event-ticketing/internal/model"
	"event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, attendee gin.HandlerFunc) {
	router := r.Group("/api/attendee", auth, attendee)
	{
		router.POST("bookings", h.CreateBooking)
		router.GET("bookings", h.GetBookings)
		router.GET("bookings/:id", h.GetBooking)
		router.DELETE("bookings/:id", h.CancelBooking)
		router.POST("bookings/:id/attend", h.MarkAttendance)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	booking, err := h.service.BookTicket(c, middleware.UserID(c), req.EventID, req.TicketTypeID, req.Quantity)
	if err != nil {
		handleError(c, err, "CreateBooking")
		return
	}

	handleSuccess(c, gin.H{"booking": booking}, http.StatusCreated)
}

func (h *BookingHandler) GetBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c, middleware.UserID(c))
	if err != nil {
		handleError(c, err, "GetBookings")
		return
	}

	handleSuccess(c, gin.H{"bookings": bookings}, http.StatusOK)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(c, middleware.UserID(c), id)
	if err != nil {
		handleError(c, err, "GetBooking")
		return
	}

	handleSuccess(c, gin.H{"booking": booking}, http.StatusOK)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.CancelBooking(c, middleware.UserID(c), id)
	if err != nil {
		handleError(c, err, "CancelBooking")
		return
	}

	handleSuccess(c, result, http.StatusOK)
}

func (h *BookingHandler) MarkAttendance(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.MarkAttendance(c, middleware.UserID(c), id)
	if err != nil {
		handleError(c, err, "MarkAttendance")
		return
	}

	handleSuccess(c, gin.H{"booking": booking}, http.StatusOK)
}
