package handler

import (
	"net/http"

	"event-ticketing/internal/middleware"
	"event-ticketing/internal/model"
	"event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type WaitlistHandler struct {
	service service.WaitlistService
}

func NewWaitlistHandler(service service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{service: service}
}

func (h *WaitlistHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, attendee gin.HandlerFunc) {
	router := r.Group("/api/attendee", auth, attendee)
	{
		router.POST("events/:eventId/waitlist", h.JoinWaitlist)
		router.DELETE("events/:eventId/waitlist", h.LeaveWaitlist)
		router.GET("waitlist", h.GetWaitlist)
	}
}

func (h *WaitlistHandler) JoinWaitlist(c *gin.Context) {
	eventID, ok := PathID(c, "eventId")
	if !ok {
		return
	}

	var req model.JoinWaitlistRequest
	if c.Request.ContentLength > 0 {
		if err := BindJson(c, &req); err != nil {
			return
		}
	}

	entry, err := h.service.Join(c, middleware.UserID(c), eventID, req.TicketTypeID)
	if err != nil {
		handleError(c, err, "JoinWaitlist")
		return
	}

	handleSuccess(c, gin.H{"waitlist_entry": entry}, http.StatusCreated)
}

func (h *WaitlistHandler) LeaveWaitlist(c *gin.Context) {
	eventID, ok := PathID(c, "eventId")
	if !ok {
		return
	}

	if err := h.service.Leave(c, middleware.UserID(c), eventID); err != nil {
		handleError(c, err, "LeaveWaitlist")
		return
	}

	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *WaitlistHandler) GetWaitlist(c *gin.Context) {
	entries, err := h.service.ListForUser(c, middleware.UserID(c))
	if err != nil {
		handleError(c, err, "GetWaitlist")
		return
	}

	handleSuccess(c, gin.H{"waitlist": entries}, http.StatusOK)
}
