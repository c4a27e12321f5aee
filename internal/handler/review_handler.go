package handler

import (
	"net/http"

	"event-ticketing/internal/middleware"
	"event-ticketing/internal/model"
	"event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(service service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, attendee gin.HandlerFunc) {
	attendeeRouter := r.Group("/api/attendee", auth, attendee)
	{
		attendeeRouter.POST("events/:eventId/reviews", h.CreateReview)
		attendeeRouter.PUT("reviews/:id", h.UpdateReview)
		attendeeRouter.DELETE("reviews/:id", h.DeleteReview)
	}

	r.GET("/api/events/:eventId/reviews", h.GetEventReviews)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	eventID, ok := PathID(c, "eventId")
	if !ok {
		return
	}

	var req model.CreateReviewRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	review, err := h.service.Create(c, middleware.UserID(c), eventID, req)
	if err != nil {
		handleError(c, err, "CreateReview")
		return
	}

	handleSuccess(c, gin.H{"review": review}, http.StatusCreated)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	review, err := h.service.Update(c, middleware.UserID(c), id, req)
	if err != nil {
		handleError(c, err, "UpdateReview")
		return
	}

	handleSuccess(c, gin.H{"review": review}, http.StatusOK)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c, middleware.UserID(c), id); err != nil {
		handleError(c, err, "DeleteReview")
		return
	}

	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *ReviewHandler) GetEventReviews(c *gin.Context) {
	eventID, ok := PathID(c, "eventId")
	if !ok {
		return
	}

	reviews, err := h.service.ListByEvent(c, eventID)
	if err != nil {
		handleError(c, err, "GetEventReviews")
		return
	}

	handleSuccess(c, gin.H{"reviews": reviews}, http.StatusOK)
}
