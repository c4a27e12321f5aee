package handler

import (
	"net/http"
	"strconv"
	"time"

	"event-ticketing/internal/middleware"
	"event-ticketing/internal/model"
	"event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 20

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, organizer gin.HandlerFunc) {
	router := r.Group("/api")
	{
		router.GET("events", h.GetEvents)
		router.GET("events/:eventId", h.GetEvent)
		router.GET("events/:eventId/ticket-types", h.GetTicketTypes)
	}

	organizerRouter := r.Group("/api/organizer", auth, organizer)
	{
		organizerRouter.POST("events", h.CreateEvent)
		organizerRouter.PUT("events/:eventId", h.UpdateEvent)
		organizerRouter.POST("events/:eventId/publish", h.PublishEvent)
		organizerRouter.POST("events/:eventId/ticket-types", h.CreateTicketType)
	}
}

func (h *EventHandler) GetEvents(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var (
		events []*model.Event
		err    error
	)
	if q := c.Query("q"); q != "" {
		events, err = h.service.SearchByTitle(c, q, limit)
	} else {
		events, err = h.service.ListUpcoming(c, limit)
	}
	if err != nil {
		handleError(c, err, "GetEvents")
		return
	}

	handleSuccess(c, gin.H{"events": events}, http.StatusOK)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := PathID(c, "eventId")
	if !ok {
		return
	}

	event, err := h.service.GetByID(c, id)
	if err != nil {
		handleError(c, err, "GetEvent")
		return
	}

	handleSuccess(c, gin.H{"event": event}, http.StatusOK)
}

func (h *EventHandler) GetTicketTypes(c *gin.Context) {
	id, ok := PathID(c, "eventId")
	if !ok {
		return
	}

	ticketTypes, err := h.service.ListTicketTypes(c, id)
	if err != nil {
		handleError(c, err, "GetTicketTypes")
		return
	}

	handleSuccess(c, gin.H{"ticket_types": ticketTypes}, http.StatusOK)
}

type createEventRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   *string    `json:"description"`
	Location      string     `json:"location" binding:"required"`
	StartDateTime time.Time  `json:"startDateTime" binding:"required"`
	EndDateTime   *time.Time `json:"endDateTime"`
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Create(c, model.CreateEventParams{
		OrganizerID:   middleware.UserID(c),
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
	})
	if err != nil {
		handleError(c, err, "CreateEvent")
		return
	}

	handleSuccess(c, gin.H{"event": event}, http.StatusCreated)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := PathID(c, "eventId")
	if !ok {
		return
	}

	var req model.UpdateEventParams
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Update(c, id, req)
	if err != nil {
		handleError(c, err, "UpdateEvent")
		return
	}

	handleSuccess(c, gin.H{"event": event}, http.StatusOK)
}

func (h *EventHandler) PublishEvent(c *gin.Context) {
	id, ok := PathID(c, "eventId")
	if !ok {
		return
	}

	event, err := h.service.Publish(c, id)
	if err != nil {
		handleError(c, err, "PublishEvent")
		return
	}

	handleSuccess(c, gin.H{"event": event}, http.StatusOK)
}

type createTicketTypeRequest struct {
	Name           string          `json:"name" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Capacity       int             `json:"capacity" binding:"required,min=1"`
	SalesStartDate *time.Time      `json:"salesStartDate"`
	SalesEndDate   *time.Time      `json:"salesEndDate"`
}

func (h *EventHandler) CreateTicketType(c *gin.Context) {
	eventID, ok := PathID(c, "eventId")
	if !ok {
		return
	}

	var req createTicketTypeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticketType, err := h.service.CreateTicketType(c, model.CreateTicketTypeParams{
		EventID:        eventID,
		Name:           req.Name,
		Price:          req.Price,
		Capacity:       req.Capacity,
		SalesStartDate: req.SalesStartDate,
		SalesEndDate:   req.SalesEndDate,
	})
	if err != nil {
		handleError(c, err, "CreateTicketType")
		return
	}

	handleSuccess(c, gin.H{"ticket_type": ticketType}, http.StatusCreated)
}
