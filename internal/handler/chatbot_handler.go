package handler

import (
	"net/http"

	"event-ticketing/internal/middleware"
	"event-ticketing/internal/model"
	"event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatbotHandler struct {
	service service.ChatbotService
}

func NewChatbotHandler(service service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{service: service}
}

// RegisterRoutes wires the chat endpoint with optional auth: anonymous
// callers can browse but are prompted to log in before booking.
func (h *ChatbotHandler) RegisterRoutes(r *gin.Engine, optionalAuth gin.HandlerFunc) {
	r.POST("/api/chatbot/chat", optionalAuth, h.Chat)
}

func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.HandleMessage(c, middleware.UserID(c), req)
	if err != nil {
		handleError(c, err, "Chat")
		return
	}

	handleSuccess(c, resp, http.StatusOK)
}
