package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"event-ticketing/internal/handler"
	"event-ticketing/internal/model"
	"event-ticketing/internal/service/mocks"
	apperrors "event-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupWaitlistTestRouter(mockService *mocks.WaitlistServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	waitlistHandler := handler.NewWaitlistHandler(mockService)
	waitlistHandler.RegisterRoutes(router, testIdentity(5), passthrough())

	return router
}

func TestJoinWaitlist(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewWaitlistServiceMock()
		router := setupWaitlistTestRouter(mockService)

		ticketTypeID := 10
		mockService.On("Join", mock.Anything, 5, 1, &ticketTypeID).Return(&model.WaitlistEntry{
			ID:       9,
			Position: 3,
			Status:   model.WaitlistStatusWaiting,
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/attendee/events/1/waitlist", model.JoinWaitlistRequest{TicketTypeID: &ticketTypeID})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"position":3`)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - duplicate", func(t *testing.T) {
		mockService := mocks.NewWaitlistServiceMock()
		router := setupWaitlistTestRouter(mockService)

		mockService.On("Join", mock.Anything, 5, 1, (*int)(nil)).Return(nil, apperrors.ErrWaitlistConflict).Once()

		req := createJSONHTTPRequest("POST", "/api/attendee/events/1/waitlist", model.JoinWaitlistRequest{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLeaveWaitlist(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewWaitlistServiceMock()
		router := setupWaitlistTestRouter(mockService)

		mockService.On("Leave", mock.Anything, 5, 1).Return(nil).Once()

		req := createJSONHTTPRequest("DELETE", "/api/attendee/events/1/waitlist", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Failed - no membership", func(t *testing.T) {
		mockService := mocks.NewWaitlistServiceMock()
		router := setupWaitlistTestRouter(mockService)

		mockService.On("Leave", mock.Anything, 5, 1).Return(apperrors.ErrWaitlistNotFound).Once()

		req := createJSONHTTPRequest("DELETE", "/api/attendee/events/1/waitlist", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
