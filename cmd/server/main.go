package main

import (
	"context"
	"log"

	"event-ticketing/config"
	"event-ticketing/internal/cache"
	"event-ticketing/internal/database"
	"event-ticketing/internal/handler"
	"event-ticketing/internal/middleware"
	"event-ticketing/internal/model"
	"event-ticketing/internal/queue"
	"event-ticketing/internal/repository"
	"event-ticketing/internal/service"
	"event-ticketing/internal/worker"
	"event-ticketing/monitoring"
	"event-ticketing/pkg/clock"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	clk := clock.NewSystem()
	eventCache := cache.NewEventCache(rdb)

	eventRepo := repository.NewEventRepository(pool)
	ticketRepo := repository.NewTicketTypeRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	waitlistRepo := repository.NewWaitlistRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	var notifQueue queue.NotificationQueue
	if cfg.Queue.Backend == "redis" {
		notifQueue, err = queue.NewRedisStreamNotificationQueue(rdb, "", nil)
		if err != nil {
			log.Fatalf("Failed to initialize notification queue: %v", err)
		}
	} else {
		notifQueue = queue.NewNotificationQueue(256)
	}

	eventService := service.NewEventService(eventRepo, ticketRepo, eventCache, clk)
	bookingService := service.NewBookingService(pool, bookingRepo, ticketRepo, eventRepo, waitlistRepo, notifQueue, clk)
	waitlistService := service.NewWaitlistService(pool, waitlistRepo, eventRepo, ticketRepo)
	reviewService := service.NewReviewService(reviewRepo, bookingRepo, eventRepo)
	chatbotService := service.NewChatbotService(eventService, ticketRepo, bookingService, clk)

	notifWorker := worker.NewNotificationWorker(notifQueue)
	if err := notifWorker.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start notification worker: %v", err)
	}

	router := gin.Default()
	router.Use(monitoring.Middleware())
	monitoring.RegisterRoutes(router)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	auth := middleware.Auth(cfg.Auth.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.Auth.JWTSecret)
	attendee := middleware.RequireRole(model.RoleAttendee)
	organizer := middleware.RequireRole(model.RoleOrganizer)

	handler.NewEventHandler(eventService).RegisterRoutes(router, auth, organizer)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router, auth, attendee)
	handler.NewWaitlistHandler(waitlistService).RegisterRoutes(router, auth, attendee)
	handler.NewReviewHandler(reviewService).RegisterRoutes(router, auth, attendee)
	handler.NewChatbotHandler(chatbotService).RegisterRoutes(router, optionalAuth)

	if err := router.Run(cfg.HTTP.Addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
