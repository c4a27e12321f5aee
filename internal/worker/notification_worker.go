package worker

import (
	"context"

	"event-ticketing/internal/model"
	"event-ticketing/internal/queue"
	"event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

type NotificationWorker interface {
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	queue queue.NotificationQueue
}

func NewNotificationWorker(queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		queue: queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			if err := w.deliver(msg.Data); err != nil {
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}

// deliver hands the notification to the delivery channel. Email/push
// integration lives behind this seam; for now the dispatch is logged.
func (w *NotificationWorkerImpl) deliver(n *model.Notification) error {
	log := logger.WithComponent("notification-worker")
	switch n.Type {
	case model.NotificationBookingConfirmed:
		log.Info("booking confirmation dispatched",
			zap.Int("user_id", n.UserID),
			zap.Int("booking_id", n.BookingID),
			zap.String("reference", n.BookingReference),
		)
	case model.NotificationBookingCancelled:
		log.Info("cancellation dispatched",
			zap.Int("user_id", n.UserID),
			zap.Int("booking_id", n.BookingID),
			zap.Int("event_id", n.EventID),
			zap.Int("waitlist_notified", n.WaitlistNotified),
		)
	default:
		log.Warn("unknown notification type", zap.String("type", string(n.Type)))
	}
	return nil
}
