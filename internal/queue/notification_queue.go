package queue

import (
	"context"

	"event-ticketing/internal/model"
)

type Delivery struct {
	Data *model.Notification
	Ack  func()
	Nack func(requeue bool)
}

// NotificationQueue decouples ledger transactions from delivery: booking
// confirmations and cancellations are published after commit and drained by
// the notification worker.
type NotificationQueue interface {
	Publish(ctx context.Context, notification *model.Notification) error
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type NotificationQueueImpl struct {
	ch chan *model.Notification
}

// NewNotificationQueue returns the in-memory, channel-backed queue. The
// Redis Streams implementation is used when deliveries must survive restarts.
func NewNotificationQueue(bufferSize int) NotificationQueue {
	return &NotificationQueueImpl{
		ch: make(chan *model.Notification, bufferSize),
	}
}

func (q *NotificationQueueImpl) Publish(ctx context.Context, notification *model.Notification) error {
	select {
	case q.ch <- notification:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *NotificationQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case notification, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: notification,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- notification
						}
					},
				}
			}
		}
	}()

	return out, nil
}
