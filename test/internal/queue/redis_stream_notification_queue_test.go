package queue_test

import (
	"context"
	"testing"
	"time"

	"event-ticketing/internal/model"
	"event-ticketing/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanupStream(ctx context.Context, t *testing.T) {
	t.Helper()
	_ = testRdb.Del(ctx, queue.StreamKey).Err()
}

func sampleNotification(reference string) *model.Notification {
	return &model.Notification{
		Type:             model.NotificationBookingConfirmed,
		UserID:           7,
		BookingID:        42,
		BookingReference: reference,
		EventID:          1,
		TicketTypeID:     10,
		Quantity:         2,
	}
}

func TestNewRedisStreamNotificationQueue(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	t.Run("success", func(t *testing.T) {
		q, err := queue.NewRedisStreamNotificationQueue(testRdb, "test-consumer", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})

	t.Run("empty_consumer_id_generates_uuid", func(t *testing.T) {
		cleanupStream(ctx, t)
		q, err := queue.NewRedisStreamNotificationQueue(testRdb, "", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})
}

func TestRedisStreamNotificationQueue_Publish(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(testRdb, "pub-test", nil)
	require.NoError(t, err)

	err = q.Publish(ctx, sampleNotification("BK-0011223344"))
	require.NoError(t, err)
}

func TestRedisStreamNotificationQueue_Subscribe_deliversPublishedMessage(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(testRdb, "deliver-test", nil)
	require.NoError(t, err)

	notification := sampleNotification("BK-DELIVER0001")
	require.NoError(t, q.Publish(ctx, notification))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok, "expected a delivery")
		require.NotNil(t, d.Data)
		assert.Equal(t, notification.Type, d.Data.Type)
		assert.Equal(t, notification.UserID, d.Data.UserID)
		assert.Equal(t, notification.BookingID, d.Data.BookingID)
		assert.Equal(t, notification.BookingReference, d.Data.BookingReference)
		assert.Equal(t, notification.Quantity, d.Data.Quantity)
	case <-subCtx.Done():
		t.Fatal("timeout waiting for delivery")
	}
}

func TestRedisStreamNotificationQueue_Ack_preventsRedelivery(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(testRdb, "ack-test", nil)
	require.NoError(t, err)

	notification := sampleNotification("BK-ACK00000001")
	require.NoError(t, q.Publish(ctx, notification))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	var first *model.Notification
	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		first = d.Data
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout waiting for first delivery")
	}

	cancel()
	next, ok := <-delCh
	assert.False(t, ok, "after Ack the next read should be the closed channel")
	if ok && next.Data != nil && next.Data.BookingReference == first.BookingReference {
		t.Fatalf("message redelivered after Ack: %s", first.BookingReference)
	}
}

func TestRedisStreamNotificationQueue_NackDiscard_preventsRedelivery(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(testRdb, "nack-discard-test", nil)
	require.NoError(t, err)

	notification := sampleNotification("BK-DISCARD0001")
	require.NoError(t, q.Publish(ctx, notification))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		assert.Equal(t, notification.BookingReference, d.Data.BookingReference)
		d.Nack(false)
	case <-subCtx.Done():
		t.Fatal("timeout waiting for first delivery")
	}

	select {
	case d, ok := <-delCh:
		if ok && d.Data != nil && d.Data.BookingReference == notification.BookingReference {
			t.Fatalf("message redelivered after Nack(false): %s", d.Data.BookingReference)
		}
	case <-time.After(2 * time.Second):
		// No second delivery; the discard held.
	}
	cancel()
}

func TestRedisStreamNotificationQueue_NackRequeue_redeliversAfterIdle(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	cfg := &queue.RedisStreamNotificationQueueConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 500 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamNotificationQueue(testRdb, "nack-requeue-test", cfg)
	require.NoError(t, err)

	notification := sampleNotification("BK-REQUEUE0001")
	require.NoError(t, q.Publish(ctx, notification))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		assert.Equal(t, notification.BookingReference, d.Data.BookingReference)
		d.Nack(true)
	case <-subCtx.Done():
		t.Fatal("timeout waiting for first delivery")
	}

	select {
	case d, ok := <-delCh:
		require.True(t, ok, "Nack(requeue) should redeliver after ClaimMinIdleTime")
		require.NotNil(t, d.Data)
		assert.Equal(t, notification.BookingReference, d.Data.BookingReference)
	case <-subCtx.Done():
		t.Fatal("timeout waiting for the retry delivery")
	}
}

func TestRedisStreamNotificationQueue_poisonMessage_discardedAfterMaxRetries(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	cfg := &queue.RedisStreamNotificationQueueConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		MaxRetryCount:      3,
		ReadGroupBlockTime: 200 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamNotificationQueue(testRdb, "poison-test", cfg)
	require.NoError(t, err)

	notification := sampleNotification("BK-POISON00001")
	require.NoError(t, q.Publish(ctx, notification))

	subCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	delCh, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	received := 0
	waitNoMore := 500 * time.Millisecond
loop:
	for {
		select {
		case d, ok := <-delCh:
			if !ok {
				t.Fatalf("channel closed early, received %d deliveries", received)
			}
			require.NotNil(t, d.Data)
			assert.Equal(t, notification.BookingReference, d.Data.BookingReference)
			received++
			d.Nack(true)
		case <-time.After(waitNoMore):
			if received >= 1 {
				break loop
			}
			t.Fatal("timeout without any delivery")
		case <-subCtx.Done():
			t.Fatalf("test context timeout, received %d deliveries", received)
		}
	}

	require.GreaterOrEqual(t, received, 1)
	select {
	case d, ok := <-delCh:
		if ok && d.Data != nil && d.Data.BookingReference == notification.BookingReference {
			t.Fatalf("poison message redelivered past the retry limit: %s", d.Data.BookingReference)
		}
	case <-time.After(500 * time.Millisecond):
		// No further delivery; the poison message was dropped.
	}
}

func TestRedisStreamNotificationQueue_Subscribe_ctxCancel_closesChannel(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(testRdb, "cancel-test", nil)
	require.NoError(t, err)

	subCtx, cancel := context.WithCancel(ctx)
	delCh, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-delCh:
		assert.False(t, ok, "channel should close after context cancel")
	case <-time.After(3 * time.Second):
		t.Fatal("channel did not close in time")
	}
}
