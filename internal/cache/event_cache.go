package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"event-ticketing/internal/model"

	"github.com/redis/go-redis/v9"
)

// EventCache is a read-through cache for the upcoming-events page consumed
// by the public listing and the chatbot search intent. Never used for a
// booking decision; availability is always re-read under the row lock.
type EventCache interface {
	GetUpcoming(ctx context.Context, limit int) ([]*model.Event, error)
	SetUpcoming(ctx context.Context, limit int, events []*model.Event) error
	Invalidate(ctx context.Context) error
}

const upcomingTTL = 30 * time.Second

type EventCacheImpl struct {
	client *redis.Client
}

func NewEventCache(client *redis.Client) EventCache {
	return &EventCacheImpl{
		client: client,
	}
}

func (c *EventCacheImpl) upcomingKey(limit int) string {
	return fmt.Sprintf("events:upcoming:%d", limit)
}

func (c *EventCacheImpl) GetUpcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	val, err := c.client.Get(ctx, c.upcomingKey(limit)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var events []*model.Event
	if err := json.Unmarshal([]byte(val), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *EventCacheImpl) SetUpcoming(ctx context.Context, limit int, events []*model.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.upcomingKey(limit), data, upcomingTTL).Err()
}

func (c *EventCacheImpl) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "events:upcoming:*", 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
