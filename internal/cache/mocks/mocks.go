package mocks

import (
	"context"

	"event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type EventCacheMock struct {
	mock.Mock
}

func NewEventCacheMock() *EventCacheMock {
	return &EventCacheMock{}
}

func (m *EventCacheMock) GetUpcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventCacheMock) SetUpcoming(ctx context.Context, limit int, events []*model.Event) error {
	args := m.Called(ctx, limit, events)
	return args.Error(0)
}

func (m *EventCacheMock) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
