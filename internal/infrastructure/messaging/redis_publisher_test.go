package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/pkg/messaging"
)

type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func (m *MockRedisClient) Subscribe(ctx context.Context, channel string) (<-chan messaging.Message, error) {
	args := m.Called(ctx, channel)
	return nil, args.Error(1)
}

func (m *MockRedisClient) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRedisClient) Close() error {
	return m.Called().Error(0)
}

func TestRedisEventPublisher_PublishesToBothChannels(t *testing.T) {
	client := new(MockRedisClient)
	event := entity.Event{
		Type:       entity.EventApplicationDecided,
		ResourceID: "app-1",
		Attributes: map[string]string{"status": "APPROVED"},
		OccurredAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	client.On("Publish", mock.Anything, "omt.events", event).Return(nil)
	client.On("Publish", mock.Anything, "omt.events:application.decided", event).Return(nil)

	publisher := NewRedisEventPublisher(client, "omt.events")
	require.NoError(t, publisher.Publish(context.Background(), event))
	client.AssertExpectations(t)
}

func TestRedisEventPublisher_StopsOnFirstFailure(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Publish", mock.Anything, "omt.events", mock.Anything).Return(errors.New("connection refused"))

	publisher := NewRedisEventPublisher(client, "omt.events")
	err := publisher.Publish(context.Background(), entity.Event{Type: entity.EventPaymentRecorded, ResourceID: "p-1"})

	assert.ErrorContains(t, err, "connection refused")
	client.AssertNumberOfCalls(t, "Publish", 1)
}

func TestRedisEventPublisher_RequiresType(t *testing.T) {
	publisher := NewRedisEventPublisher(new(MockRedisClient), "omt.events")
	assert.Error(t, publisher.Publish(context.Background(), entity.Event{ResourceID: "x"}))
}
