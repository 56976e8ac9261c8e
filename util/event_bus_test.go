// api/util/event_bus_test.go
package util

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/spop-ops/commander/api/logging"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	logger.InitLogger(t.TempDir())
	bus := NewEventBus()

	var first, second atomic.Int32
	bus.Subscribe("task.changed", func(ctx context.Context, event Event) error {
		first.Add(1)
		return nil
	})
	bus.Subscribe("task.changed", func(ctx context.Context, event Event) error {
		second.Add(1)
		return nil
	})

	bus.Publish(context.Background(), "task.changed", "payload")

	require.Eventually(t, func() bool {
		return first.Load() == 1 && second.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPublishIsScopedToEventType(t *testing.T) {
	logger.InitLogger(t.TempDir())
	bus := NewEventBus()

	var calls atomic.Int32
	bus.Subscribe(EventDashboardUpdate, func(ctx context.Context, event Event) error {
		calls.Add(1)
		return nil
	})

	bus.Publish(context.Background(), EventNotificationCreated, "payload")
	bus.Publish(context.Background(), EventDashboardUpdate, "payload")

	require.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 10*time.Millisecond)
	// Give a stray delivery a chance to show up.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPublishWithoutSubscribersIsNoOp(t *testing.T) {
	logger.InitLogger(t.TempDir())
	bus := NewEventBus()

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), "nobody.listens", "payload")
	})
}

func TestHandlerPayloadDelivery(t *testing.T) {
	logger.InitLogger(t.TempDir())
	bus := NewEventBus()

	received := make(chan Event, 1)
	bus.Subscribe(EventDashboardUpdate, func(ctx context.Context, event Event) error {
		received <- event
		return nil
	})

	payload := DashboardEvent{Type: "officer_update", Data: "data"}
	bus.Publish(context.Background(), EventDashboardUpdate, payload)

	select {
	case event := <-received:
		assert.Equal(t, EventDashboardUpdate, event.Type)
		assert.Equal(t, payload, event.Payload)
	case <-time.After(time.Second):
		t.Fatal("handler never received the event")
	}
}
