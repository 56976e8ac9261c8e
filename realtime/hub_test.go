// api/realtime/hub_test.go
package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

func newTestClient(userID uint) *Client {
	return &Client{
		send:   make(chan []byte, sendBufferSize),
		userID: userID,
	}
}

func TestBroadcastReachesOnlyGroupMembers(t *testing.T) {
	logger.InitLogger(t.TempDir())
	hub := NewHub()

	alice := newTestClient(1)
	bob := newTestClient(2)
	hub.Join(UserGroup(1), alice)
	hub.Join(UserGroup(2), bob)
	hub.Join(GroupDashboard, alice)
	hub.Join(GroupDashboard, bob)

	hub.Broadcast(UserGroup(1), map[string]string{"type": "notification"})

	select {
	case msg := <-alice.send:
		assert.Contains(t, string(msg), "notification")
	default:
		t.Fatal("expected a message for alice")
	}
	assert.Empty(t, bob.send)

	hub.Broadcast(GroupDashboard, map[string]string{"type": "stats_update"})
	assert.Len(t, alice.send, 1)
	assert.Len(t, bob.send, 1)
}

func TestLeaveRemovesClientFromAllGroups(t *testing.T) {
	logger.InitLogger(t.TempDir())
	hub := NewHub()

	c := newTestClient(1)
	hub.Join(UserGroup(1), c)
	hub.Join(GroupDashboard, c)
	require.Equal(t, 1, hub.GroupSize(GroupDashboard))

	hub.Leave(c)

	assert.Equal(t, 0, hub.GroupSize(UserGroup(1)))
	assert.Equal(t, 0, hub.GroupSize(GroupDashboard))

	hub.Broadcast(GroupDashboard, map[string]string{"type": "stats_update"})
	assert.Empty(t, c.send)
}

func TestSlowClientIsSkippedNotBlocked(t *testing.T) {
	logger.InitLogger(t.TempDir())
	hub := NewHub()

	slow := &Client{send: make(chan []byte), userID: 1} // unbuffered, never read
	fast := newTestClient(2)
	hub.Join(GroupDashboard, slow)
	hub.Join(GroupDashboard, fast)

	done := make(chan struct{})
	go func() {
		hub.Broadcast(GroupDashboard, map[string]string{"type": "stats_update"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
	assert.Len(t, fast.send, 1)
}

func TestEventBusBindingRoutesEvents(t *testing.T) {
	logger.InitLogger(t.TempDir())
	hub := NewHub()
	bus := util.NewEventBus()
	hub.BindEventBus(bus)

	dashboardClient := newTestClient(1)
	hub.Join(GroupDashboard, dashboardClient)
	recipient := newTestClient(2)
	hub.Join(UserGroup(2), recipient)

	bus.Publish(context.Background(), util.EventDashboardUpdate, util.DashboardEvent{
		Type: "task_update",
		Data: map[string]interface{}{"id": 1},
	})
	bus.Publish(context.Background(), util.EventNotificationCreated, util.NotificationEvent{
		RecipientID:  2,
		Notification: &model.Notification{ID: 9, RecipientID: 2, Title: "New Order"},
	})

	// Event bus handlers run asynchronously.
	require.Eventually(t, func() bool {
		return len(dashboardClient.send) == 1 && len(recipient.send) == 1
	}, time.Second, 10*time.Millisecond)

	var update map[string]interface{}
	require.NoError(t, json.Unmarshal(<-dashboardClient.send, &update))
	assert.Equal(t, "task_update", update["type"])

	var notification map[string]interface{}
	require.NoError(t, json.Unmarshal(<-recipient.send, &notification))
	assert.Equal(t, "notification", notification["type"])
}
