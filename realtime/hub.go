// api/realtime/hub.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/util"
)

// Group names. Every authenticated connection joins its own user group plus
// the shared dashboard group.
const (
	GroupDashboard = "dashboard_updates"
)

func UserGroup(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

// Hub is the connection registry for the dashboard WebSocket. Membership is
// explicit: connections join and leave named groups and broadcasts address a
// group, never the process at large.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{groups: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Join(group string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[group]
	if !ok {
		members = make(map[*Client]struct{})
		h.groups[group] = members
	}
	members[c] = struct{}{}
}

// Leave removes the client from every group it belongs to.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for group, members := range h.groups {
		delete(members, c)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
}

// Broadcast marshals the message once and hands it to every member of the
// group. A member whose send buffer is full is skipped; delivery is best
// effort and per-connection order is preserved by the send channel.
func (h *Hub) Broadcast(group string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal broadcast message",
			zap.Error(err),
			zap.String("group", group))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.groups[group] {
		select {
		case c.send <- data:
		default:
			logger.Warn("Dropping message for slow connection",
				zap.String("group", group),
				zap.Uint("userID", c.userID))
		}
	}
}

// GroupSize reports current membership, used by tests and diagnostics.
func (h *Hub) GroupSize(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// BindEventBus wires store-side change events into connection groups:
// dashboard updates fan out to every dashboard subscriber, notifications go
// only to their recipient's group.
func (h *Hub) BindEventBus(bus *util.EventBus) {
	bus.Subscribe(util.EventDashboardUpdate, func(ctx context.Context, event util.Event) error {
		update, ok := event.Payload.(util.DashboardEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s: %T", event.Type, event.Payload)
		}
		h.Broadcast(GroupDashboard, update)
		return nil
	})

	bus.Subscribe(util.EventNotificationCreated, func(ctx context.Context, event util.Event) error {
		ne, ok := event.Payload.(util.NotificationEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s: %T", event.Type, event.Payload)
		}
		h.Broadcast(UserGroup(ne.RecipientID), map[string]interface{}{
			"type":         "notification",
			"notification": ne.Notification,
		})
		return nil
	})
}
