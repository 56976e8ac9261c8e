// api/realtime/client.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

// Close codes sent to the client before tearing the connection down.
const (
	CloseAuthFailure = 4001
	CloseUnexpected  = 4002
)

// subprotocolSentinel marks the token slot in the Sec-WebSocket-Protocol
// list. Browsers cannot set an Authorization header on a WebSocket
// handshake, so the client offers ["bearer-token", "<jwt>"] and the server
// answers with the sentinel.
const subprotocolSentinel = "bearer-token"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// DataSource supplies the live snapshots a connection can request in-band.
type DataSource interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
	Officers(ctx context.Context) ([]model.Officer, error)
	Tasks(ctx context.Context) ([]model.Task, error)
	Orders(ctx context.Context) ([]model.Order, error)
	MarkNotificationRead(ctx context.Context, notificationID, recipientID uint) error
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	Subprotocols:    []string{subprotocolSentinel},
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one live dashboard connection. Outbound messages flow through
// the buffered send channel so the write pump is the only goroutine touching
// the socket for writes.
type Client struct {
	hub    *Hub
	src    DataSource
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// ServeDashboard upgrades the request and runs the connection. The JWT is
// carried in the subprotocol list: the first entry that is not the sentinel
// is treated as the token. Authentication failures close with 4001,
// anything else unexpected with 4002.
func ServeDashboard(hub *Hub, src DataSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote an HTTP error response.
			logger.Warn("WebSocket upgrade failed", zap.Error(err))
			return
		}

		// A panic during the connect phase closes the socket with a distinct
		// code; established connections handle errors in-band instead.
		defer func() {
			if r := recover(); r != nil {
				logger.Error("WebSocket connect failed", zap.Any("panic", r))
				closeWith(conn, CloseUnexpected, "unexpected error")
			}
		}()

		claims, err := authenticate(c.Request)
		if err != nil {
			closeWith(conn, CloseAuthFailure, "authentication failed")
			return
		}

		client := &Client{
			hub:    hub,
			src:    src,
			conn:   conn,
			send:   make(chan []byte, sendBufferSize),
			userID: claims.UserID,
		}

		hub.Join(UserGroup(client.userID), client)
		hub.Join(GroupDashboard, client)

		go client.writePump()

		// The initial snapshot is queued before the read pump starts: the
		// read pump owns close(c.send), so nothing may enqueue concurrently
		// with a disconnect once it is running.
		if err := client.sendInitialData(c.Request.Context()); err != nil {
			logger.Error("Failed to send initial dashboard data",
				zap.Error(err),
				zap.Uint("userID", client.userID))
			client.sendError("failed to load initial data")
		}

		go client.readPump()
	}
}

func authenticate(r *http.Request) (*util.Claims, error) {
	var token string
	for _, proto := range websocket.Subprotocols(r) {
		if proto != subprotocolSentinel {
			token = proto
			break
		}
	}
	if token == "" {
		return nil, fmt.Errorf("no token in subprotocol list")
	}

	claims, err := util.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Kind != util.AccessToken {
		return nil, fmt.Errorf("token is not an access token")
	}
	return claims, nil
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(writeWait)
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
	_ = conn.Close()
}

func (c *Client) sendInitialData(ctx context.Context) error {
	stats, err := c.src.Stats(ctx)
	if err != nil {
		return err
	}
	return c.enqueue(map[string]interface{}{
		"type": "initial_data",
		"data": stats,
	})
}

// enqueue marshals and hands the message to the write pump.
func (c *Client) enqueue(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	default:
		return fmt.Errorf("send buffer full")
	}
}

func (c *Client) sendError(message string) {
	_ = c.enqueue(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}

// inbound is the envelope every client-initiated message uses.
type inbound struct {
	Type           string      `json:"type"`
	Timestamp      interface{} `json:"timestamp,omitempty"`
	NotificationID uint        `json:"notification_id,omitempty"`
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Leave(c)
		close(c.send)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket closed unexpectedly",
					zap.Error(err),
					zap.Uint("userID", c.userID))
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}
		// A bad request never drops the connection; the client gets an
		// in-band error and the loop continues.
		if err := c.handle(msg); err != nil {
			logger.Error("WebSocket handler error",
				zap.Error(err),
				zap.String("messageType", msg.Type),
				zap.Uint("userID", c.userID))
			c.sendError(fmt.Sprintf("failed to handle %s", msg.Type))
		}
	}
}

func (c *Client) handle(msg inbound) error {
	ctx := context.Background()

	switch msg.Type {
	case "ping":
		return c.enqueue(map[string]interface{}{
			"type":      "pong",
			"timestamp": msg.Timestamp,
		})

	case "request_stats_update":
		stats, err := c.src.Stats(ctx)
		if err != nil {
			return err
		}
		return c.enqueue(map[string]interface{}{"type": "stats_update", "data": stats})

	case "request_officer_update":
		officers, err := c.src.Officers(ctx)
		if err != nil {
			return err
		}
		return c.enqueue(map[string]interface{}{"type": "officer_update", "data": officers})

	case "request_tasks_update":
		tasks, err := c.src.Tasks(ctx)
		if err != nil {
			return err
		}
		return c.enqueue(map[string]interface{}{"type": "tasks_update", "data": tasks})

	case "request_orders_update":
		orders, err := c.src.Orders(ctx)
		if err != nil {
			return err
		}
		return c.enqueue(map[string]interface{}{"type": "orders_update", "data": orders})

	case "mark_read":
		err := c.src.MarkNotificationRead(ctx, msg.NotificationID, c.userID)
		return c.enqueue(map[string]interface{}{
			"type":            "mark_read_response",
			"notification_id": msg.NotificationID,
			"success":         err == nil,
		})

	default:
		c.sendError(fmt.Sprintf("unknown message type: %s", msg.Type))
		return nil
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
