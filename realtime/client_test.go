// api/realtime/client_test.go
package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spop-ops/commander/api/config"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

type fakeDataSource struct{}

func (f *fakeDataSource) Stats(ctx context.Context) (*model.DashboardStats, error) {
	return &model.DashboardStats{TotalOfficers: 3}, nil
}

func (f *fakeDataSource) Officers(ctx context.Context) ([]model.Officer, error) {
	return nil, nil
}

func (f *fakeDataSource) Tasks(ctx context.Context) ([]model.Task, error) {
	return nil, nil
}

func (f *fakeDataSource) Orders(ctx context.Context) ([]model.Order, error) {
	return nil, nil
}

func (f *fakeDataSource) MarkNotificationRead(ctx context.Context, notificationID, recipientID uint) error {
	return nil
}

func setupDashboardServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	require.NoError(t, config.InitConfig())
	logger.InitLogger(t.TempDir())
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	r := gin.New()
	r.GET("/ws/dashboard", ServeDashboard(hub, &fakeDataSource{}))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dialDashboard(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dashboard"
	dialer := websocket.Dialer{Subprotocols: []string{subprotocolSentinel, token}}
	conn, _, err := dialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func accessTokenFor(t *testing.T, userID uint) string {
	t.Helper()
	pair, err := util.IssueTokenPair(&model.User{ID: userID, Username: "tester"})
	require.NoError(t, err)
	return pair.Access
}

func TestServeDashboardSendsInitialSnapshotFirst(t *testing.T) {
	_, srv := setupDashboardServer(t)
	conn := dialDashboard(t, srv, accessTokenFor(t, 7))
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "initial_data", msg.Type)
}

// A peer that hangs up before reading anything must not disturb the hub or
// later connections.
func TestServeDashboardSurvivesImmediateDisconnect(t *testing.T) {
	hub, srv := setupDashboardServer(t)
	token := accessTokenFor(t, 7)

	for i := 0; i < 5; i++ {
		conn := dialDashboard(t, srv, token)
		require.NoError(t, conn.Close())
	}

	require.Eventually(t, func() bool {
		return hub.GroupSize(GroupDashboard) == 0
	}, 2*time.Second, 10*time.Millisecond)

	conn := dialDashboard(t, srv, token)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "initial_data")
}

func TestServeDashboardClosesBadTokenWithAuthCode(t *testing.T) {
	_, srv := setupDashboardServer(t)
	conn := dialDashboard(t, srv, "not-a-token")
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok, "expected a close frame, got %v", err)
	assert.Equal(t, CloseAuthFailure, closeErr.Code)
}
