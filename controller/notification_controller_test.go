// api/controller/notification_controller_test.go
package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/spop-ops/commander/api/controller"
	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/service"
)

type fakeNotificationService struct {
	markReadFn    func(ctx context.Context, id, recipientID uint) error
	getFn         func(ctx context.Context, id, recipientID uint) (*model.Notification, error)
	unreadCountFn func(ctx context.Context, recipientID uint) (int64, error)
	markAllCalled bool
}

var _ service.INotificationService = &fakeNotificationService{}

func (f *fakeNotificationService) Notify(ctx context.Context, n *model.Notification) error {
	return nil
}

func (f *fakeNotificationService) List(ctx context.Context, recipientID uint, filter dao.NotificationFilter) ([]model.Notification, error) {
	return []model.Notification{}, nil
}

func (f *fakeNotificationService) Get(ctx context.Context, id, recipientID uint) (*model.Notification, error) {
	return f.getFn(ctx, id, recipientID)
}

func (f *fakeNotificationService) Delete(ctx context.Context, id, recipientID uint) error {
	return nil
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, id, recipientID uint) error {
	return f.markReadFn(ctx, id, recipientID)
}

func (f *fakeNotificationService) MarkUnread(ctx context.Context, id, recipientID uint) error {
	return nil
}

func (f *fakeNotificationService) MarkAllRead(ctx context.Context, recipientID uint) error {
	f.markAllCalled = true
	return nil
}

func (f *fakeNotificationService) ClearAll(ctx context.Context, recipientID uint) error {
	return nil
}

func (f *fakeNotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return f.unreadCountFn(ctx, recipientID)
}

func setupNotificationRouter(t *testing.T, svc service.INotificationService) *gin.Engine {
	t.Helper()
	logger.InitLogger(t.TempDir())
	gin.SetMode(gin.TestMode)

	r := gin.New()
	api := r.Group("/", authStub(42, false))
	controller.NewNotificationController(svc).RegisterRoutes(api)
	return r
}

func TestMarkReadReturnsNoContent(t *testing.T) {
	svc := &fakeNotificationService{
		markReadFn: func(ctx context.Context, id, recipientID uint) error {
			assert.Equal(t, uint(7), id)
			assert.Equal(t, uint(42), recipientID)
			return nil
		},
	}
	r := setupNotificationRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/7/mark_read", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMarkReadUnknownNotificationIsNotFound(t *testing.T) {
	svc := &fakeNotificationService{
		markReadFn: func(ctx context.Context, id, recipientID uint) error {
			return api_errors.ErrNotificationNotFound
		},
	}
	r := setupNotificationRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/999/mark_read", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnreadCountPayload(t *testing.T) {
	svc := &fakeNotificationService{
		unreadCountFn: func(ctx context.Context, recipientID uint) (int64, error) {
			return 5, nil
		},
	}
	r := setupNotificationRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications/unread_count", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":5}`, w.Body.String())
}

func TestMarkAllReadReturnsNoContent(t *testing.T) {
	svc := &fakeNotificationService{}
	r := setupNotificationRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/mark_all_read", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, svc.markAllCalled)
}
