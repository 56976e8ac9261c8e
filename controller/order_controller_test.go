// api/controller/order_controller_test.go
package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
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

// fakeOrderService drives the controller through function fields so each
// subtest installs exactly the behavior it needs.
type fakeOrderService struct {
	createFn      func(ctx context.Context, order *model.Order, actorID uint) (*model.Order, error)
	getFn         func(ctx context.Context, id uint) (*model.Order, error)
	listFn        func(ctx context.Context, filter dao.OrderFilter) ([]model.Order, error)
	acknowledgeFn func(ctx context.Context, id, userID uint, req service.AcknowledgeRequest) (*model.Order, error)
	markUrgentFn  func(ctx context.Context, id, actorID uint, isCommander bool) (*model.Order, error)
}

func (f *fakeOrderService) Create(ctx context.Context, order *model.Order, actorID uint) (*model.Order, error) {
	return f.createFn(ctx, order, actorID)
}

func (f *fakeOrderService) Update(ctx context.Context, order *model.Order, actorID uint) (*model.Order, error) {
	return order, nil
}

func (f *fakeOrderService) Delete(ctx context.Context, id, actorID uint) error {
	return nil
}

func (f *fakeOrderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	return f.getFn(ctx, id)
}

func (f *fakeOrderService) List(ctx context.Context, filter dao.OrderFilter) ([]model.Order, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeOrderService) Urgent(ctx context.Context, requesterUserID uint, isCommander bool) ([]model.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) Acknowledge(ctx context.Context, id, userID uint, req service.AcknowledgeRequest) (*model.Order, error) {
	return f.acknowledgeFn(ctx, id, userID, req)
}

func (f *fakeOrderService) MarkUrgent(ctx context.Context, id, actorID uint, isCommander bool) (*model.Order, error) {
	return f.markUrgentFn(ctx, id, actorID, isCommander)
}

// authStub injects the identity normally set by the auth middleware.
func authStub(userID uint, isCommander bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("requestingUserID", userID)
		c.Set("requestingUser", "tester")
		c.Set("isCommander", isCommander)
		c.Next()
	}
}

func setupOrderRouter(t *testing.T, svc service.IOrderService, isCommander bool) *gin.Engine {
	t.Helper()
	logger.InitLogger(t.TempDir())
	gin.SetMode(gin.TestMode)

	r := gin.New()
	api := r.Group("/", authStub(42, isCommander))
	controller.NewOrderController(svc).RegisterRoutes(api)
	return r
}

func TestCreateOrderReturnsCreated(t *testing.T) {
	svc := &fakeOrderService{
		createFn: func(ctx context.Context, order *model.Order, actorID uint) (*model.Order, error) {
			assert.Equal(t, uint(42), actorID)
			order.ID = 1
			return order, nil
		},
	}
	r := setupOrderRouter(t, svc, true)

	body := strings.NewReader(`{"title":"Patrol sector 4"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/orders", body)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateOrderForbiddenForNonCommanders(t *testing.T) {
	r := setupOrderRouter(t, &fakeOrderService{}, false)

	body := strings.NewReader(`{"title":"Patrol sector 4"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/orders", body)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &fakeOrderService{
		getFn: func(ctx context.Context, id uint) (*model.Order, error) {
			return nil, api_errors.ErrOrderNotFound
		},
	}
	r := setupOrderRouter(t, svc, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/orders/9", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersScopesNonCommanders(t *testing.T) {
	var captured dao.OrderFilter
	svc := &fakeOrderService{
		listFn: func(ctx context.Context, filter dao.OrderFilter) ([]model.Order, error) {
			captured = filter
			return []model.Order{}, nil
		},
	}
	r := setupOrderRouter(t, svc, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/orders", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), captured.AssignedToUserID)
}

func TestAcknowledgeNotRequiredIsBadRequest(t *testing.T) {
	svc := &fakeOrderService{
		acknowledgeFn: func(ctx context.Context, id, userID uint, req service.AcknowledgeRequest) (*model.Order, error) {
			return nil, api_errors.ErrAckNotRequired
		},
	}
	r := setupOrderRouter(t, svc, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/orders/3/acknowledge", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkUrgentForbiddenForNonCommanders(t *testing.T) {
	svc := &fakeOrderService{
		markUrgentFn: func(ctx context.Context, id, actorID uint, isCommander bool) (*model.Order, error) {
			assert.False(t, isCommander)
			return nil, api_errors.ErrCommanderOnly
		},
	}
	r := setupOrderRouter(t, svc, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/orders/3/mark_urgent", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMarkUrgentAllowedForCommanders(t *testing.T) {
	svc := &fakeOrderService{
		markUrgentFn: func(ctx context.Context, id, actorID uint, isCommander bool) (*model.Order, error) {
			assert.True(t, isCommander)
			return &model.Order{ID: id, IsUrgent: true}, nil
		},
	}
	r := setupOrderRouter(t, svc, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/orders/3/mark_urgent", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_urgent":true`)
}
