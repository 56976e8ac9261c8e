// api/controller/sync_controller_test.go
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
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
)

type fakeSyncService struct {
	pullFn func(ctx context.Context, req model.PullRequest) (*model.PullResponse, error)
	pushFn func(ctx context.Context, req model.PushRequest, actorID uint) (*model.PushResult, error)
}

func (f *fakeSyncService) Pull(ctx context.Context, req model.PullRequest) (*model.PullResponse, error) {
	return f.pullFn(ctx, req)
}

func (f *fakeSyncService) Push(ctx context.Context, req model.PushRequest, actorID uint) (*model.PushResult, error) {
	return f.pushFn(ctx, req, actorID)
}

func setupSyncRouter(t *testing.T, svc *fakeSyncService) *gin.Engine {
	t.Helper()
	logger.InitLogger(t.TempDir())
	gin.SetMode(gin.TestMode)

	r := gin.New()
	api := r.Group("/", authStub(42, false))
	controller.NewSyncController(svc).RegisterRoutes(api)
	return r
}

func TestPushAnswersOKDespiteItemFailures(t *testing.T) {
	svc := &fakeSyncService{
		pushFn: func(ctx context.Context, req model.PushRequest, actorID uint) (*model.PushResult, error) {
			return &model.PushResult{
				Success: []model.PushItem{{Type: "tasks", ID: float64(1)}},
				Failed:  []model.PushItem{{Type: "tasks", ID: float64(2), Error: "task not found"}},
			}, nil
		},
	}
	r := setupSyncRouter(t, svc)

	body := strings.NewReader(`{"changes":{"tasks":[{"id":1},{"id":2}]}}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/sync/push", body)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"failed"`)
	assert.Contains(t, w.Body.String(), "task not found")
}

func TestPullUnknownEntityTypeIsBadRequest(t *testing.T) {
	svc := &fakeSyncService{
		pullFn: func(ctx context.Context, req model.PullRequest) (*model.PullResponse, error) {
			return nil, api_errors.ErrUnknownEntityType
		},
	}
	r := setupSyncRouter(t, svc)

	body := strings.NewReader(`{"entity_types":["missions"]}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/sync/pull", body)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPullEmptyBodyUsesDefaults(t *testing.T) {
	var captured model.PullRequest
	svc := &fakeSyncService{
		pullFn: func(ctx context.Context, req model.PullRequest) (*model.PullResponse, error) {
			captured = req
			return &model.PullResponse{}, nil
		},
	}
	r := setupSyncRouter(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/sync/pull", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, captured.LastSync)
	assert.Empty(t, captured.EntityTypes)
}
