// api/controller/circular_controller_test.go
package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spop-ops/commander/api/controller"
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/service"
)

type fakeCircularService struct {
	createFn      func(ctx context.Context, circular *model.Circular, actorID uint) (*model.Circular, error)
	getFn         func(ctx context.Context, id uuid.UUID, requesterID uint, isCommander bool) (*model.Circular, error)
	acknowledgeFn func(ctx context.Context, id uuid.UUID, officerID uint, req service.CircularAckRequest) error
}

var _ service.ICircularService = &fakeCircularService{}

func (f *fakeCircularService) Create(ctx context.Context, circular *model.Circular, actorID uint) (*model.Circular, error) {
	return f.createFn(ctx, circular, actorID)
}

func (f *fakeCircularService) Update(ctx context.Context, circular *model.Circular, actorID uint) (*model.Circular, error) {
	return circular, nil
}

func (f *fakeCircularService) Delete(ctx context.Context, id uuid.UUID, actorID uint) error {
	return nil
}

func (f *fakeCircularService) Get(ctx context.Context, id uuid.UUID, requesterID uint, isCommander bool) (*model.Circular, error) {
	return f.getFn(ctx, id, requesterID, isCommander)
}

func (f *fakeCircularService) ListForOfficer(ctx context.Context, userID uint) ([]model.Circular, error) {
	return nil, nil
}

func (f *fakeCircularService) Acknowledge(ctx context.Context, id uuid.UUID, officerID uint, req service.CircularAckRequest) error {
	return f.acknowledgeFn(ctx, id, officerID, req)
}

func (f *fakeCircularService) AddAttachment(ctx context.Context, circularID uuid.UUID, attachment *model.CircularAttachment) error {
	return nil
}

func setupCircularRouter(t *testing.T, svc *fakeCircularService, userID uint, isCommander bool) *gin.Engine {
	t.Helper()
	logger.InitLogger(t.TempDir())
	gin.SetMode(gin.TestMode)

	r := gin.New()
	api := r.Group("/", authStub(userID, isCommander))
	controller.NewCircularController(svc).RegisterRoutes(api)
	return r
}

func TestAcknowledgeCircular(t *testing.T) {
	circularID := uuid.New()

	var gotOfficerID uint
	svc := &fakeCircularService{
		acknowledgeFn: func(ctx context.Context, id uuid.UUID, officerID uint, req service.CircularAckRequest) error {
			gotOfficerID = officerID
			return nil
		},
	}
	r := setupCircularRouter(t, svc, 7, false)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"device_info":"tablet"}`)
	req, _ := http.NewRequest("POST", "/circulars/"+circularID.String()+"/acknowledge", body)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"acknowledged":true`)
	assert.Equal(t, uint(7), gotOfficerID)
}

func TestAcknowledgeCircularRepeatIsRejected(t *testing.T) {
	circularID := uuid.New()
	calls := 0
	svc := &fakeCircularService{
		acknowledgeFn: func(ctx context.Context, id uuid.UUID, officerID uint, req service.CircularAckRequest) error {
			calls++
			if calls > 1 {
				return api_errors.ErrAlreadyAcknowledged
			}
			return nil
		},
	}
	r := setupCircularRouter(t, svc, 7, false)

	for i, want := range []int{http.StatusCreated, http.StatusBadRequest} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/circulars/"+circularID.String()+"/acknowledge", http.NoBody)
		r.ServeHTTP(w, req)
		require.Equal(t, want, w.Code, "attempt %d", i+1)
	}
}

func TestAcknowledgeExpiredCircular(t *testing.T) {
	svc := &fakeCircularService{
		acknowledgeFn: func(ctx context.Context, id uuid.UUID, officerID uint, req service.CircularAckRequest) error {
			return api_errors.ErrCircularExpired
		},
	}
	r := setupCircularRouter(t, svc, 7, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/circulars/"+uuid.NewString()+"/acknowledge", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCircularHiddenFromUntargetedOfficer(t *testing.T) {
	svc := &fakeCircularService{
		getFn: func(ctx context.Context, id uuid.UUID, requesterID uint, isCommander bool) (*model.Circular, error) {
			assert.False(t, isCommander)
			return nil, api_errors.ErrCircularNotFound
		},
	}
	r := setupCircularRouter(t, svc, 7, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/circulars/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCircularRejectsMalformedID(t *testing.T) {
	r := setupCircularRouter(t, &fakeCircularService{}, 7, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/circulars/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
