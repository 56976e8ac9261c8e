// api/service/sync_service_test.go
package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spop-ops/commander/api/config"
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/service"
)

type fakeTaskStore struct {
	updatedSinceArg time.Time
	updated         []model.Task
	partialErr      error
	partialCalls    []uint
	created         []*model.Task
	createErr       error
	log             *[]string
}

func (f *fakeTaskStore) UpdatedSince(ctx context.Context, since time.Time) ([]model.Task, error) {
	f.updatedSinceArg = since
	return f.updated, nil
}

func (f *fakeTaskStore) PartialUpdate(ctx context.Context, id uint, fields map[string]interface{}, actorID uint, source string) (*model.Task, error) {
	f.partialCalls = append(f.partialCalls, id)
	if f.log != nil {
		*f.log = append(*f.log, "tasks")
	}
	if f.partialErr != nil {
		return nil, f.partialErr
	}
	return &model.Task{ID: id}, nil
}

func (f *fakeTaskStore) Create(ctx context.Context, task *model.Task, actorID uint, source string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, task)
	return nil
}

type fakeOrderStore struct {
	updated []model.Order
	created []*model.Order
	log     *[]string
}

func (f *fakeOrderStore) UpdatedSince(ctx context.Context, since time.Time) ([]model.Order, error) {
	return f.updated, nil
}

func (f *fakeOrderStore) PartialUpdate(ctx context.Context, id uint, fields map[string]interface{}, actorID uint, source string) (*model.Order, error) {
	if f.log != nil {
		*f.log = append(*f.log, "orders")
	}
	return &model.Order{ID: id}, nil
}

func (f *fakeOrderStore) Create(ctx context.Context, order *model.Order, actorID uint, source string) error {
	f.created = append(f.created, order)
	return nil
}

type fakeOfficerStore struct {
	updated []model.Officer
	log     *[]string
}

func (f *fakeOfficerStore) UpdatedSince(ctx context.Context, since time.Time) ([]model.Officer, error) {
	return f.updated, nil
}

func (f *fakeOfficerStore) PartialUpdate(ctx context.Context, id uint, fields map[string]interface{}, actorID uint, source string) (*model.Officer, error) {
	if f.log != nil {
		*f.log = append(*f.log, "officers")
	}
	return &model.Officer{ID: id}, nil
}

func (f *fakeOfficerStore) Create(ctx context.Context, officer *model.Officer, actorID uint, source string) error {
	return nil
}

func setupSyncTest(t *testing.T) (*service.SyncService, *fakeTaskStore, *fakeOrderStore, *fakeOfficerStore) {
	t.Helper()
	require.NoError(t, config.InitConfig())
	logger.InitLogger(t.TempDir())

	tasks := &fakeTaskStore{}
	orders := &fakeOrderStore{}
	officers := &fakeOfficerStore{}
	return service.NewSyncService(tasks, orders, officers), tasks, orders, officers
}

func TestSyncPullUsesClientWatermark(t *testing.T) {
	svc, tasks, orders, officers := setupSyncTest(t)

	watermark := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tasks.updated = []model.Task{{ID: 1}, {ID: 2}}
	orders.updated = []model.Order{{ID: 7}}
	officers.updated = []model.Officer{{ID: 3}}

	resp, err := svc.Pull(context.Background(), model.PullRequest{
		LastSync: watermark.Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, watermark, tasks.updatedSinceArg)
	assert.Len(t, resp.Updates.Tasks, 2)
	assert.Len(t, resp.Updates.Orders, 1)
	assert.Len(t, resp.Updates.Officers, 1)
	assert.WithinDuration(t, time.Now().UTC(), resp.LastSync, 5*time.Second)
}

func TestSyncPullFallsBackToDefaultWindow(t *testing.T) {
	svc, tasks, _, _ := setupSyncTest(t)

	_, err := svc.Pull(context.Background(), model.PullRequest{
		LastSync:    "not-a-timestamp",
		EntityTypes: []string{"tasks"},
	})
	require.NoError(t, err)

	expected := time.Now().UTC().Add(-config.GetDuration("sync.defaultWindow"))
	assert.WithinDuration(t, expected, tasks.updatedSinceArg, 5*time.Second)
}

func TestSyncPullRespectsRequestedTypes(t *testing.T) {
	svc, tasks, orders, _ := setupSyncTest(t)
	tasks.updated = []model.Task{{ID: 1}}
	orders.updated = []model.Order{{ID: 2}}

	resp, err := svc.Pull(context.Background(), model.PullRequest{
		EntityTypes: []string{"tasks"},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Updates.Tasks, 1)
	assert.Empty(t, resp.Updates.Orders)
	assert.Empty(t, resp.Updates.Officers)
}

func TestSyncPullRejectsUnknownEntityType(t *testing.T) {
	svc, _, _, _ := setupSyncTest(t)

	_, err := svc.Pull(context.Background(), model.PullRequest{
		EntityTypes: []string{"tasks", "missions"},
	})
	assert.ErrorIs(t, err, api_errors.ErrUnknownEntityType)
}

func TestSyncPushAppliesUpdatesAndCreates(t *testing.T) {
	svc, tasks, orders, _ := setupSyncTest(t)

	result, err := svc.Push(context.Background(), model.PushRequest{
		Changes: map[string][]map[string]interface{}{
			"tasks": {
				{"id": float64(5), "status": "completed"},
				{"title": "New task", "description": "created offline"},
			},
			"orders": {
				{"title": "New order"},
			},
		},
	}, 42)
	require.NoError(t, err)

	assert.Len(t, result.Success, 3)
	assert.Empty(t, result.Failed)
	assert.Equal(t, []uint{5}, tasks.partialCalls)
	require.Len(t, tasks.created, 1)
	assert.Equal(t, "New task", tasks.created[0].Title)
	require.Len(t, orders.created, 1)
}

func TestSyncPushIsolatesItemFailures(t *testing.T) {
	svc, tasks, _, _ := setupSyncTest(t)
	tasks.partialErr = api_errors.ErrTaskNotFound

	result, err := svc.Push(context.Background(), model.PushRequest{
		Changes: map[string][]map[string]interface{}{
			"tasks": {
				{"id": float64(99), "status": "completed"},
				{"title": "Still applied"},
			},
		},
	}, 42)
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "tasks", result.Failed[0].Type)
	assert.Equal(t, api_errors.ErrTaskNotFound.Error(), result.Failed[0].Error)

	// The failure of one item never blocks the rest of the batch.
	require.Len(t, result.Success, 1)
	require.Len(t, tasks.created, 1)
}

func TestSyncPushRejectsUnknownTypePerItem(t *testing.T) {
	svc, _, _, _ := setupSyncTest(t)

	result, err := svc.Push(context.Background(), model.PushRequest{
		Changes: map[string][]map[string]interface{}{
			"missions": {
				{"id": float64(1)},
				{"id": float64(2)},
			},
		},
	}, 42)
	require.NoError(t, err)

	assert.Empty(t, result.Success)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, api_errors.ErrUnknownEntityType.Error(), result.Failed[0].Error)
}

func TestSyncPushAppliesTypesInFixedOrder(t *testing.T) {
	svc, tasks, orders, officers := setupSyncTest(t)

	var calls []string
	tasks.log, orders.log, officers.log = &calls, &calls, &calls

	result, err := svc.Push(context.Background(), model.PushRequest{
		Changes: map[string][]map[string]interface{}{
			"officers": {{"id": float64(3), "status": "on_mission"}},
			"tasks":    {{"id": float64(1), "status": "completed"}},
			"orders":   {{"id": float64(2), "status": "acknowledged"}},
		},
	}, 42)
	require.NoError(t, err)

	assert.Len(t, result.Success, 3)
	assert.Equal(t, []string{"tasks", "orders", "officers"}, calls)
}
