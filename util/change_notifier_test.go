// api/util/change_notifier_test.go
package util

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
)

type fakeActivityStore struct {
	created   []*model.Activity
	createErr error
}

func (f *fakeActivityStore) Create(ctx context.Context, activity *model.Activity) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, activity)
	return nil
}

type fakeSummaryCache struct {
	invalidations atomic.Int32
}

func (f *fakeSummaryCache) InvalidateDashboardSummary(ctx context.Context) error {
	f.invalidations.Add(1)
	return nil
}

func setupNotifierTest(t *testing.T) (*ChangeNotifier, *fakeActivityStore, *fakeSummaryCache, *atomic.Int32) {
	t.Helper()
	logger.InitLogger(t.TempDir())

	bus := NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	bus.Start(ctx)

	var dashboardEvents atomic.Int32
	bus.Subscribe(EventDashboardUpdate, func(ctx context.Context, event Event) error {
		dashboardEvents.Add(1)
		return nil
	})

	store := &fakeActivityStore{}
	cache := &fakeSummaryCache{}
	return NewChangeNotifier(store, cache, bus), store, cache, &dashboardEvents
}

func TestTaskChangePersistsActivityAndInvalidatesSummary(t *testing.T) {
	notifier, store, cache, dashboardEvents := setupNotifierTest(t)

	notifier.TaskChanged(context.Background(), &model.Task{ID: 4, Title: "Patrol sector 4"}, true, 9)

	require.Len(t, store.created, 1)
	assert.Equal(t, model.ActivityTask, store.created[0].ActivityType)
	assert.Contains(t, store.created[0].Title, "Patrol sector 4")
	assert.Equal(t, int32(1), cache.invalidations.Load())

	require.Eventually(t, func() bool {
		return dashboardEvents.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestOfficerCreationIsNotRecorded(t *testing.T) {
	notifier, store, cache, _ := setupNotifierTest(t)

	notifier.OfficerChanged(context.Background(), &model.Officer{ID: 2, Name: "Lt. Omar"}, true)

	assert.Empty(t, store.created)
	assert.Equal(t, int32(0), cache.invalidations.Load())
}

// A persistence failure is logged only; the cache drop and the real-time
// fan-out still happen.
func TestActivityStoreFailureDoesNotBlockFanOut(t *testing.T) {
	notifier, store, cache, dashboardEvents := setupNotifierTest(t)
	store.createErr = errors.New("insert failed")

	notifier.OrderChanged(context.Background(), &model.Order{ID: 8, Title: "Hold position"}, false, 9)

	assert.Equal(t, int32(1), cache.invalidations.Load())
	require.Eventually(t, func() bool {
		return dashboardEvents.Load() == 1
	}, time.Second, 10*time.Millisecond)
}
