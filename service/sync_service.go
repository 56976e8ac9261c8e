// api/service/sync_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spop-ops/commander/api/config"
	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	helper_util "github.com/spop-ops/commander/api/util/helper"
)

// ISyncService defines the interface for offline sync operations
type ISyncService interface {
	Pull(ctx context.Context, req model.PullRequest) (*model.PullResponse, error)
	Push(ctx context.Context, req model.PushRequest, actorID uint) (*model.PushResult, error)
}

// TaskSyncStore is the slice of the task DAO the gateway needs.
type TaskSyncStore interface {
	UpdatedSince(ctx context.Context, since time.Time) ([]model.Task, error)
	PartialUpdate(ctx context.Context, id uint, fields map[string]interface{}, actorID uint, source string) (*model.Task, error)
	Create(ctx context.Context, task *model.Task, actorID uint, source string) error
}

type OrderSyncStore interface {
	UpdatedSince(ctx context.Context, since time.Time) ([]model.Order, error)
	PartialUpdate(ctx context.Context, id uint, fields map[string]interface{}, actorID uint, source string) (*model.Order, error)
	Create(ctx context.Context, order *model.Order, actorID uint, source string) error
}

type OfficerSyncStore interface {
	UpdatedSince(ctx context.Context, since time.Time) ([]model.Officer, error)
	PartialUpdate(ctx context.Context, id uint, fields map[string]interface{}, actorID uint, source string) (*model.Officer, error)
	Create(ctx context.Context, officer *model.Officer, actorID uint, source string) error
}

var (
	_ TaskSyncStore    = &dao.TaskDAO{}
	_ OrderSyncStore   = &dao.OrderDAO{}
	_ OfficerSyncStore = &dao.OfficerDAO{}
)

// SyncService is the offline synchronization gateway. Pull hands back full
// state for everything updated after the client's watermark; Push applies
// client changes one item at a time, last write wins.
type SyncService struct {
	tasks    TaskSyncStore
	orders   OrderSyncStore
	officers OfficerSyncStore
}

var _ ISyncService = &SyncService{}

func NewSyncService(tasks TaskSyncStore, orders OrderSyncStore, officers OfficerSyncStore) *SyncService {
	return &SyncService{tasks: tasks, orders: orders, officers: officers}
}

// Pull resolves the watermark and collects per-type updates. An absent or
// malformed last_sync falls back to a trailing default window rather than
// failing the request. An empty entity_types list means all types.
func (s *SyncService) Pull(ctx context.Context, req model.PullRequest) (*model.PullResponse, error) {
	now := time.Now().UTC()
	since := now.Add(-config.GetDuration("sync.defaultWindow"))
	if req.LastSync != "" {
		if parsed, err := helper_util.ParseTime(req.LastSync); err == nil {
			since = parsed
		} else {
			logger.Warn("Unparseable last_sync, using default window",
				zap.String("lastSync", req.LastSync))
		}
	}

	types := req.EntityTypes
	if len(types) == 0 {
		types = []string{string(model.EntityTasks), string(model.EntityOrders), string(model.EntityOfficers)}
	}

	resp := &model.PullResponse{
		LastSync: now,
		Updates: model.PullUpdates{
			Tasks:    []model.Task{},
			Orders:   []model.Order{},
			Officers: []model.Officer{},
		},
	}

	for _, raw := range types {
		entityType := model.EntityType(raw)
		if !entityType.Valid() {
			return nil, api_errors.ErrUnknownEntityType
		}

		var err error
		switch entityType {
		case model.EntityTasks:
			resp.Updates.Tasks, err = s.tasks.UpdatedSince(ctx, since)
		case model.EntityOrders:
			resp.Updates.Orders, err = s.orders.UpdatedSince(ctx, since)
		case model.EntityOfficers:
			resp.Updates.Officers, err = s.officers.UpdatedSince(ctx, since)
		}
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// pushOrder fixes the cross-type application order so a batch touching
// several entity types replays the same way every time.
var pushOrder = []model.EntityType{model.EntityTasks, model.EntityOrders, model.EntityOfficers}

// Push applies changes type by type in a fixed order, items within a type in
// request order. Each item succeeds or fails on its own; a failure is
// recorded and the loop continues. There is no batch transaction.
func (s *SyncService) Push(ctx context.Context, req model.PushRequest, actorID uint) (*model.PushResult, error) {
	result := &model.PushResult{
		Success: []model.PushItem{},
		Failed:  []model.PushItem{},
	}

	for _, entityType := range pushOrder {
		raw := string(entityType)
		for _, item := range req.Changes[raw] {
			id, hasID := itemID(item)
			err := s.apply(ctx, entityType, id, hasID, item, actorID)
			if err != nil {
				logger.Warn("Sync push item failed",
					zap.String("entityType", raw),
					zap.Uint("id", id),
					zap.Error(err))
				result.Failed = append(result.Failed, model.PushItem{
					Type:  raw,
					ID:    item["id"],
					Error: err.Error(),
				})
				continue
			}
			result.Success = append(result.Success, model.PushItem{Type: raw, ID: item["id"]})
		}
	}

	unknown := make([]string, 0)
	for raw := range req.Changes {
		if !model.EntityType(raw).Valid() {
			unknown = append(unknown, raw)
		}
	}
	sort.Strings(unknown)
	for _, raw := range unknown {
		for range req.Changes[raw] {
			result.Failed = append(result.Failed, model.PushItem{
				Type:  raw,
				Error: api_errors.ErrUnknownEntityType.Error(),
			})
		}
	}
	return result, nil
}

func (s *SyncService) apply(ctx context.Context, entityType model.EntityType, id uint, hasID bool, item map[string]interface{}, actorID uint) error {
	if hasID {
		fields := make(map[string]interface{}, len(item))
		for k, v := range item {
			if k == "id" {
				continue
			}
			if timestampFields[k] {
				parsed, err := helper_util.ParseNullableTime(v)
				if err != nil {
					return fmt.Errorf("field %q: %w", k, err)
				}
				fields[k] = parsed
				continue
			}
			fields[k] = v
		}

		var err error
		switch entityType {
		case model.EntityTasks:
			_, err = s.tasks.PartialUpdate(ctx, id, fields, actorID, "sync")
		case model.EntityOrders:
			_, err = s.orders.PartialUpdate(ctx, id, fields, actorID, "sync")
		case model.EntityOfficers:
			_, err = s.officers.PartialUpdate(ctx, id, fields, actorID, "sync")
		}
		return err
	}

	// No id: decode through JSON so the payload gets the same field names
	// and type coercion as the REST surface.
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	switch entityType {
	case model.EntityTasks:
		var task model.Task
		if err := json.Unmarshal(data, &task); err != nil {
			return err
		}
		return s.tasks.Create(ctx, &task, actorID, "sync")
	case model.EntityOrders:
		var order model.Order
		if err := json.Unmarshal(data, &order); err != nil {
			return err
		}
		return s.orders.Create(ctx, &order, actorID, "sync")
	case model.EntityOfficers:
		var officer model.Officer
		if err := json.Unmarshal(data, &officer); err != nil {
			return err
		}
		return s.officers.Create(ctx, &officer, actorID, "sync")
	}
	return fmt.Errorf("unhandled entity type %q", entityType)
}

// timestampFields are update keys whose JSON values arrive as RFC3339
// strings but map to nullable time columns.
var timestampFields = map[string]bool{
	"due_date":        true,
	"completed_at":    true,
	"acknowledged_at": true,
	"last_seen":       true,
}

// itemID extracts a usable primary key from the raw payload. JSON numbers
// arrive as float64.
func itemID(item map[string]interface{}) (uint, bool) {
	raw, ok := item["id"]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		if v <= 0 {
			return 0, false
		}
		return uint(v), true
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil || n <= 0 {
			return 0, false
		}
		return uint(n), true
	default:
		return 0, false
	}
}
