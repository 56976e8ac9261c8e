// api/util/change_notifier.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
)

// ActivityStore persists dashboard feed rows.
type ActivityStore interface {
	Create(ctx context.Context, activity *model.Activity) error
}

// SummaryCache drops the cached dashboard summary when the data under it
// changes. Satisfied by CacheService.
type SummaryCache interface {
	InvalidateDashboardSummary(ctx context.Context) error
}

// ChangeNotifier sits on the store's write path. After an entity write
// completes it synchronously persists an Activity row, drops the stale
// summary cache and hands the same event to the real-time fan-out through
// the event bus. It is side effect only: failures are logged and never
// returned to the triggering write.
type ChangeNotifier struct {
	activities ActivityStore
	cache      SummaryCache
	eventBus   *EventBus
}

func NewChangeNotifier(activities ActivityStore, cache SummaryCache, eventBus *EventBus) *ChangeNotifier {
	return &ChangeNotifier{activities: activities, cache: cache, eventBus: eventBus}
}

// DashboardEvent is the payload forwarded to the dashboard_updates group.
type DashboardEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NotificationEvent is addressed to a single recipient's user group.
type NotificationEvent struct {
	RecipientID  uint
	Notification *model.Notification
}

func (n *ChangeNotifier) TaskChanged(ctx context.Context, task *model.Task, created bool, actorID uint) {
	title := fmt.Sprintf("Task Updated: %s", task.Title)
	if created {
		title = fmt.Sprintf("New Task Created: %s", task.Title)
	}

	activity := model.Activity{
		ActivityType:     model.ActivityTask,
		Title:            title,
		Description:      task.Description,
		ActorID:          nonZero(actorID),
		RelatedOfficerID: nonZero(task.AssignedToID),
		Status:           string(task.Status),
		Metadata: model.JSONMap{
			"task_id":  task.ID,
			"priority": task.Priority,
			"due_date": task.DueDate,
		},
	}
	n.record(ctx, activity, "task_update", task)
}

func (n *ChangeNotifier) OfficerChanged(ctx context.Context, officer *model.Officer, created bool) {
	// Officer activity is recorded only on update, not creation.
	if created {
		return
	}

	activity := model.Activity{
		ActivityType:     model.ActivityOfficer,
		Title:            fmt.Sprintf("Officer Status Update: %s", officer.Name),
		Description:      fmt.Sprintf("Status changed to %s", officer.Status),
		RelatedOfficerID: nonZero(officer.ID),
		Status:           string(officer.Status),
	}
	n.record(ctx, activity, "officer_update", officer)
}

func (n *ChangeNotifier) OrderChanged(ctx context.Context, order *model.Order, created bool, actorID uint) {
	title := fmt.Sprintf("Order Updated: %s", order.Title)
	if created {
		title = fmt.Sprintf("New Order Created: %s", order.Title)
	}

	activity := model.Activity{
		ActivityType:     model.ActivityOrder,
		Title:            title,
		Description:      order.Description,
		ActorID:          nonZero(actorID),
		RelatedOfficerID: nonZero(order.AssignedToID),
		Status:           string(order.Status),
		Metadata: model.JSONMap{
			"order_id": order.ID,
			"priority": order.Priority,
		},
	}
	n.record(ctx, activity, "order_update", order)
}

// NotificationCreated forwards a freshly minted notification to its
// recipient's connection group.
func (n *ChangeNotifier) NotificationCreated(ctx context.Context, notification *model.Notification) {
	n.eventBus.Publish(ctx, EventNotificationCreated, NotificationEvent{
		RecipientID:  notification.RecipientID,
		Notification: notification,
	})
}

func (n *ChangeNotifier) record(ctx context.Context, activity model.Activity, updateType string, entity interface{}) {
	if err := n.activities.Create(ctx, &activity); err != nil {
		logger.Error("Failed to persist activity",
			zap.Error(err),
			zap.String("activityType", string(activity.ActivityType)),
			zap.String("title", activity.Title))
		// Delivery failure must not fail the triggering write.
	}

	// The next summary read rebuilds from the store instead of waiting out
	// the cache TTL.
	if err := n.cache.InvalidateDashboardSummary(ctx); err != nil {
		logger.Warn("Failed to invalidate dashboard summary cache", zap.Error(err))
	}

	n.eventBus.Publish(ctx, EventDashboardUpdate, DashboardEvent{
		Type: updateType,
		Data: entity,
	})
}

func nonZero(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
