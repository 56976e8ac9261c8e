// api/service/realtime_source.go
package service

import (
	"context"

	"github.com/spop-ops/commander/api/dao"
	"github.com/spop-ops/commander/api/model"
)

// RealtimeSource bundles the snapshot and mark-read operations that live
// WebSocket connections request in-band.
type RealtimeSource struct {
	services *Services
}

func NewRealtimeSource(services *Services) *RealtimeSource {
	return &RealtimeSource{services: services}
}

func (r *RealtimeSource) Stats(ctx context.Context) (*model.DashboardStats, error) {
	return r.services.Dashboard.Stats(ctx)
}

func (r *RealtimeSource) Officers(ctx context.Context) ([]model.Officer, error) {
	return r.services.Officer.List(ctx, dao.OfficerFilter{})
}

func (r *RealtimeSource) Tasks(ctx context.Context) ([]model.Task, error) {
	return r.services.Task.List(ctx, dao.TaskFilter{})
}

func (r *RealtimeSource) Orders(ctx context.Context) ([]model.Order, error) {
	return r.services.Order.List(ctx, dao.OrderFilter{})
}

func (r *RealtimeSource) MarkNotificationRead(ctx context.Context, notificationID, recipientID uint) error {
	return r.services.Notification.MarkRead(ctx, notificationID, recipientID)
}
