// api/dao/order_dao.go
package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/spop-ops/commander/api/audit"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

type OrderFilter struct {
	Status   string
	Priority string
	IsUrgent *bool
	// AssignedToUserID restricts to orders assigned to the officer profile
	// of this user; zero means no restriction (commander view).
	AssignedToUserID uint
}

type OrderDAO struct {
	db       *gorm.DB
	auditSvc audit.Service
	notifier *util.ChangeNotifier
}

func NewOrderDAO(db *gorm.DB, auditSvc audit.Service, notifier *util.ChangeNotifier) *OrderDAO {
	return &OrderDAO{db: db, auditSvc: auditSvc, notifier: notifier}
}

func (d *OrderDAO) Create(ctx context.Context, order *model.Order, actorID uint, source string) error {
	if err := d.db.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "create", "orders", order.ID, source)
	d.notifier.OrderChanged(ctx, order, true, actorID)
	return nil
}

func (d *OrderDAO) Update(ctx context.Context, order *model.Order, actorID uint, source string) error {
	if err := d.db.WithContext(ctx).Save(order).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "update", "orders", order.ID, source)
	d.notifier.OrderChanged(ctx, order, false, actorID)
	return nil
}

func (d *OrderDAO) PartialUpdate(ctx context.Context, id uint, fields map[string]interface{}, actorID uint, source string) (*model.Order, error) {
	res := d.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, api_errors.ErrOrderNotFound
	}

	order, err := d.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "update", "orders", id, source)
	d.notifier.OrderChanged(ctx, order, false, actorID)
	return order, nil
}

func (d *OrderDAO) Delete(ctx context.Context, id uint, actorID uint) error {
	res := d.db.WithContext(ctx).Delete(&model.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return api_errors.ErrOrderNotFound
	}
	d.auditSvc.RecordMutation(ctx, actorID, "delete", "orders", id, "rest")
	return nil
}

func (d *OrderDAO) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := d.db.WithContext(ctx).Preload("AssignedTo").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, api_errors.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *OrderDAO) List(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	query := d.db.WithContext(ctx).Model(&model.Order{}).Preload("AssignedTo").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.IsUrgent != nil {
		query = query.Where("is_urgent = ?", *filter.IsUrgent)
	}
	if filter.AssignedToUserID != 0 {
		query = query.Joins("JOIN officers ON officers.id = orders.assigned_to_id").
			Where("officers.user_id = ?", filter.AssignedToUserID)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (d *OrderDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (d *OrderDAO) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (d *OrderDAO) CountByPriority(ctx context.Context, priority model.OrderPriority) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Order{}).Where("priority = ?", priority).Count(&count).Error
	return count, err
}

func (d *OrderDAO) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Order{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (d *OrderDAO) UpdatedSince(ctx context.Context, since time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := d.db.WithContext(ctx).Where("updated_at > ?", since).Find(&orders).Error
	return orders, err
}

func (d *OrderDAO) CreateAcknowledgment(ctx context.Context, ack *model.OrderAcknowledgment) error {
	return d.db.WithContext(ctx).Create(ack).Error
}
