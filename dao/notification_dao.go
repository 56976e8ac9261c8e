// api/dao/notification_dao.go
package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
)

type NotificationFilter struct {
	Type     string
	IsRead   *bool
	Priority *int
	Limit    int
	Offset   int
}

type NotificationDAO struct {
	db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{db: db}
}

func (d *NotificationDAO) Create(ctx context.Context, n *model.Notification) error {
	return d.db.WithContext(ctx).Create(n).Error
}

// GetForRecipient scopes the lookup to the recipient, so one user can never
// read or mutate another user's notifications.
func (d *NotificationDAO) GetForRecipient(ctx context.Context, id, recipientID uint) (*model.Notification, error) {
	var n model.Notification
	err := d.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, api_errors.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (d *NotificationDAO) ListForRecipient(ctx context.Context, recipientID uint, filter NotificationFilter) ([]model.Notification, error) {
	query := d.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC")

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsRead != nil {
		if *filter.IsRead {
			query = query.Where("read_at IS NOT NULL")
		} else {
			query = query.Where("read_at IS NULL")
		}
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var notifications []model.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (d *NotificationDAO) Save(ctx context.Context, n *model.Notification) error {
	return d.db.WithContext(ctx).Save(n).Error
}

func (d *NotificationDAO) Delete(ctx context.Context, id, recipientID uint) error {
	res := d.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&model.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return api_errors.ErrNotificationNotFound
	}
	return nil
}

func (d *NotificationDAO) MarkAllRead(ctx context.Context, recipientID uint, now time.Time) error {
	return d.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Update("read_at", now).Error
}

func (d *NotificationDAO) ClearAll(ctx context.Context, recipientID uint) error {
	return d.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Delete(&model.Notification{}).Error
}

func (d *NotificationDAO) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Count(&count).Error
	return count, err
}
