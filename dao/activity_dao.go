// api/dao/activity_dao.go
package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/spop-ops/commander/api/model"
)

type ActivityDAO struct {
	db *gorm.DB
}

func NewActivityDAO(db *gorm.DB) *ActivityDAO {
	return &ActivityDAO{db: db}
}

func (d *ActivityDAO) Create(ctx context.Context, activity *model.Activity) error {
	return d.db.WithContext(ctx).Create(activity).Error
}

func (d *ActivityDAO) Recent(ctx context.Context, since time.Time, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := d.db.WithContext(ctx).
		Where("timestamp >= ?", since).
		Order("timestamp DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
