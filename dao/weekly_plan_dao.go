// api/dao/weekly_plan_dao.go
package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/spop-ops/commander/api/audit"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
)

type WeeklyPlanDAO struct {
	db       *gorm.DB
	auditSvc audit.Service
}

func NewWeeklyPlanDAO(db *gorm.DB, auditSvc audit.Service) *WeeklyPlanDAO {
	return &WeeklyPlanDAO{db: db, auditSvc: auditSvc}
}

// Create deactivates the previous active plan of the same type inside one
// transaction, so at most one plan per type is ever active.
func (d *WeeklyPlanDAO) Create(ctx context.Context, plan *model.WeeklyPlan, actorID uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.WeeklyPlan{}).
			Where("plan_type = ? AND is_active = ?", plan.PlanType, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		plan.IsActive = true
		return tx.Create(plan).Error
	})
	if err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "create", "weeklyplans", plan.ID, "rest")
	return nil
}

func (d *WeeklyPlanDAO) GetByID(ctx context.Context, id uint) (*model.WeeklyPlan, error) {
	var plan model.WeeklyPlan
	err := d.db.WithContext(ctx).First(&plan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, api_errors.ErrWeeklyPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetActive returns the single active plan for a type, or ErrWeeklyPlanNotFound.
func (d *WeeklyPlanDAO) GetActive(ctx context.Context, planType model.PlanType) (*model.WeeklyPlan, error) {
	var plan model.WeeklyPlan
	err := d.db.WithContext(ctx).
		Where("plan_type = ? AND is_active = ?", planType, true).
		Order("created_at DESC").
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, api_errors.ErrWeeklyPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (d *WeeklyPlanDAO) List(ctx context.Context, planType string) ([]model.WeeklyPlan, error) {
	query := d.db.WithContext(ctx).Model(&model.WeeklyPlan{}).Order("created_at DESC")
	if planType != "" {
		query = query.Where("plan_type = ?", planType)
	}
	var plans []model.WeeklyPlan
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (d *WeeklyPlanDAO) Delete(ctx context.Context, id uint, actorID uint) error {
	res := d.db.WithContext(ctx).Delete(&model.WeeklyPlan{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return api_errors.ErrWeeklyPlanNotFound
	}
	d.auditSvc.RecordMutation(ctx, actorID, "delete", "weeklyplans", id, "rest")
	return nil
}
