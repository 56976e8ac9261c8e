// api/service/weekly_plan_service.go
package service

import (
	"context"

	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

// IWeeklyPlanService defines the interface for weekly plan operations
type IWeeklyPlanService interface {
	Create(ctx context.Context, plan *model.WeeklyPlan, actorID uint) (*model.WeeklyPlan, error)
	Get(ctx context.Context, id uint) (*model.WeeklyPlan, error)
	GetActive(ctx context.Context, planType model.PlanType) (*model.WeeklyPlan, error)
	List(ctx context.Context, planType string) ([]model.WeeklyPlan, error)
	Delete(ctx context.Context, id, actorID uint) error
}

type WeeklyPlanService struct {
	planDAO        *dao.WeeklyPlanDAO
	validationUtil *util.ValidationUtil
}

var _ IWeeklyPlanService = &WeeklyPlanService{}

func NewWeeklyPlanService(planDAO *dao.WeeklyPlanDAO, validationUtil *util.ValidationUtil) *WeeklyPlanService {
	return &WeeklyPlanService{planDAO: planDAO, validationUtil: validationUtil}
}

func (s *WeeklyPlanService) Create(ctx context.Context, plan *model.WeeklyPlan, actorID uint) (*model.WeeklyPlan, error) {
	if err := s.validationUtil.ValidateWeeklyPlan(plan); err != nil {
		return nil, api_errors.ErrInvalidWeeklyPlanData
	}
	if err := s.planDAO.Create(ctx, plan, actorID); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *WeeklyPlanService) Get(ctx context.Context, id uint) (*model.WeeklyPlan, error) {
	return s.planDAO.GetByID(ctx, id)
}

func (s *WeeklyPlanService) GetActive(ctx context.Context, planType model.PlanType) (*model.WeeklyPlan, error) {
	if !planType.Valid() {
		return nil, api_errors.ErrInvalidWeeklyPlanData
	}
	return s.planDAO.GetActive(ctx, planType)
}

func (s *WeeklyPlanService) List(ctx context.Context, planType string) ([]model.WeeklyPlan, error) {
	if planType != "" && !model.PlanType(planType).Valid() {
		return nil, api_errors.ErrInvalidWeeklyPlanData
	}
	return s.planDAO.List(ctx, planType)
}

func (s *WeeklyPlanService) Delete(ctx context.Context, id, actorID uint) error {
	return s.planDAO.Delete(ctx, id, actorID)
}
