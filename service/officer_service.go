// api/service/officer_service.go
package service

import (
	"context"
	"time"

	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

// OfficerStatistics is the aggregate returned by GET /officers/statistics.
type OfficerStatistics struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	OnMission int64 `json:"on_mission"`
	OnLeave   int64 `json:"on_leave"`
}

// OfficerPerformance summarizes one officer's completion behavior over a
// trailing window.
type OfficerPerformance struct {
	OfficerID           uint    `json:"officer_id"`
	PeriodDays          int     `json:"period_days"`
	TasksAssigned       int     `json:"tasks_assigned"`
	TasksCompleted      int     `json:"tasks_completed"`
	CompletionRate      float64 `json:"completion_rate"`
	AvgResponseTimeSecs float64 `json:"avg_response_time_secs"`
}

// IOfficerService defines the interface for officer operations
type IOfficerService interface {
	Create(ctx context.Context, officer *model.Officer, actorID uint) (*model.Officer, error)
	Update(ctx context.Context, officer *model.Officer, actorID uint) (*model.Officer, error)
	Delete(ctx context.Context, id, actorID uint) error
	Get(ctx context.Context, id uint) (*model.Officer, error)
	List(ctx context.Context, filter dao.OfficerFilter) ([]model.Officer, error)
	Available(ctx context.Context) ([]model.Officer, error)
	Statistics(ctx context.Context) (*OfficerStatistics, error)
	UpdateStatus(ctx context.Context, id uint, status model.OfficerStatus, actorID uint) (*model.Officer, error)
	Tasks(ctx context.Context, officerID uint, status string) ([]model.Task, error)
	Performance(ctx context.Context, officerID uint, periodDays int) (*OfficerPerformance, error)
}

type OfficerService struct {
	officerDAO     *dao.OfficerDAO
	taskDAO        *dao.TaskDAO
	validationUtil *util.ValidationUtil
}

var _ IOfficerService = &OfficerService{}

func NewOfficerService(officerDAO *dao.OfficerDAO, taskDAO *dao.TaskDAO, validationUtil *util.ValidationUtil) *OfficerService {
	return &OfficerService{
		officerDAO:     officerDAO,
		taskDAO:        taskDAO,
		validationUtil: validationUtil,
	}
}

func (s *OfficerService) Create(ctx context.Context, officer *model.Officer, actorID uint) (*model.Officer, error) {
	if err := s.validationUtil.ValidateOfficer(officer); err != nil {
		return nil, api_errors.ErrInvalidOfficerData
	}
	if err := s.officerDAO.Create(ctx, officer, actorID, "rest"); err != nil {
		return nil, err
	}
	return officer, nil
}

func (s *OfficerService) Update(ctx context.Context, officer *model.Officer, actorID uint) (*model.Officer, error) {
	if err := s.validationUtil.ValidateOfficer(officer); err != nil {
		return nil, api_errors.ErrInvalidOfficerData
	}
	if _, err := s.officerDAO.GetByID(ctx, officer.ID); err != nil {
		return nil, err
	}
	if err := s.officerDAO.Update(ctx, officer, actorID, "rest"); err != nil {
		return nil, err
	}
	return officer, nil
}

// Delete refuses while the officer still carries non-terminal tasks.
func (s *OfficerService) Delete(ctx context.Context, id, actorID uint) error {
	open, err := s.officerDAO.HasOpenTasks(ctx, id)
	if err != nil {
		return err
	}
	if open {
		return api_errors.ErrOfficerHasOpenTasks
	}
	return s.officerDAO.Delete(ctx, id, actorID)
}

func (s *OfficerService) Get(ctx context.Context, id uint) (*model.Officer, error) {
	return s.officerDAO.GetByID(ctx, id)
}

func (s *OfficerService) List(ctx context.Context, filter dao.OfficerFilter) ([]model.Officer, error) {
	return s.officerDAO.List(ctx, filter)
}

func (s *OfficerService) Available(ctx context.Context) ([]model.Officer, error) {
	return s.officerDAO.List(ctx, dao.OfficerFilter{Status: string(model.OfficerAvailable)})
}

func (s *OfficerService) Statistics(ctx context.Context) (*OfficerStatistics, error) {
	stats := &OfficerStatistics{}
	var err error
	if stats.Total, err = s.officerDAO.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Available, err = s.officerDAO.CountByStatus(ctx, model.OfficerAvailable); err != nil {
		return nil, err
	}
	if stats.OnMission, err = s.officerDAO.CountByStatus(ctx, model.OfficerOnMission); err != nil {
		return nil, err
	}
	if stats.OnLeave, err = s.officerDAO.CountByStatus(ctx, model.OfficerOnLeave); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *OfficerService) UpdateStatus(ctx context.Context, id uint, status model.OfficerStatus, actorID uint) (*model.Officer, error) {
	if !status.Valid() {
		return nil, api_errors.ErrInvalidOfficerData
	}
	return s.officerDAO.PartialUpdate(ctx, id, map[string]interface{}{"status": status}, actorID, "rest")
}

func (s *OfficerService) Tasks(ctx context.Context, officerID uint, status string) ([]model.Task, error) {
	if _, err := s.officerDAO.GetByID(ctx, officerID); err != nil {
		return nil, err
	}
	return s.taskDAO.ListByOfficer(ctx, officerID, status)
}

// Performance computes completion rate and average response time (assignment
// to completion) over the trailing period.
func (s *OfficerService) Performance(ctx context.Context, officerID uint, periodDays int) (*OfficerPerformance, error) {
	if periodDays <= 0 || periodDays > 365 {
		return nil, api_errors.ErrInvalidOfficerData
	}
	if _, err := s.officerDAO.GetByID(ctx, officerID); err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -periodDays)
	tasks, err := s.taskDAO.ListByOfficer(ctx, officerID, "")
	if err != nil {
		return nil, err
	}

	perf := &OfficerPerformance{OfficerID: officerID, PeriodDays: periodDays}
	var responseTotal time.Duration
	for i := range tasks {
		t := &tasks[i]
		if t.CreatedAt.Before(since) {
			continue
		}
		perf.TasksAssigned++
		if t.Status == model.TaskCompleted && t.CompletedAt != nil {
			perf.TasksCompleted++
			responseTotal += t.CompletedAt.Sub(t.CreatedAt)
		}
	}
	if perf.TasksAssigned > 0 {
		perf.CompletionRate = float64(perf.TasksCompleted) / float64(perf.TasksAssigned) * 100
	}
	if perf.TasksCompleted > 0 {
		perf.AvgResponseTimeSecs = responseTotal.Seconds() / float64(perf.TasksCompleted)
	}
	return perf, nil
}
