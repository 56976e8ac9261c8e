// api/service/dashboard_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spop-ops/commander/api/dao"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

const (
	activityWindowDays    = 7
	activityFeedSize      = 10
	performanceWindowDays = 30
)

// IDashboardService defines the interface for dashboard aggregation
type IDashboardService interface {
	Summary(ctx context.Context) (*model.DashboardSummary, error)
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type DashboardService struct {
	officerDAO   *dao.OfficerDAO
	taskDAO      *dao.TaskDAO
	orderDAO     *dao.OrderDAO
	activityDAO  *dao.ActivityDAO
	cacheService *util.CacheService
}

var _ IDashboardService = &DashboardService{}

func NewDashboardService(officerDAO *dao.OfficerDAO, taskDAO *dao.TaskDAO, orderDAO *dao.OrderDAO, activityDAO *dao.ActivityDAO, cacheService *util.CacheService) *DashboardService {
	return &DashboardService{
		officerDAO:   officerDAO,
		taskDAO:      taskDAO,
		orderDAO:     orderDAO,
		activityDAO:  activityDAO,
		cacheService: cacheService,
	}
}

// Summary builds the aggregate dashboard payload. The result is cached in
// Redis with a short TTL; cache failures fall through to a fresh build.
func (s *DashboardService) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	if cached, err := s.cacheService.GetDashboardSummary(ctx); err == nil && cached != nil {
		return cached, nil
	}

	now := time.Now().UTC()
	summary := &model.DashboardSummary{LastUpdated: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.officerStats(gctx)
		if err == nil {
			summary.Officers = *stats
		}
		return err
	})
	g.Go(func() error {
		stats, err := s.taskStats(gctx, now)
		if err == nil {
			summary.Tasks = *stats
		}
		return err
	})
	g.Go(func() error {
		stats, err := s.orderStats(gctx, now)
		if err == nil {
			summary.Orders = *stats
		}
		return err
	})
	g.Go(func() error {
		// The feed reads the Activity rows the change notifier writes on
		// every tracked entity mutation.
		activities, err := s.activityDAO.Recent(gctx, now.AddDate(0, 0, -activityWindowDays), activityFeedSize)
		if err == nil {
			summary.RecentActivities = activities
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics, err := s.performanceMetrics(ctx, now, summary.Officers.Total)
	if err != nil {
		return nil, err
	}
	summary.PerformanceMetrics = *metrics

	if err := s.cacheService.SetDashboardSummary(ctx, summary); err != nil {
		logger.Warn("Failed to cache dashboard summary", zap.Error(err))
	}
	return summary, nil
}

// Stats is the compact counter set pushed over the WebSocket.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalOfficers, err = s.officerDAO.Count(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.AvailableOfficers, err = s.officerDAO.CountByStatus(gctx, model.OfficerAvailable)
		return
	})
	g.Go(func() (err error) {
		stats.PendingTasks, err = s.taskDAO.CountByStatus(gctx, model.TaskPending)
		return
	})
	g.Go(func() (err error) {
		stats.UrgentOrders, err = s.orderDAO.CountByPriority(gctx, model.OrderPriorityUrgent)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *DashboardService) officerStats(ctx context.Context) (*model.OfficerStats, error) {
	stats := &model.OfficerStats{}
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

func (s *DashboardService) taskStats(ctx context.Context, now time.Time) (*model.TaskStats, error) {
	stats := &model.TaskStats{}
	var err error
	if stats.Total, err = s.taskDAO.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Pending, err = s.taskDAO.CountByStatus(ctx, model.TaskPending); err != nil {
		return nil, err
	}
	if stats.InProgress, err = s.taskDAO.CountByStatus(ctx, model.TaskInProgress); err != nil {
		return nil, err
	}
	if stats.Completed, err = s.taskDAO.CountByStatus(ctx, model.TaskCompleted); err != nil {
		return nil, err
	}
	if stats.Overdue, err = s.taskDAO.CountOverdue(ctx, now); err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats, nil
}

func (s *DashboardService) orderStats(ctx context.Context, now time.Time) (*model.OrderStats, error) {
	stats := &model.OrderStats{}
	var err error
	if stats.Total, err = s.orderDAO.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Urgent, err = s.orderDAO.CountByPriority(ctx, model.OrderPriorityUrgent); err != nil {
		return nil, err
	}
	if stats.Pending, err = s.orderDAO.CountByStatus(ctx, model.OrderPending); err != nil {
		return nil, err
	}
	if stats.Recent, err = s.orderDAO.CountCreatedSince(ctx, now.AddDate(0, 0, -activityWindowDays)); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *DashboardService) performanceMetrics(ctx context.Context, now time.Time, totalOfficers int64) (*model.PerformanceMetrics, error) {
	since := now.AddDate(0, 0, -performanceWindowDays)
	metrics := &model.PerformanceMetrics{}

	completed, err := s.taskDAO.CountCompletedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	metrics.TotalCompleted = completed

	tasks, err := s.taskDAO.RecentlyUpdated(ctx, since, 0)
	if err != nil {
		return nil, err
	}

	perOfficer := make(map[uint]int64)
	var responseTotal time.Duration
	var responseCount int64
	for i := range tasks {
		t := &tasks[i]
		if t.Status != model.TaskCompleted || t.CompletedAt == nil {
			continue
		}
		perOfficer[t.AssignedToID]++
		if perOfficer[t.AssignedToID] > metrics.MaxTasksCompleted {
			metrics.MaxTasksCompleted = perOfficer[t.AssignedToID]
		}
		if !t.CompletedAt.After(t.DueDate) {
			metrics.OnTimeCompletion++
		}
		responseTotal += t.CompletedAt.Sub(t.CreatedAt)
		responseCount++
	}
	if totalOfficers > 0 {
		metrics.AvgTasksPerOfficer = float64(completed) / float64(totalOfficers)
	}
	if responseCount > 0 {
		metrics.AvgResponseTimeSecs = responseTotal.Seconds() / float64(responseCount)
	}
	return metrics, nil
}
