// api/service/task_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

// ITaskService defines the interface for task operations
type ITaskService interface {
	Create(ctx context.Context, task *model.Task, actorID uint) (*model.Task, error)
	Update(ctx context.Context, task *model.Task, actorID uint) (*model.Task, error)
	Delete(ctx context.Context, id, actorID uint) error
	Get(ctx context.Context, id uint) (*model.Task, error)
	List(ctx context.Context, filter dao.TaskFilter) ([]model.Task, error)
	Active(ctx context.Context) ([]model.Task, error)
	Available(ctx context.Context) ([]model.Task, error)
	UpdateStatus(ctx context.Context, id uint, status model.TaskStatus, actorID uint) (*model.Task, error)
}

type TaskService struct {
	taskDAO         *dao.TaskDAO
	officerDAO      *dao.OfficerDAO
	validationUtil  *util.ValidationUtil
	notificationSvc INotificationService
}

var _ ITaskService = &TaskService{}

func NewTaskService(taskDAO *dao.TaskDAO, officerDAO *dao.OfficerDAO, validationUtil *util.ValidationUtil, notificationSvc INotificationService) *TaskService {
	return &TaskService{
		taskDAO:         taskDAO,
		officerDAO:      officerDAO,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
	}
}

func (s *TaskService) Create(ctx context.Context, task *model.Task, actorID uint) (*model.Task, error) {
	if err := s.validationUtil.ValidateTask(task); err != nil {
		return nil, api_errors.ErrInvalidTaskData
	}
	if err := s.taskDAO.Create(ctx, task, actorID, "rest"); err != nil {
		return nil, err
	}
	s.notifyAssignment(ctx, task, true)
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, task *model.Task, actorID uint) (*model.Task, error) {
	if err := s.validationUtil.ValidateTask(task); err != nil {
		return nil, api_errors.ErrInvalidTaskData
	}
	existing, err := s.taskDAO.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	s.stampCompletion(task)
	if err := s.taskDAO.Update(ctx, task, actorID, "rest"); err != nil {
		return nil, err
	}
	if existing.AssignedToID != task.AssignedToID {
		s.notifyAssignment(ctx, task, false)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id, actorID uint) error {
	return s.taskDAO.Delete(ctx, id, actorID)
}

func (s *TaskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	return s.taskDAO.GetByID(ctx, id)
}

func (s *TaskService) List(ctx context.Context, filter dao.TaskFilter) ([]model.Task, error) {
	return s.taskDAO.List(ctx, filter)
}

func (s *TaskService) Active(ctx context.Context) ([]model.Task, error) {
	return s.taskDAO.List(ctx, dao.TaskFilter{Status: string(model.TaskInProgress)})
}

func (s *TaskService) Available(ctx context.Context) ([]model.Task, error) {
	return s.taskDAO.List(ctx, dao.TaskFilter{Status: string(model.TaskPending)})
}

func (s *TaskService) UpdateStatus(ctx context.Context, id uint, status model.TaskStatus, actorID uint) (*model.Task, error) {
	if !status.Valid() {
		return nil, api_errors.ErrInvalidTaskData
	}

	fields := map[string]interface{}{"status": status}
	if status == model.TaskCompleted {
		fields["completed_at"] = time.Now().UTC()
		fields["completion_rate"] = 100.0
	}
	return s.taskDAO.PartialUpdate(ctx, id, fields, actorID, "rest")
}

// stampCompletion keeps CompletedAt consistent with the status field.
func (s *TaskService) stampCompletion(task *model.Task) {
	if task.Status == model.TaskCompleted && task.CompletedAt == nil {
		now := time.Now().UTC()
		task.CompletedAt = &now
		task.CompletionRate = 100
	}
}

// notifyAssignment mints a notification for the assigned officer's user
// account. Lookup or delivery failures are logged, never propagated.
func (s *TaskService) notifyAssignment(ctx context.Context, task *model.Task, created bool) {
	if task.AssignedToID == 0 {
		return
	}
	officer, err := s.officerDAO.GetByID(ctx, task.AssignedToID)
	if err != nil {
		logger.Warn("Cannot resolve task assignee for notification",
			zap.Error(err), zap.Uint("taskID", task.ID))
		return
	}

	title := fmt.Sprintf("Task Reassigned: %s", task.Title)
	if created {
		title = fmt.Sprintf("New Task Assigned: %s", task.Title)
	}
	n := &model.Notification{
		RecipientID: officer.UserID,
		Type:        model.NotificationTask,
		Title:       title,
		Body:        task.Description,
		Related:     model.Ref{Kind: model.RefTask, ID: fmt.Sprint(task.ID)},
	}
	if task.Priority == model.TaskPriorityUrgent {
		n.Priority = 1
	}
	if err := s.notificationSvc.Notify(ctx, n); err != nil {
		logger.Warn("Failed to create task notification", zap.Error(err), zap.Uint("taskID", task.ID))
	}
}
