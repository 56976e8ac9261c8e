// api/dao/task_dao.go
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

type TaskFilter struct {
	Status    string
	Priority  string
	OfficerID uint
}

type TaskDAO struct {
	db       *gorm.DB
	auditSvc audit.Service
	notifier *util.ChangeNotifier
}

func NewTaskDAO(db *gorm.DB, auditSvc audit.Service, notifier *util.ChangeNotifier) *TaskDAO {
	return &TaskDAO{db: db, auditSvc: auditSvc, notifier: notifier}
}

func (d *TaskDAO) Create(ctx context.Context, task *model.Task, actorID uint, source string) error {
	if err := d.db.WithContext(ctx).Create(task).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "create", "tasks", task.ID, source)
	d.notifier.TaskChanged(ctx, task, true, actorID)
	return nil
}

func (d *TaskDAO) Update(ctx context.Context, task *model.Task, actorID uint, source string) error {
	if err := d.db.WithContext(ctx).Save(task).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "update", "tasks", task.ID, source)
	d.notifier.TaskChanged(ctx, task, false, actorID)
	return nil
}

func (d *TaskDAO) PartialUpdate(ctx context.Context, id uint, fields map[string]interface{}, actorID uint, source string) (*model.Task, error) {
	res := d.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, api_errors.ErrTaskNotFound
	}

	task, err := d.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "update", "tasks", id, source)
	d.notifier.TaskChanged(ctx, task, false, actorID)
	return task, nil
}

func (d *TaskDAO) Delete(ctx context.Context, id uint, actorID uint) error {
	res := d.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return api_errors.ErrTaskNotFound
	}
	d.auditSvc.RecordMutation(ctx, actorID, "delete", "tasks", id, "rest")
	return nil
}

func (d *TaskDAO) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := d.db.WithContext(ctx).Preload("AssignedTo").First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, api_errors.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (d *TaskDAO) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := d.db.WithContext(ctx).Model(&model.Task{}).Preload("AssignedTo").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.OfficerID != 0 {
		query = query.Where("assigned_to_id = ?", filter.OfficerID)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (d *TaskDAO) ListByOfficer(ctx context.Context, officerID uint, status string) ([]model.Task, error) {
	query := d.db.WithContext(ctx).Where("assigned_to_id = ?", officerID).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (d *TaskDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Task{}).Count(&count).Error
	return count, err
}

func (d *TaskDAO) CountByStatus(ctx context.Context, status model.TaskStatus) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Task{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountOverdue counts non-terminal tasks past their due date.
func (d *TaskDAO) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Task{}).
		Where("due_date < ? AND status IN ?", now,
			[]model.TaskStatus{model.TaskPending, model.TaskInProgress}).
		Count(&count).Error
	return count, err
}

func (d *TaskDAO) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Task{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (d *TaskDAO) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Task{}).
		Where("status = ? AND completed_at >= ?", model.TaskCompleted, since).
		Count(&count).Error
	return count, err
}

func (d *TaskDAO) UpdatedSince(ctx context.Context, since time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := d.db.WithContext(ctx).Where("updated_at > ?", since).Find(&tasks).Error
	return tasks, err
}

// RecentlyUpdated returns the newest rows in the window, used by the
// performance metrics scan. A non-positive limit means unbounded.
func (d *TaskDAO) RecentlyUpdated(ctx context.Context, since time.Time, limit int) ([]model.Task, error) {
	query := d.db.WithContext(ctx).Preload("AssignedTo").
		Where("updated_at >= ?", since).
		Order("updated_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var tasks []model.Task
	err := query.Find(&tasks).Error
	return tasks, err
}
