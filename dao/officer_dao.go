// api/dao/officer_dao.go
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

// OfficerFilter narrows List results.
type OfficerFilter struct {
	Status string
	Search string
}

type OfficerDAO struct {
	db       *gorm.DB
	auditSvc audit.Service
	notifier *util.ChangeNotifier
}

func NewOfficerDAO(db *gorm.DB, auditSvc audit.Service, notifier *util.ChangeNotifier) *OfficerDAO {
	return &OfficerDAO{db: db, auditSvc: auditSvc, notifier: notifier}
}

func (d *OfficerDAO) Create(ctx context.Context, officer *model.Officer, actorID uint, source string) error {
	if err := d.db.WithContext(ctx).Create(officer).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "create", "officers", officer.ID, source)
	d.notifier.OfficerChanged(ctx, officer, true)
	return nil
}

func (d *OfficerDAO) Update(ctx context.Context, officer *model.Officer, actorID uint, source string) error {
	if err := d.db.WithContext(ctx).Save(officer).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "update", "officers", officer.ID, source)
	d.notifier.OfficerChanged(ctx, officer, false)
	return nil
}

// PartialUpdate applies a whitelisted column subset, used by the sync push
// path. The reloaded row is returned so the notifier sees final state.
func (d *OfficerDAO) PartialUpdate(ctx context.Context, id uint, fields map[string]interface{}, actorID uint, source string) (*model.Officer, error) {
	res := d.db.WithContext(ctx).Model(&model.Officer{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, api_errors.ErrOfficerNotFound
	}

	officer, err := d.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "update", "officers", id, source)
	d.notifier.OfficerChanged(ctx, officer, false)
	return officer, nil
}

func (d *OfficerDAO) Delete(ctx context.Context, id uint, actorID uint) error {
	res := d.db.WithContext(ctx).Delete(&model.Officer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return api_errors.ErrOfficerNotFound
	}
	d.auditSvc.RecordMutation(ctx, actorID, "delete", "officers", id, "rest")
	return nil
}

func (d *OfficerDAO) GetByID(ctx context.Context, id uint) (*model.Officer, error) {
	var officer model.Officer
	err := d.db.WithContext(ctx).First(&officer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, api_errors.ErrOfficerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &officer, nil
}

func (d *OfficerDAO) List(ctx context.Context, filter OfficerFilter) ([]model.Officer, error) {
	query := d.db.WithContext(ctx).Model(&model.Officer{}).Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR `rank` LIKE ? OR phone_number LIKE ?", like, like, like)
	}

	var officers []model.Officer
	if err := query.Find(&officers).Error; err != nil {
		return nil, err
	}
	return officers, nil
}

func (d *OfficerDAO) CountByStatus(ctx context.Context, status model.OfficerStatus) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Officer{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (d *OfficerDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Officer{}).Count(&count).Error
	return count, err
}

// UpdatedSince returns every officer touched after the watermark, full rows.
func (d *OfficerDAO) UpdatedSince(ctx context.Context, since time.Time) ([]model.Officer, error) {
	var officers []model.Officer
	err := d.db.WithContext(ctx).Where("updated_at > ?", since).Find(&officers).Error
	return officers, err
}

// HasOpenTasks reports whether any non-terminal task is still assigned.
func (d *OfficerDAO) HasOpenTasks(ctx context.Context, officerID uint) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to_id = ? AND status NOT IN ?", officerID,
			[]model.TaskStatus{model.TaskCompleted, model.TaskCancelled}).
		Count(&count).Error
	return count > 0, err
}
