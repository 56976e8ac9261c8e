// api/dao/report_dao.go
package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/spop-ops/commander/api/audit"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
)

type ReportFilter struct {
	Status    string
	OfficerID uint
}

type ReportDAO struct {
	db       *gorm.DB
	auditSvc audit.Service
}

func NewReportDAO(db *gorm.DB, auditSvc audit.Service) *ReportDAO {
	return &ReportDAO{db: db, auditSvc: auditSvc}
}

func (d *ReportDAO) Create(ctx context.Context, report *model.Report, actorID uint) error {
	if err := d.db.WithContext(ctx).Create(report).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "create", "reports", report.ID, "rest")
	return nil
}

func (d *ReportDAO) Update(ctx context.Context, report *model.Report, actorID uint) error {
	if err := d.db.WithContext(ctx).Save(report).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "update", "reports", report.ID, "rest")
	return nil
}

func (d *ReportDAO) Delete(ctx context.Context, id uint, actorID uint) error {
	res := d.db.WithContext(ctx).Delete(&model.Report{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return api_errors.ErrReportNotFound
	}
	d.auditSvc.RecordMutation(ctx, actorID, "delete", "reports", id, "rest")
	return nil
}

func (d *ReportDAO) GetByID(ctx context.Context, id uint) (*model.Report, error) {
	var report model.Report
	err := d.db.WithContext(ctx).
		Preload("Officer").
		Preload("ReviewedBy").
		Preload("Attachments").
		First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, api_errors.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (d *ReportDAO) List(ctx context.Context, filter ReportFilter) ([]model.Report, error) {
	query := d.db.WithContext(ctx).Model(&model.Report{}).
		Preload("Officer").
		Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OfficerID != 0 {
		query = query.Where("officer_id = ?", filter.OfficerID)
	}

	var reports []model.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (d *ReportDAO) AddAttachment(ctx context.Context, attachment *model.ReportAttachment) error {
	return d.db.WithContext(ctx).Create(attachment).Error
}
