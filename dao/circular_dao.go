// api/dao/circular_dao.go
package dao

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spop-ops/commander/api/audit"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
)

type CircularDAO struct {
	db       *gorm.DB
	auditSvc audit.Service
}

func NewCircularDAO(db *gorm.DB, auditSvc audit.Service) *CircularDAO {
	return &CircularDAO{db: db, auditSvc: auditSvc}
}

func (d *CircularDAO) Create(ctx context.Context, circular *model.Circular, actorID uint) error {
	if err := d.db.WithContext(ctx).Create(circular).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "create", "circulars", circular.ID, "rest")
	return nil
}

func (d *CircularDAO) Update(ctx context.Context, circular *model.Circular, actorID uint) error {
	if err := d.db.WithContext(ctx).Save(circular).Error; err != nil {
		return err
	}
	d.auditSvc.RecordMutation(ctx, actorID, "update", "circulars", circular.ID, "rest")
	return nil
}

func (d *CircularDAO) GetByID(ctx context.Context, id uuid.UUID) (*model.Circular, error) {
	var circular model.Circular
	err := d.db.WithContext(ctx).
		Preload("TargetOfficers").
		Preload("Acknowledgments").
		Preload("Attachments").
		Where("id = ?", id).
		First(&circular).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, api_errors.ErrCircularNotFound
	}
	if err != nil {
		return nil, err
	}
	return &circular, nil
}

// ListForOfficer returns non-deleted circulars targeting the given user.
func (d *CircularDAO) ListForOfficer(ctx context.Context, userID uint) ([]model.Circular, error) {
	var circulars []model.Circular
	err := d.db.WithContext(ctx).
		Joins("JOIN circular_target_officers cto ON cto.circular_id = circulars.id").
		Where("cto.user_id = ? AND circulars.is_deleted = ?", userID, false).
		Order("circulars.created_at DESC").
		Preload("Attachments").
		Find(&circulars).Error
	return circulars, err
}

// SoftDelete flips is_deleted; circular rows are never removed.
func (d *CircularDAO) SoftDelete(ctx context.Context, id uuid.UUID, actorID uint) error {
	res := d.db.WithContext(ctx).Model(&model.Circular{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return api_errors.ErrCircularNotFound
	}
	d.auditSvc.RecordMutation(ctx, actorID, "delete", "circulars", id, "rest")
	return nil
}

func (d *CircularDAO) HasAcknowledged(ctx context.Context, circularID uuid.UUID, officerID uint) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.CircularAcknowledgment{}).
		Where("circular_id = ? AND officer_id = ?", circularID, officerID).
		Count(&count).Error
	return count > 0, err
}

func (d *CircularDAO) CreateAcknowledgment(ctx context.Context, ack *model.CircularAcknowledgment) error {
	err := d.db.WithContext(ctx).Create(ack).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		// Unique (circular, officer) index backs the uniqueness invariant
		// even under concurrent acknowledge calls.
		return api_errors.ErrAlreadyAcknowledged
	}
	return err
}

func (d *CircularDAO) AddAttachment(ctx context.Context, attachment *model.CircularAttachment) error {
	return d.db.WithContext(ctx).Create(attachment).Error
}
