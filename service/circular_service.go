// api/service/circular_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

// CircularAckRequest carries client-reported context for the acknowledgment
// audit row.
type CircularAckRequest struct {
	DeviceInfo string `json:"device_info"`
	IPAddress  string `json:"ip_address"`
	Location   string `json:"location"`
}

// ICircularService defines the interface for circular operations
type ICircularService interface {
	Create(ctx context.Context, circular *model.Circular, actorID uint) (*model.Circular, error)
	Update(ctx context.Context, circular *model.Circular, actorID uint) (*model.Circular, error)
	Delete(ctx context.Context, id uuid.UUID, actorID uint) error
	Get(ctx context.Context, id uuid.UUID, requesterID uint, isCommander bool) (*model.Circular, error)
	ListForOfficer(ctx context.Context, userID uint) ([]model.Circular, error)
	Acknowledge(ctx context.Context, id uuid.UUID, officerID uint, req CircularAckRequest) error
	AddAttachment(ctx context.Context, circularID uuid.UUID, attachment *model.CircularAttachment) error
}

type CircularService struct {
	circularDAO     *dao.CircularDAO
	validationUtil  *util.ValidationUtil
	notificationSvc INotificationService
}

var _ ICircularService = &CircularService{}

func NewCircularService(circularDAO *dao.CircularDAO, validationUtil *util.ValidationUtil, notificationSvc INotificationService) *CircularService {
	return &CircularService{
		circularDAO:     circularDAO,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
	}
}

func (s *CircularService) Create(ctx context.Context, circular *model.Circular, actorID uint) (*model.Circular, error) {
	if err := s.validationUtil.ValidateCircular(circular); err != nil {
		return nil, api_errors.ErrInvalidCircularData
	}
	if circular.ID == uuid.Nil {
		circular.ID = uuid.New()
	}
	if err := s.circularDAO.Create(ctx, circular, actorID); err != nil {
		return nil, err
	}

	// Each targeted officer gets a notification; delivery is best effort.
	for _, target := range circular.TargetOfficers {
		n := &model.Notification{
			RecipientID: target.ID,
			Type:        model.NotificationSystem,
			Title:       fmt.Sprintf("New Circular: %s", circular.Title),
			Body:        circular.CircularNumber,
			Related:     model.Ref{Kind: model.RefCircular, ID: circular.ID.String()},
		}
		if err := s.notificationSvc.Notify(ctx, n); err != nil {
			logger.Warn("Failed to notify circular target",
				zap.Error(err),
				zap.String("circularID", circular.ID.String()),
				zap.Uint("recipientID", target.ID))
		}
	}
	return circular, nil
}

func (s *CircularService) Update(ctx context.Context, circular *model.Circular, actorID uint) (*model.Circular, error) {
	if err := s.validationUtil.ValidateCircular(circular); err != nil {
		return nil, api_errors.ErrInvalidCircularData
	}
	if _, err := s.circularDAO.GetByID(ctx, circular.ID); err != nil {
		return nil, err
	}
	if err := s.circularDAO.Update(ctx, circular, actorID); err != nil {
		return nil, err
	}
	return circular, nil
}

func (s *CircularService) Delete(ctx context.Context, id uuid.UUID, actorID uint) error {
	return s.circularDAO.SoftDelete(ctx, id, actorID)
}

// Get enforces the access invariant for non-commanders: the requester must
// be targeted and the circular neither deleted nor expired.
func (s *CircularService) Get(ctx context.Context, id uuid.UUID, requesterID uint, isCommander bool) (*model.Circular, error) {
	circular, err := s.circularDAO.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if circular.IsDeleted && !isCommander {
		return nil, api_errors.ErrCircularNotFound
	}
	if !isCommander && !circular.CanOfficerAccess(requesterID) {
		return nil, api_errors.ErrCircularNotFound
	}
	return circular, nil
}

func (s *CircularService) ListForOfficer(ctx context.Context, userID uint) ([]model.Circular, error) {
	return s.circularDAO.ListForOfficer(ctx, userID)
}

// Acknowledge creates the unique (circular, officer) row. A repeat call
// fails without writing anything.
func (s *CircularService) Acknowledge(ctx context.Context, id uuid.UUID, officerID uint, req CircularAckRequest) error {
	circular, err := s.circularDAO.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if circular.IsDeleted {
		return api_errors.ErrCircularNotFound
	}
	if circular.IsExpired() {
		return api_errors.ErrCircularExpired
	}

	already, err := s.circularDAO.HasAcknowledged(ctx, id, officerID)
	if err != nil {
		return err
	}
	if already {
		return api_errors.ErrAlreadyAcknowledged
	}

	return s.circularDAO.CreateAcknowledgment(ctx, &model.CircularAcknowledgment{
		CircularID: id,
		OfficerID:  officerID,
		DeviceInfo: req.DeviceInfo,
		IPAddress:  req.IPAddress,
		Location:   req.Location,
	})
}

func (s *CircularService) AddAttachment(ctx context.Context, circularID uuid.UUID, attachment *model.CircularAttachment) error {
	if _, err := s.circularDAO.GetByID(ctx, circularID); err != nil {
		return err
	}
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}
	attachment.CircularID = circularID
	return s.circularDAO.AddAttachment(ctx, attachment)
}
