// api/service/report_service.go
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

// ReviewRequest is the commander's verdict on a submitted report.
type ReviewRequest struct {
	Status      model.ReportStatus `json:"status"`
	Feedback    string             `json:"feedback"`
	AwardPoints int                `json:"award_points"`
}

// IReportService defines the interface for report operations
type IReportService interface {
	Create(ctx context.Context, report *model.Report, actorID uint) (*model.Report, error)
	Update(ctx context.Context, report *model.Report, actorID uint) (*model.Report, error)
	Delete(ctx context.Context, id, actorID uint) error
	Get(ctx context.Context, id uint) (*model.Report, error)
	List(ctx context.Context, filter dao.ReportFilter) ([]model.Report, error)
	Review(ctx context.Context, id, reviewerID uint, isCommander bool, req ReviewRequest) (*model.Report, error)
}

type ReportService struct {
	reportDAO       *dao.ReportDAO
	officerDAO      *dao.OfficerDAO
	validationUtil  *util.ValidationUtil
	notificationSvc INotificationService
}

var _ IReportService = &ReportService{}

func NewReportService(reportDAO *dao.ReportDAO, officerDAO *dao.OfficerDAO, validationUtil *util.ValidationUtil, notificationSvc INotificationService) *ReportService {
	return &ReportService{
		reportDAO:       reportDAO,
		officerDAO:      officerDAO,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
	}
}

func (s *ReportService) Create(ctx context.Context, report *model.Report, actorID uint) (*model.Report, error) {
	if err := s.validationUtil.ValidateReport(report); err != nil {
		return nil, api_errors.ErrInvalidReportData
	}
	report.Status = model.ReportPending
	if err := s.reportDAO.Create(ctx, report, actorID); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) Update(ctx context.Context, report *model.Report, actorID uint) (*model.Report, error) {
	if err := s.validationUtil.ValidateReport(report); err != nil {
		return nil, api_errors.ErrInvalidReportData
	}
	if _, err := s.reportDAO.GetByID(ctx, report.ID); err != nil {
		return nil, err
	}
	if err := s.reportDAO.Update(ctx, report, actorID); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) Delete(ctx context.Context, id, actorID uint) error {
	return s.reportDAO.Delete(ctx, id, actorID)
}

func (s *ReportService) Get(ctx context.Context, id uint) (*model.Report, error) {
	return s.reportDAO.GetByID(ctx, id)
}

func (s *ReportService) List(ctx context.Context, filter dao.ReportFilter) ([]model.Report, error) {
	return s.reportDAO.List(ctx, filter)
}

// Review records the commander's verdict and notifies the submitting
// officer. Only approve, reject and needs_revision are acceptable verdicts.
func (s *ReportService) Review(ctx context.Context, id, reviewerID uint, isCommander bool, req ReviewRequest) (*model.Report, error) {
	if !isCommander {
		return nil, api_errors.ErrCommanderOnly
	}
	switch req.Status {
	case model.ReportApproved, model.ReportRejected, model.ReportNeedsRevision:
	default:
		return nil, api_errors.ErrInvalidReviewData
	}

	report, err := s.reportDAO.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report.Status = req.Status
	report.Feedback = req.Feedback
	report.ReviewedByID = &reviewerID
	report.ReviewedAt = &now
	if req.Status == model.ReportApproved {
		report.AwardPoints = req.AwardPoints
	}
	if err := s.reportDAO.Update(ctx, report, reviewerID); err != nil {
		return nil, err
	}

	s.notifyReview(ctx, report)
	return report, nil
}

func (s *ReportService) notifyReview(ctx context.Context, report *model.Report) {
	officer, err := s.officerDAO.GetByID(ctx, report.OfficerID)
	if err != nil {
		logger.Warn("Cannot resolve report officer for review notification",
			zap.Error(err), zap.Uint("reportID", report.ID))
		return
	}

	n := &model.Notification{
		RecipientID: officer.UserID,
		Type:        model.NotificationSystem,
		Title:       fmt.Sprintf("Report %s: %s", report.Status, report.Title),
		Body:        report.Feedback,
		Related:     model.Ref{Kind: model.RefReport, ID: fmt.Sprint(report.ID)},
	}
	if err := s.notificationSvc.Notify(ctx, n); err != nil {
		logger.Warn("Failed to create review notification", zap.Error(err), zap.Uint("reportID", report.ID))
	}
}
