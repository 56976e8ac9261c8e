// api/controller/report_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
)

type ReportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// RegisterRoutes registers the API routes
func (rc *ReportController) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.POST("", rc.CreateReport)
		reports.GET("", rc.ListReports)
		reports.GET("/:id", rc.GetReport)
		reports.PUT("/:id", rc.UpdateReport)
		reports.DELETE("/:id", rc.DeleteReport)
		reports.POST("/:id/review", rc.ReviewReport)
	}
}

// CreateReport endpoint
func (rc *ReportController) CreateReport(c *gin.Context) {
	var report model.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid report data", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	created, err := rc.reportService.Create(c, &report, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrInvalidReportData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid report data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create report", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListReports endpoint
func (rc *ReportController) ListReports(c *gin.Context) {
	filter := dao.ReportFilter{Status: c.Query("status")}
	if raw := c.Query("officer_id"); raw != "" {
		officerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid officer_id", err)
			return
		}
		filter.OfficerID = uint(officerID)
	}

	reports, err := rc.reportService.List(c, filter)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetReport endpoint
func (rc *ReportController) GetReport(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid report id", err)
		return
	}

	report, err := rc.reportService.Get(c, id)
	if err != nil {
		if err == api_errors.ErrReportNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Report not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get report", err)
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// UpdateReport endpoint
func (rc *ReportController) UpdateReport(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid report id", err)
		return
	}
	var report model.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid report data", err)
		return
	}
	report.ID = id
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := rc.reportService.Update(c, &report, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrReportNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Report not found", err)
		case api_errors.ErrInvalidReportData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid report data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update report", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteReport endpoint
func (rc *ReportController) DeleteReport(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid report id", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := rc.reportService.Delete(c, id, actorID); err != nil {
		if err == api_errors.ErrReportNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Report not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete report", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ReviewReport endpoint. Records the commander verdict on a submitted report.
func (rc *ReportController) ReviewReport(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid report id", err)
		return
	}
	reviewerID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid review data", err)
		return
	}

	report, err := rc.reportService.Review(c, id, reviewerID, util.IsCommanderFromContext(c), req)
	if err != nil {
		switch err {
		case api_errors.ErrCommanderOnly:
			util.RespondWithError(c, http.StatusForbidden, "Commander role required", err)
		case api_errors.ErrReportNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Report not found", err)
		case api_errors.ErrInvalidReviewData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid review status", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to review report", err)
		}
		return
	}

	c.JSON(http.StatusOK, report)
}
