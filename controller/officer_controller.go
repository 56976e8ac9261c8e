// api/controller/officer_controller.go
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

type OfficerController struct {
	officerService service.IOfficerService
}

func NewOfficerController(officerService service.IOfficerService) *OfficerController {
	return &OfficerController{officerService: officerService}
}

// RegisterRoutes registers the API routes
func (oc *OfficerController) RegisterRoutes(r *gin.RouterGroup) {
	officers := r.Group("/officers")
	{
		officers.POST("", oc.CreateOfficer)
		officers.GET("", oc.ListOfficers)
		officers.GET("/available", oc.AvailableOfficers)
		officers.GET("/statistics", oc.OfficerStatistics)
		officers.GET("/:id", oc.GetOfficer)
		officers.PUT("/:id", oc.UpdateOfficer)
		officers.DELETE("/:id", oc.DeleteOfficer)
		officers.PATCH("/:id/status", oc.UpdateStatus)
		officers.GET("/:id/tasks", oc.OfficerTasks)
		officers.GET("/:id/performance", oc.OfficerPerformance)
	}
}

// CreateOfficer endpoint
func (oc *OfficerController) CreateOfficer(c *gin.Context) {
	var officer model.Officer
	if err := c.ShouldBindJSON(&officer); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid officer data", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	created, err := oc.officerService.Create(c, &officer, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrInvalidOfficerData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid officer data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create officer", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListOfficers endpoint
func (oc *OfficerController) ListOfficers(c *gin.Context) {
	filter := dao.OfficerFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	officers, err := oc.officerService.List(c, filter)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list officers", err)
		return
	}

	c.JSON(http.StatusOK, officers)
}

// AvailableOfficers endpoint
func (oc *OfficerController) AvailableOfficers(c *gin.Context) {
	officers, err := oc.officerService.Available(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list available officers", err)
		return
	}

	c.JSON(http.StatusOK, officers)
}

// OfficerStatistics endpoint
func (oc *OfficerController) OfficerStatistics(c *gin.Context) {
	stats, err := oc.officerService.Statistics(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute officer statistics", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetOfficer endpoint
func (oc *OfficerController) GetOfficer(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid officer id", err)
		return
	}

	officer, err := oc.officerService.Get(c, id)
	if err != nil {
		if err == api_errors.ErrOfficerNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Officer not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get officer", err)
		}
		return
	}

	c.JSON(http.StatusOK, officer)
}

// UpdateOfficer endpoint
func (oc *OfficerController) UpdateOfficer(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid officer id", err)
		return
	}
	var officer model.Officer
	if err := c.ShouldBindJSON(&officer); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid officer data", err)
		return
	}
	officer.ID = id
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := oc.officerService.Update(c, &officer, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrOfficerNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Officer not found", err)
		case api_errors.ErrInvalidOfficerData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid officer data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update officer", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteOfficer endpoint
func (oc *OfficerController) DeleteOfficer(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid officer id", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := oc.officerService.Delete(c, id, actorID); err != nil {
		switch err {
		case api_errors.ErrOfficerNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Officer not found", err)
		case api_errors.ErrOfficerHasOpenTasks:
			util.RespondWithError(c, http.StatusBadRequest, "Officer has open tasks", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete officer", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateStatus endpoint
func (oc *OfficerController) UpdateStatus(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid officer id", err)
		return
	}
	var req struct {
		Status model.OfficerStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid status payload", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	officer, err := oc.officerService.UpdateStatus(c, id, req.Status, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrOfficerNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Officer not found", err)
		case api_errors.ErrInvalidOfficerData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid officer status", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update officer status", err)
		}
		return
	}

	c.JSON(http.StatusOK, officer)
}

// OfficerTasks endpoint
func (oc *OfficerController) OfficerTasks(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid officer id", err)
		return
	}

	tasks, err := oc.officerService.Tasks(c, id, c.Query("status"))
	if err != nil {
		if err == api_errors.ErrOfficerNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Officer not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list officer tasks", err)
		}
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// OfficerPerformance endpoint
func (oc *OfficerController) OfficerPerformance(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid officer id", err)
		return
	}
	period, err := strconv.Atoi(c.DefaultQuery("period", "30"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid period", err)
		return
	}

	perf, err := oc.officerService.Performance(c, id, period)
	if err != nil {
		switch err {
		case api_errors.ErrOfficerNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Officer not found", err)
		case api_errors.ErrInvalidOfficerData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid period", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute performance", err)
		}
		return
	}

	c.JSON(http.StatusOK, perf)
}
