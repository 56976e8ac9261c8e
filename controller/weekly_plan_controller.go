// api/controller/weekly_plan_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
)

type WeeklyPlanController struct {
	planService service.IWeeklyPlanService
}

func NewWeeklyPlanController(planService service.IWeeklyPlanService) *WeeklyPlanController {
	return &WeeklyPlanController{planService: planService}
}

// RegisterRoutes registers the API routes
func (wc *WeeklyPlanController) RegisterRoutes(r *gin.RouterGroup) {
	plans := r.Group("/weeklyplans")
	{
		plans.POST("", wc.CreatePlan)
		plans.GET("", wc.ListPlans)
		plans.GET("/active", wc.ActivePlan)
		plans.GET("/:id", wc.GetPlan)
		plans.DELETE("/:id", wc.DeletePlan)
	}
}

// CreatePlan endpoint. The new plan becomes the active one for its type.
func (wc *WeeklyPlanController) CreatePlan(c *gin.Context) {
	var plan model.WeeklyPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid weekly plan data", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	plan.CreatedByID = actorID

	created, err := wc.planService.Create(c, &plan, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrInvalidWeeklyPlanData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid weekly plan data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create weekly plan", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListPlans endpoint
func (wc *WeeklyPlanController) ListPlans(c *gin.Context) {
	plans, err := wc.planService.List(c, c.Query("plan_type"))
	if err != nil {
		if err == api_errors.ErrInvalidWeeklyPlanData {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid plan type", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list weekly plans", err)
		}
		return
	}

	c.JSON(http.StatusOK, plans)
}

// ActivePlan endpoint
func (wc *WeeklyPlanController) ActivePlan(c *gin.Context) {
	planType := model.PlanType(c.DefaultQuery("plan_type", string(model.PlanOfficer)))

	plan, err := wc.planService.GetActive(c, planType)
	if err != nil {
		switch err {
		case api_errors.ErrWeeklyPlanNotFound:
			util.RespondWithError(c, http.StatusNotFound, "No active weekly plan", err)
		case api_errors.ErrInvalidWeeklyPlanData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid plan type", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get active weekly plan", err)
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetPlan endpoint
func (wc *WeeklyPlanController) GetPlan(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid plan id", err)
		return
	}

	plan, err := wc.planService.Get(c, id)
	if err != nil {
		if err == api_errors.ErrWeeklyPlanNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Weekly plan not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get weekly plan", err)
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan endpoint
func (wc *WeeklyPlanController) DeletePlan(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid plan id", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := wc.planService.Delete(c, id, actorID); err != nil {
		if err == api_errors.ErrWeeklyPlanNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Weekly plan not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete weekly plan", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
