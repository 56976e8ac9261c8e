// api/controller/task_controller.go
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

type TaskController struct {
	taskService service.ITaskService
}

func NewTaskController(taskService service.ITaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

// RegisterRoutes registers the API routes
func (tc *TaskController) RegisterRoutes(r *gin.RouterGroup) {
	tasks := r.Group("/tasks")
	{
		tasks.POST("", tc.CreateTask)
		tasks.GET("", tc.ListTasks)
		tasks.GET("/active", tc.ActiveTasks)
		tasks.GET("/available", tc.AvailableTasks)
		tasks.GET("/:id", tc.GetTask)
		tasks.PUT("/:id", tc.UpdateTask)
		tasks.DELETE("/:id", tc.DeleteTask)
		tasks.PATCH("/:id/status", tc.UpdateStatus)
	}
}

// CreateTask endpoint
func (tc *TaskController) CreateTask(c *gin.Context) {
	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid task data", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	task.CreatedByID = actorID

	created, err := tc.taskService.Create(c, &task, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrInvalidTaskData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid task data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create task", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListTasks endpoint
func (tc *TaskController) ListTasks(c *gin.Context) {
	filter := dao.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	if raw := c.Query("officer_id"); raw != "" {
		officerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid officer_id", err)
			return
		}
		filter.OfficerID = uint(officerID)
	}

	tasks, err := tc.taskService.List(c, filter)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// ActiveTasks endpoint
func (tc *TaskController) ActiveTasks(c *gin.Context) {
	tasks, err := tc.taskService.Active(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list active tasks", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// AvailableTasks endpoint
func (tc *TaskController) AvailableTasks(c *gin.Context) {
	tasks, err := tc.taskService.Available(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list available tasks", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask endpoint
func (tc *TaskController) GetTask(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid task id", err)
		return
	}

	task, err := tc.taskService.Get(c, id)
	if err != nil {
		if err == api_errors.ErrTaskNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Task not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get task", err)
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask endpoint
func (tc *TaskController) UpdateTask(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid task id", err)
		return
	}
	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid task data", err)
		return
	}
	task.ID = id
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := tc.taskService.Update(c, &task, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrTaskNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Task not found", err)
		case api_errors.ErrInvalidTaskData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid task data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update task", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTask endpoint
func (tc *TaskController) DeleteTask(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid task id", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := tc.taskService.Delete(c, id, actorID); err != nil {
		if err == api_errors.ErrTaskNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Task not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete task", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateStatus endpoint
func (tc *TaskController) UpdateStatus(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid task id", err)
		return
	}
	var req struct {
		Status model.TaskStatus `json:"status" binding:"required"`
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

	task, err := tc.taskService.UpdateStatus(c, id, req.Status, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrTaskNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Task not found", err)
		case api_errors.ErrInvalidTaskData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid task status", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update task status", err)
		}
		return
	}

	c.JSON(http.StatusOK, task)
}
