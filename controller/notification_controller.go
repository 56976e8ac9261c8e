// api/controller/notification_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
	helper_util "github.com/spop-ops/commander/api/util/helper"
)

type NotificationController struct {
	notificationService service.INotificationService
}

func NewNotificationController(notificationService service.INotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// RegisterRoutes registers the API routes
func (nc *NotificationController) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", nc.ListNotifications)
		notifications.GET("/unread_count", nc.UnreadCount)
		notifications.POST("/mark_all_read", nc.MarkAllRead)
		notifications.DELETE("/clear_all", nc.ClearAll)
		notifications.GET("/:id", nc.GetNotification)
		notifications.DELETE("/:id", nc.DeleteNotification)
		notifications.POST("/:id/mark_read", nc.MarkRead)
		notifications.POST("/:id/mark_unread", nc.MarkUnread)
	}
}

// ListNotifications endpoint
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination", api_errors.ErrInvalidPagination)
		return
	}

	filter := dao.NotificationFilter{
		Type:   c.Query("type"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("is_read"); raw != "" {
		isRead := raw == "true"
		filter.IsRead = &isRead
	}
	if raw := c.Query("priority"); raw != "" {
		priority, err := strconv.Atoi(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid priority", err)
			return
		}
		filter.Priority = &priority
	}

	notifications, err := nc.notificationService.List(c, userID, filter)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list notifications", err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// UnreadCount endpoint
func (nc *NotificationController) UnreadCount(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	count, err := nc.notificationService.UnreadCount(c, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to count unread notifications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetNotification endpoint
func (nc *NotificationController) GetNotification(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid notification id", err)
		return
	}

	notification, err := nc.notificationService.Get(c, id, userID)
	if err != nil {
		if err == api_errors.ErrNotificationNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Notification not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get notification", err)
		}
		return
	}

	c.JSON(http.StatusOK, notification)
}

// DeleteNotification endpoint
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid notification id", err)
		return
	}

	if err := nc.notificationService.Delete(c, id, userID); err != nil {
		if err == api_errors.ErrNotificationNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Notification not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete notification", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkRead endpoint. Idempotent: the first read timestamp wins.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid notification id", err)
		return
	}

	if err := nc.notificationService.MarkRead(c, id, userID); err != nil {
		if err == api_errors.ErrNotificationNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Notification not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to mark notification read", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkUnread endpoint
func (nc *NotificationController) MarkUnread(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid notification id", err)
		return
	}

	if err := nc.notificationService.MarkUnread(c, id, userID); err != nil {
		if err == api_errors.ErrNotificationNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Notification not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to mark notification unread", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllRead endpoint
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := nc.notificationService.MarkAllRead(c, userID); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to mark notifications read", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearAll endpoint
func (nc *NotificationController) ClearAll(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := nc.notificationService.ClearAll(c, userID); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to clear notifications", err)
		return
	}

	c.Status(http.StatusNoContent)
}
