// api/controller/sync_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
)

type SyncController struct {
	syncService service.ISyncService
}

func NewSyncController(syncService service.ISyncService) *SyncController {
	return &SyncController{syncService: syncService}
}

// RegisterRoutes registers the API routes
func (sc *SyncController) RegisterRoutes(r *gin.RouterGroup) {
	sync := r.Group("/sync")
	{
		sync.POST("/pull", sc.Pull)
		sync.POST("/push", sc.Push)
	}
}

// Pull endpoint. Returns full state for everything updated after the
// client's watermark.
func (sc *SyncController) Pull(c *gin.Context) {
	var req model.PullRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pull request", err)
		return
	}

	resp, err := sc.syncService.Pull(c, req)
	if err != nil {
		if err == api_errors.ErrUnknownEntityType {
			util.RespondWithError(c, http.StatusBadRequest, "Unknown entity type", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to pull updates", err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Push endpoint. Item failures land in the failed list; the request itself
// always answers 200.
func (sc *SyncController) Push(c *gin.Context) {
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	var req model.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid push request", err)
		return
	}

	result, err := sc.syncService.Push(c, req, actorID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to apply changes", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
