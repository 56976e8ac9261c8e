// api/controller/circular_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
)

type CircularController struct {
	circularService service.ICircularService
}

func NewCircularController(circularService service.ICircularService) *CircularController {
	return &CircularController{circularService: circularService}
}

// RegisterRoutes registers the API routes
func (cc *CircularController) RegisterRoutes(r *gin.RouterGroup) {
	circulars := r.Group("/circulars")
	{
		circulars.POST("", cc.CreateCircular)
		circulars.GET("", cc.ListCirculars)
		circulars.GET("/:id", cc.GetCircular)
		circulars.PUT("/:id", cc.UpdateCircular)
		circulars.DELETE("/:id", cc.DeleteCircular)
		circulars.POST("/:id/acknowledge", cc.Acknowledge)
		circulars.POST("/:id/attachments", cc.AddAttachment)
	}
}

func circularID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// CreateCircular endpoint
func (cc *CircularController) CreateCircular(c *gin.Context) {
	var circular model.Circular
	if err := c.ShouldBindJSON(&circular); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid circular data", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	circular.CreatedByID = actorID

	created, err := cc.circularService.Create(c, &circular, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrInvalidCircularData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid circular data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create circular", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListCirculars endpoint, scoped to circulars targeting the requester.
func (cc *CircularController) ListCirculars(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	circulars, err := cc.circularService.ListForOfficer(c, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list circulars", err)
		return
	}

	c.JSON(http.StatusOK, circulars)
}

// GetCircular endpoint
func (cc *CircularController) GetCircular(c *gin.Context) {
	id, err := circularID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid circular id", err)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	circular, err := cc.circularService.Get(c, id, userID, util.IsCommanderFromContext(c))
	if err != nil {
		if err == api_errors.ErrCircularNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Circular not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get circular", err)
		}
		return
	}

	c.JSON(http.StatusOK, circular)
}

// UpdateCircular endpoint
func (cc *CircularController) UpdateCircular(c *gin.Context) {
	id, err := circularID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid circular id", err)
		return
	}
	var circular model.Circular
	if err := c.ShouldBindJSON(&circular); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid circular data", err)
		return
	}
	circular.ID = id
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := cc.circularService.Update(c, &circular, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrCircularNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Circular not found", err)
		case api_errors.ErrInvalidCircularData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid circular data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update circular", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCircular endpoint. Always a soft delete.
func (cc *CircularController) DeleteCircular(c *gin.Context) {
	id, err := circularID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid circular id", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := cc.circularService.Delete(c, id, actorID); err != nil {
		if err == api_errors.ErrCircularNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Circular not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete circular", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Acknowledge endpoint. One acknowledgment per officer; repeats are rejected.
func (cc *CircularController) Acknowledge(c *gin.Context) {
	id, err := circularID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid circular id", err)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	var req service.CircularAckRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid acknowledgment data", err)
		return
	}
	req.IPAddress = c.ClientIP()

	if err := cc.circularService.Acknowledge(c, id, userID, req); err != nil {
		switch err {
		case api_errors.ErrCircularNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Circular not found", err)
		case api_errors.ErrAlreadyAcknowledged:
			util.RespondWithError(c, http.StatusBadRequest, "Circular already acknowledged", err)
		case api_errors.ErrCircularExpired:
			util.RespondWithError(c, http.StatusBadRequest, "Circular has expired", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to acknowledge circular", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"acknowledged": true})
}

// AddAttachment endpoint. Metadata only; the file bytes live elsewhere.
func (cc *CircularController) AddAttachment(c *gin.Context) {
	id, err := circularID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid circular id", err)
		return
	}
	var attachment model.CircularAttachment
	if err := c.ShouldBindJSON(&attachment); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid attachment data", err)
		return
	}

	if err := cc.circularService.AddAttachment(c, id, &attachment); err != nil {
		if err == api_errors.ErrCircularNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Circular not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to add attachment", err)
		}
		return
	}

	c.JSON(http.StatusCreated, attachment)
}
