// api/util/http_util.go
package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// GetUserIDFromContext returns the authenticated user id set by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	value, exists := c.Get("requestingUserID")
	if !exists {
		return 0, api_errors.ErrUnauthorized
	}
	userID, ok := value.(uint)
	if !ok {
		return 0, api_errors.ErrUnauthorized
	}
	return userID, nil
}

// IsCommanderFromContext reports whether the requester carries the commander
// role claim.
func IsCommanderFromContext(c *gin.Context) bool {
	value, exists := c.Get("isCommander")
	if !exists {
		return false
	}
	isCommander, ok := value.(bool)
	return ok && isCommander
}

// ParseUintParam parses a numeric path parameter such as /tasks/:id.
func ParseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
