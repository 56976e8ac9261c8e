// api/middleware/auth.go

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/util"
)

// AuthMiddleware validates the bearer token and stores the requester's
// identity on the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			logger.Warn("No Authorization token provided",
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := util.ParseToken(tokenString)
		if err != nil {
			logger.Warn("Invalid bearer token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if claims.Kind != util.AccessToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("requestingUserID", claims.UserID)
		c.Set("requestingUser", claims.Username)
		c.Set("isCommander", claims.IsCommander)

		c.Next()
	}
}

// CommanderOnly rejects requests whose token lacks the commander role.
func CommanderOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !util.IsCommanderFromContext(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only commanders can perform this action"})
			c.Abort()
			return
		}
		c.Next()
	}
}
