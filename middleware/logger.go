package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/spop-ops/commander/api/logging"
)

// Logger logs every request once it has been handled. When the auth
// middleware has already identified the caller, the user id is included.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if userID, ok := c.Get("requestingUserID"); ok {
			fields = append(fields, zap.Any("userID", userID))
		}

		if len(c.Errors) > 0 {
			logger.Error("Request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Info("Request processed", fields...)
	}
}
