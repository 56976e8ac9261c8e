// api/router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spop-ops/commander/api/controller"
	"github.com/spop-ops/commander/api/middleware"
	"github.com/spop-ops/commander/api/realtime"
)

func SetupRouter(
	controllers *controller.Controllers,
	hub *realtime.Hub,
	source realtime.DataSource,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	api := router.Group("/api/v1")

	// Token-free endpoints: register, login, refresh.
	controllers.Auth.RegisterPublicRoutes(api)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())

	controllers.Auth.RegisterRoutes(authed)
	controllers.Officer.RegisterRoutes(authed)
	controllers.Task.RegisterRoutes(authed)
	controllers.Order.RegisterRoutes(authed)
	controllers.Circular.RegisterRoutes(authed)
	controllers.Notification.RegisterRoutes(authed)
	controllers.Report.RegisterRoutes(authed)
	controllers.WeeklyPlan.RegisterRoutes(authed)
	controllers.Sync.RegisterRoutes(authed)
	controllers.Dashboard.RegisterRoutes(authed)

	// The WebSocket endpoint authenticates through the subprotocol list, not
	// the Authorization header, so it sits outside the auth middleware.
	router.GET("/ws/dashboard", realtime.ServeDashboard(hub, source))

	return router
}
