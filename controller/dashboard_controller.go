// api/controller/dashboard_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
)

type DashboardController struct {
	dashboardService service.IDashboardService
}

func NewDashboardController(dashboardService service.IDashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// RegisterRoutes registers the API routes
func (dc *DashboardController) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/summary", dc.Summary)
	}
}

// Summary endpoint. Aggregate stats, recent activity and performance
// metrics, Redis-cached with a short TTL.
func (dc *DashboardController) Summary(c *gin.Context) {
	summary, err := dc.dashboardService.Summary(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to build dashboard summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
