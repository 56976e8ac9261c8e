// api/controller/controllers.go
package controller

import "github.com/spop-ops/commander/api/service"

type Controllers struct {
	Auth         *AuthController
	Officer      *OfficerController
	Task         *TaskController
	Order        *OrderController
	Circular     *CircularController
	Notification *NotificationController
	Report       *ReportController
	WeeklyPlan   *WeeklyPlanController
	Sync         *SyncController
	Dashboard    *DashboardController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Auth:         NewAuthController(services.Auth),
		Officer:      NewOfficerController(services.Officer),
		Task:         NewTaskController(services.Task),
		Order:        NewOrderController(services.Order),
		Circular:     NewCircularController(services.Circular),
		Notification: NewNotificationController(services.Notification),
		Report:       NewReportController(services.Report),
		WeeklyPlan:   NewWeeklyPlanController(services.WeeklyPlan),
		Sync:         NewSyncController(services.Sync),
		Dashboard:    NewDashboardController(services.Dashboard),
	}
}
