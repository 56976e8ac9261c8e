// api/service/services.go
package service

import (
	"gorm.io/gorm"

	"github.com/spop-ops/commander/api/audit"
	"github.com/spop-ops/commander/api/dao"
	"github.com/spop-ops/commander/api/util"
)

type Services struct {
	Auth         IAuthService
	Officer      IOfficerService
	Task         ITaskService
	Order        IOrderService
	Circular     ICircularService
	Notification INotificationService
	Report       IReportService
	WeeklyPlan   IWeeklyPlanService
	Sync         ISyncService
	Dashboard    IDashboardService
}

func InitializeServices(
	db *gorm.DB,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notifier *util.ChangeNotifier,
) (*Services, error) {
	userDAO := dao.NewUserDAO(db)
	officerDAO := dao.NewOfficerDAO(db, auditService, notifier)
	taskDAO := dao.NewTaskDAO(db, auditService, notifier)
	orderDAO := dao.NewOrderDAO(db, auditService, notifier)
	circularDAO := dao.NewCircularDAO(db, auditService)
	notificationDAO := dao.NewNotificationDAO(db)
	reportDAO := dao.NewReportDAO(db, auditService)
	planDAO := dao.NewWeeklyPlanDAO(db, auditService)
	activityDAO := dao.NewActivityDAO(db)

	notificationSvc := NewNotificationService(notificationDAO, cacheService, notifier)

	services := &Services{
		Auth:         NewAuthService(userDAO, validationUtil),
		Officer:      NewOfficerService(officerDAO, taskDAO, validationUtil),
		Task:         NewTaskService(taskDAO, officerDAO, validationUtil, notificationSvc),
		Order:        NewOrderService(orderDAO, officerDAO, validationUtil, notificationSvc),
		Circular:     NewCircularService(circularDAO, validationUtil, notificationSvc),
		Notification: notificationSvc,
		Report:       NewReportService(reportDAO, officerDAO, validationUtil, notificationSvc),
		WeeklyPlan:   NewWeeklyPlanService(planDAO, validationUtil),
		Sync:         NewSyncService(taskDAO, orderDAO, officerDAO),
		Dashboard:    NewDashboardService(officerDAO, taskDAO, orderDAO, activityDAO, cacheService),
	}
	return services, nil
}
