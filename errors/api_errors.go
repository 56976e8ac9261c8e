// api/errors/api_errors.go
package errors

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

var (
	ErrOfficerNotFound     = errors.New("officer not found")
	ErrInvalidOfficerData  = errors.New("invalid officer data")
	ErrOfficerHasOpenTasks = errors.New("cannot delete officer with ongoing tasks")
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidTaskData = errors.New("invalid task data")
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidOrderData = errors.New("invalid order data")
	ErrAckNotRequired   = errors.New("acknowledgment not required for this order")
	ErrCommanderOnly    = errors.New("only commanders can perform this action")
)

var (
	ErrCircularNotFound    = errors.New("circular not found")
	ErrInvalidCircularData = errors.New("invalid circular data")
	ErrAlreadyAcknowledged = errors.New("already acknowledged")
	ErrCircularExpired     = errors.New("circular has expired")
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidReportData = errors.New("invalid report data")
	ErrInvalidReviewData = errors.New("invalid review data")
)

var (
	ErrWeeklyPlanNotFound    = errors.New("weekly plan not found")
	ErrInvalidWeeklyPlanData = errors.New("invalid weekly plan data")
)

var (
	ErrUnknownEntityType = errors.New("unknown entity type")
)
