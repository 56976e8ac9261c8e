// api/model/dashboard.go
package model

import "time"

// DashboardSummary is the aggregate payload served by /dashboard/summary and
// cached briefly in Redis.
type DashboardSummary struct {
	Officers           OfficerStats       `json:"officers"`
	Tasks              TaskStats          `json:"tasks"`
	Orders             OrderStats         `json:"orders"`
	RecentActivities   []Activity         `json:"recent_activities"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
	LastUpdated        time.Time          `json:"last_updated"`
}

type OfficerStats struct {
	Total     int64 `json:"total_officers"`
	Available int64 `json:"available_officers"`
	OnMission int64 `json:"on_mission_officers"`
	OnLeave   int64 `json:"on_leave_officers"`
}

type TaskStats struct {
	Total          int64   `json:"total_tasks"`
	Pending        int64   `json:"pending_tasks"`
	InProgress     int64   `json:"in_progress_tasks"`
	Completed      int64   `json:"completed_tasks"`
	Overdue        int64   `json:"overdue_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

type OrderStats struct {
	Total   int64 `json:"total_orders"`
	Urgent  int64 `json:"urgent_orders"`
	Pending int64 `json:"pending_orders"`
	Recent  int64 `json:"recent_orders"`
}

type PerformanceMetrics struct {
	TotalCompleted      int64   `json:"total_completed"`
	OnTimeCompletion    int64   `json:"on_time_completion"`
	AvgTasksPerOfficer  float64 `json:"avg_tasks_per_officer"`
	MaxTasksCompleted   int64   `json:"max_tasks_completed"`
	AvgResponseTimeSecs float64 `json:"avg_response_time_secs"`
}

// DashboardStats is the compact live counter set pushed over the WebSocket.
type DashboardStats struct {
	TotalOfficers     int64 `json:"total_officers"`
	AvailableOfficers int64 `json:"available_officers"`
	PendingTasks      int64 `json:"pending_tasks"`
	UrgentOrders      int64 `json:"urgent_orders"`
}
