// api/model/task.go
package model

import "time"

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status ends the task's lifecycle.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskCancelled
}

type Task struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Title          string       `gorm:"size:200;not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	AssignedToID   uint         `gorm:"index" json:"assigned_to"`
	AssignedTo     *Officer     `gorm:"foreignKey:AssignedToID;constraint:OnDelete:CASCADE" json:"assigned_to_detail,omitempty"`
	CreatedByID    uint         `json:"created_by"`
	Priority       TaskPriority `gorm:"size:10;default:medium" json:"priority"`
	Status         TaskStatus   `gorm:"size:20;default:pending;index" json:"status"`
	DueDate        time.Time    `json:"due_date"`
	CompletionRate float64      `gorm:"default:0" json:"completion_rate"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	CreatedAt      time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime;index" json:"updated_at"`
}

// TaskUpdate is an append-only progress note attached to a task.
type TaskUpdate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TaskID      uint      `gorm:"index" json:"task_id"`
	UserID      uint      `json:"user_id"`
	UpdateType  string    `gorm:"size:20" json:"update_type"`
	Description string    `gorm:"type:text" json:"description"`
	Data        JSONMap   `json:"data"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
