// api/model/activity.go
package model

import "time"

type ActivityType string

const (
	ActivityTask    ActivityType = "task"
	ActivityOrder   ActivityType = "order"
	ActivityOfficer ActivityType = "officer"
	ActivitySystem  ActivityType = "system"
)

// Activity is the dashboard feed row written by the change notifier after
// every tracked entity write.
type Activity struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	ActivityType     ActivityType `gorm:"size:20;index:idx_activity_time" json:"activity_type"`
	Title            string       `gorm:"size:255" json:"title"`
	Description      string       `gorm:"type:text" json:"description"`
	ActorID          *uint        `json:"actor,omitempty"`
	RelatedOfficerID *uint        `gorm:"index" json:"related_officer,omitempty"`
	Status           string       `gorm:"size:50" json:"status"`
	Metadata         JSONMap      `json:"metadata"`
	Timestamp        time.Time    `gorm:"autoCreateTime;index:idx_activity_time" json:"timestamp"`
}
