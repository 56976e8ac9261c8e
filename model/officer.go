// api/model/officer.go
package model

import (
	"time"

	"gorm.io/gorm"
)

type OfficerStatus string

const (
	OfficerAvailable OfficerStatus = "available"
	OfficerOnMission OfficerStatus = "on_mission"
	OfficerOnLeave   OfficerStatus = "on_leave"
)

func (s OfficerStatus) Valid() bool {
	switch s {
	case OfficerAvailable, OfficerOnMission, OfficerOnLeave:
		return true
	}
	return false
}

type Officer struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"uniqueIndex" json:"user_id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Rank            string         `gorm:"size:50" json:"rank"`
	Status          OfficerStatus  `gorm:"size:20;default:available;index" json:"status"`
	PhoneNumber     string         `gorm:"size:15" json:"phone_number"`
	Specializations StringList     `json:"specializations"`
	LastActive      time.Time      `json:"last_active"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime;index" json:"updated_at"`
}

// BeforeSave touches LastActive on every write; any profile change counts
// as officer activity.
func (o *Officer) BeforeSave(tx *gorm.DB) error {
	o.LastActive = time.Now().UTC()
	return nil
}

func (o *Officer) IsAvailable() bool {
	return o.Status == OfficerAvailable
}
