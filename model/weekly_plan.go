// api/model/weekly_plan.go
package model

import "time"

type PlanType string

const (
	PlanOfficer  PlanType = "officer"
	PlanSergeant PlanType = "sergeant"
)

func (t PlanType) Valid() bool {
	return t == PlanOfficer || t == PlanSergeant
}

type WeeklyPlan struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PhotoPath     string    `gorm:"size:512" json:"photo_path"`
	WeekStartDate time.Time `json:"week_start_date"`
	WeekEndDate   time.Time `json:"week_end_date"`
	PlanType      PlanType  `gorm:"size:10" json:"plan_type"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedByID   uint      `json:"created_by"`
	IsActive      bool      `gorm:"default:true;index" json:"is_active"`
	FileHash      string    `gorm:"size:64" json:"file_hash"` // For integrity check
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
