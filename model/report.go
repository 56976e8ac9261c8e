// api/model/report.go
package model

import "time"

type ReportStatus string

const (
	ReportPending       ReportStatus = "pending"
	ReportApproved      ReportStatus = "approved"
	ReportRejected      ReportStatus = "rejected"
	ReportNeedsRevision ReportStatus = "needs_revision"
	ReportArchived      ReportStatus = "archived"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportApproved, ReportRejected, ReportNeedsRevision, ReportArchived:
		return true
	}
	return false
}

type Report struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Title        string       `gorm:"size:100;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	ImagePath    string       `gorm:"size:512" json:"image_path"`
	OfficerID    uint         `gorm:"index" json:"officer"`
	Officer      *Officer     `gorm:"foreignKey:OfficerID" json:"officer_detail,omitempty"`
	Status       ReportStatus `gorm:"size:20;default:pending;index" json:"status"`
	ReviewedByID *uint        `json:"reviewed_by,omitempty"`
	ReviewedBy   *User        `gorm:"foreignKey:ReviewedByID" json:"reviewed_by_detail,omitempty"`
	ReviewedAt   *time.Time   `json:"reviewed_at,omitempty"`
	Feedback     string       `gorm:"type:text" json:"feedback"`
	AwardPoints  int          `gorm:"default:0" json:"award_points"`
	SubmittedAt  time.Time    `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	Attachments []ReportAttachment `gorm:"foreignKey:ReportID" json:"attachments,omitempty"`
}

type ReportAttachment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReportID   uint      `gorm:"index" json:"report_id"`
	FilePath   string    `gorm:"size:512" json:"file_path"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
