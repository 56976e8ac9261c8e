// api/model/circular.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type CircularClassification string

const (
	ClassificationNormal       CircularClassification = "NORMAL"
	ClassificationConfidential CircularClassification = "CONFIDENTIAL"
	ClassificationTopSecret    CircularClassification = "TOP_SECRET"
	ClassificationRestricted   CircularClassification = "RESTRICTED"
)

func (c CircularClassification) Valid() bool {
	switch c {
	case ClassificationNormal, ClassificationConfidential, ClassificationTopSecret, ClassificationRestricted:
		return true
	}
	return false
}

// Circular is a broadcast directive with per-officer acknowledgment
// tracking. Deletion is always a soft delete via IsDeleted.
type Circular struct {
	ID             uuid.UUID              `gorm:"type:char(36);primaryKey" json:"id"`
	CircularNumber string                 `gorm:"size:50;uniqueIndex" json:"circular_number"`
	Title          string                 `gorm:"size:255;not null" json:"title"`
	Content        string                 `gorm:"type:text" json:"content"`
	CreatedByID    uint                   `json:"created_by"`
	Classification CircularClassification `gorm:"size:20;default:NORMAL" json:"classification"`
	ExpiryDate     time.Time              `json:"expiry_date"`
	IsConfidential bool                   `gorm:"default:false" json:"is_confidential"`
	IsDeleted      bool                   `gorm:"default:false;index" json:"is_deleted"`
	Metadata       JSONMap                `json:"metadata"`
	CreatedAt      time.Time              `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time              `gorm:"autoUpdateTime" json:"updated_at"`

	TargetOfficers  []User                   `gorm:"many2many:circular_target_officers" json:"target_officers,omitempty"`
	Acknowledgments []CircularAcknowledgment `gorm:"foreignKey:CircularID" json:"acknowledgments,omitempty"`
	Attachments     []CircularAttachment     `gorm:"foreignKey:CircularID" json:"attachments,omitempty"`
}

func (c *Circular) IsExpired() bool {
	return time.Now().After(c.ExpiryDate)
}

// CanOfficerAccess enforces the circular access invariant: the officer must
// be targeted, and the circular must be neither deleted nor expired.
func (c *Circular) CanOfficerAccess(officerID uint) bool {
	if c.IsDeleted || c.IsExpired() {
		return false
	}
	for _, u := range c.TargetOfficers {
		if u.ID == officerID {
			return true
		}
	}
	return false
}

// CircularAcknowledgment is unique per (circular, officer).
type CircularAcknowledgment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CircularID uuid.UUID `gorm:"type:char(36);uniqueIndex:idx_circular_officer" json:"circular_id"`
	OfficerID  uint      `gorm:"uniqueIndex:idx_circular_officer" json:"officer_id"`
	DeviceInfo string    `gorm:"size:255" json:"device_info"`
	IPAddress  string    `gorm:"size:45" json:"ip_address"`
	Location   string    `gorm:"size:255" json:"location"`
	Timestamp  time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// CircularAttachment stores attachment metadata; the file bytes live in
// external storage and are out of scope here.
type CircularAttachment struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CircularID uuid.UUID `gorm:"type:char(36);index" json:"circular_id"`
	FileName   string    `gorm:"size:255" json:"file_name"`
	FileType   string    `gorm:"size:100" json:"file_type"`
	FileSize   int64     `json:"file_size"`
	FilePath   string    `gorm:"size:512" json:"file_path"`
	ServerURL  string    `gorm:"size:512" json:"server_url,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
