// api/model/notification.go
package model

import "time"

type NotificationType string

const (
	NotificationTask   NotificationType = "task"
	NotificationOrder  NotificationType = "order"
	NotificationAlert  NotificationType = "alert"
	NotificationSystem NotificationType = "system"
	NotificationUrgent NotificationType = "urgent"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTask, NotificationOrder, NotificationAlert, NotificationSystem, NotificationUrgent:
		return true
	}
	return false
}

// RefKind names the entity a notification points at. A tagged (kind, id)
// pair keeps the lookup explicit without a polymorphic foreign key.
type RefKind string

const (
	RefTask     RefKind = "task"
	RefOrder    RefKind = "order"
	RefOfficer  RefKind = "officer"
	RefCircular RefKind = "circular"
	RefReport   RefKind = "report"
)

// Ref is the tagged union replacing the polymorphic foreign key. ID is a
// string because circulars use UUIDs while the other kinds use integers.
type Ref struct {
	Kind RefKind `gorm:"size:20" json:"kind,omitempty"`
	ID   string  `gorm:"size:64" json:"id,omitempty"`
}

type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"index:idx_recipient_created" json:"recipient"`
	Type        NotificationType `gorm:"size:20;default:system;index" json:"type"`
	Title       string           `gorm:"size:255" json:"title"`
	Body        string           `gorm:"type:text" json:"body"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	Priority    int              `gorm:"default:0;index" json:"priority"`
	Related     Ref              `gorm:"embedded;embeddedPrefix:related_" json:"related,omitempty"`
	Metadata    JSONMap          `json:"metadata"`
	CreatedAt   time.Time        `gorm:"autoCreateTime;index:idx_recipient_created" json:"created_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// MarkRead sets ReadAt once; calling it on an already-read notification is a
// no-op. Returns true when the state changed.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.ReadAt != nil {
		return false
	}
	n.ReadAt = &now
	return true
}

// MarkUnread is the explicit reset of the read state.
func (n *Notification) MarkUnread() bool {
	if n.ReadAt == nil {
		return false
	}
	n.ReadAt = nil
	return true
}
