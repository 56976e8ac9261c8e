// api/model/order.go
package model

import "time"

type OrderPriority string

const (
	OrderPriorityNormal OrderPriority = "normal"
	OrderPriorityHigh   OrderPriority = "high"
	OrderPriorityUrgent OrderPriority = "urgent"
)

func (p OrderPriority) Valid() bool {
	switch p {
	case OrderPriorityNormal, OrderPriorityHigh, OrderPriorityUrgent:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                      uint          `gorm:"primaryKey" json:"id"`
	Title                   string        `gorm:"size:200;not null" json:"title"`
	Description             string        `gorm:"type:text" json:"description"`
	CreatedByID             uint          `json:"created_by"`
	AssignedToID            uint          `gorm:"index" json:"assigned_to"`
	AssignedTo              *Officer      `gorm:"foreignKey:AssignedToID;constraint:OnDelete:CASCADE" json:"assigned_to_detail,omitempty"`
	Priority                OrderPriority `gorm:"size:10;default:normal" json:"priority"`
	Status                  OrderStatus   `gorm:"size:20;default:pending;index" json:"status"`
	DueDate                 time.Time     `json:"due_date"`
	IsUrgent                bool          `gorm:"default:false" json:"is_urgent"`
	AcknowledgmentRequired  bool          `gorm:"default:true" json:"acknowledgment_required"`
	AcknowledgedAt          *time.Time    `json:"acknowledged_at,omitempty"`
	CreatedAt               time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt               time.Time     `gorm:"autoUpdateTime;index" json:"updated_at"`
}

// OrderAcknowledgment records an explicit acknowledgment action; it is never
// derived from the order status.
type OrderAcknowledgment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        uint      `gorm:"index" json:"order_id"`
	UserID         uint      `json:"user_id"`
	Comments       string    `gorm:"type:text" json:"comments"`
	AcknowledgedAt time.Time `gorm:"autoCreateTime" json:"acknowledged_at"`
}
