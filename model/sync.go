// api/model/sync.go
package model

import "time"

// EntityType enumerates the entity kinds the sync gateway understands.
// Unknown names are rejected up front instead of being resolved through a
// runtime string-to-model lookup.
type EntityType string

const (
	EntityTasks    EntityType = "tasks"
	EntityOrders   EntityType = "orders"
	EntityOfficers EntityType = "officers"
)

func (t EntityType) Valid() bool {
	switch t {
	case EntityTasks, EntityOrders, EntityOfficers:
		return true
	}
	return false
}

// SyncStatus tracks per-entity sync bookkeeping. It is persisted for
// client-side tooling only; the pull/push handlers never consult it.
type SyncStatus struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EntityType   string    `gorm:"size:50;uniqueIndex:idx_sync_entity" json:"entity_type"`
	EntityID     string    `gorm:"size:64;uniqueIndex:idx_sync_entity" json:"entity_id"`
	LastSync     time.Time `json:"last_sync"`
	IsSynced     bool      `gorm:"default:false" json:"is_synced"`
	SyncAttempts int       `gorm:"default:0" json:"sync_attempts"`
	ErrorMessage string    `gorm:"type:text" json:"error_message"`
	Metadata     JSONMap   `json:"metadata"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type SyncOperation string

const (
	SyncCreate SyncOperation = "create"
	SyncUpdate SyncOperation = "update"
	SyncDelete SyncOperation = "delete"
)

// SyncQueue holds queued offline changes, referenced by the same tagged
// (kind, id) pair used for notification refs.
type SyncQueue struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Ref          Ref           `gorm:"embedded;embeddedPrefix:ref_" json:"ref"`
	SyncType     SyncOperation `gorm:"size:10" json:"sync_type"`
	Data         JSONMap       `json:"data"`
	Priority     int           `gorm:"default:0" json:"priority"`
	Attempts     int           `gorm:"default:0" json:"attempts"`
	LastAttempt  *time.Time    `json:"last_attempt,omitempty"`
	ErrorMessage string        `gorm:"type:text" json:"error_message"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// PullRequest is the body of POST /sync/pull.
type PullRequest struct {
	LastSync    string   `json:"last_sync"`
	EntityTypes []string `json:"entity_types"`
}

// PullResponse carries full object state for everything updated after the
// requested watermark.
type PullResponse struct {
	LastSync time.Time   `json:"last_sync"`
	Updates  PullUpdates `json:"updates"`
}

type PullUpdates struct {
	Tasks    []Task    `json:"tasks"`
	Orders   []Order   `json:"orders"`
	Officers []Officer `json:"officers"`
}

// PushRequest maps entity type names to partial payloads, applied in order.
type PushRequest struct {
	Changes map[string][]map[string]interface{} `json:"changes"`
}

// PushResult reports per-item outcomes; the request as a whole always
// succeeds even when individual items fail.
type PushResult struct {
	Success []PushItem `json:"success"`
	Failed  []PushItem `json:"failed"`
}

type PushItem struct {
	Type  string      `json:"type"`
	ID    interface{} `json:"id,omitempty"`
	Error string      `json:"error,omitempty"`
}
