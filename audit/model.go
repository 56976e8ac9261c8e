// api/audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// MutationLog records a single entity mutation, including those applied
// through the sync gateway.
type MutationLog struct {
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id"`
	Action        string          `json:"action"` // create, update, delete, push
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	Source        string          `json:"source"` // rest or sync
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}
