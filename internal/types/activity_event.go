package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityEvent records a mutation for audit views. Writes are
// best-effort; a failed event never fails the mutation that produced it.
type ActivityEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string         `gorm:"type:char(24);index;not null" json:"userId"`
	Action     string         `gorm:"not null;column:action" json:"action"`
	EntityType string         `gorm:"not null;column:entity_type" json:"entityType"`
	EntityID   string         `gorm:"column:entity_id" json:"entityId"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"createdAt"`
}

func (ActivityEvent) TableName() string {
	return "activity_event"
}
