package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminAction is one row of the local audit trail: exactly one record per
// successful upstream mutation dispatched from the dashboard.
type AdminAction struct {
	gorm.Model

	RefID    string         `gorm:"size:36;uniqueIndex" json:"ref_id"`
	Actor    string         `gorm:"size:64;index" json:"actor"`
	Action   string         `gorm:"size:32;index" json:"action"`
	Entity   string         `gorm:"size:32;index" json:"entity"`
	EntityID int64          `gorm:"index" json:"entity_id"`
	Payload  datatypes.JSON `json:"payload"`
}
