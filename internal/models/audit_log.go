package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   string    `gorm:"size:64;index" json:"owner_id"`
	Action    string    `gorm:"size:50;not null" json:"action"` // e.g., "CREATE_QR", "UPDATE_QR", "DELETE_QR"
	EntityID  string    `gorm:"size:50" json:"entity_id"`       // Shortcode of the affected QR code
	Details   string    `gorm:"type:text" json:"details"`       // JSON or text description
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
