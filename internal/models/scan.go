package models

import (
	"time"
)

type Scan struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QrCodeID   uint      `gorm:"not null;index" json:"qr_code_id"`
	ScannedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"scanned_at"`
	Country    string    `gorm:"size:100" json:"country"`
	City       string    `gorm:"size:100" json:"city"`
	DeviceType string    `gorm:"size:50" json:"device_type"`
	OS         string    `gorm:"size:100" json:"os"`
	Browser    string    `gorm:"size:100" json:"browser"`
	Referrer   string    `gorm:"size:255" json:"referrer"`
	IPHash     string    `gorm:"size:64" json:"-"` // SHA-256 hex, never the raw address
}

func (Scan) TableName() string {
	return "scans"
}
