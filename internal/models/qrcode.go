package models

import (
	"encoding/json"
	"time"
)

// QrCode payload kinds. The redirect core only cares about TypeURL; the rest
// are passed through opaquely to the frontend.
const (
	TypeURL   = "url"
	TypeVCard = "vcard"
	TypeMenu  = "menu"
	TypeText  = "text"
	TypeWifi  = "wifi"
	TypeFile  = "file"
	TypeEvent = "event"
)

type QrCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   string    `gorm:"not null;size:64;index" json:"owner_id"`
	Name      string    `gorm:"size:255" json:"name"`
	Shortcode string    `gorm:"unique;not null;size:8;index" json:"shortcode"`
	Type      string    `gorm:"not null;size:20" json:"type"`
	Payload   string    `gorm:"type:text" json:"payload"` // Stored as JSON string
	Design    string    `gorm:"type:text" json:"design"`  // Opaque rendering config
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Scans []Scan `gorm:"foreignKey:QrCodeID;constraint:OnDelete:CASCADE" json:"scans,omitempty"`
}

func (QrCode) TableName() string {
	return "qr_codes"
}

// URLDetails is the narrow view of the payload the redirect path reads for
// type=url codes. Everything else in the payload stays opaque.
type URLDetails struct {
	DestinationURL string `json:"destination_url"`
}

type RedirectSettings struct {
	ShowPreview *bool `json:"show_preview"`
}

type payloadView struct {
	URLDetails       *URLDetails       `json:"url_details"`
	RedirectSettings *RedirectSettings `json:"redirect_settings"`
}

// RedirectView decodes only the fields the resolver needs. A malformed or
// partial payload yields nil views, never an error: the resolver fails open
// to the landing page.
func (q *QrCode) RedirectView() (*URLDetails, *RedirectSettings) {
	if q.Payload == "" {
		return nil, nil
	}
	var view payloadView
	if err := json.Unmarshal([]byte(q.Payload), &view); err != nil {
		return nil, nil
	}
	return view.URLDetails, view.RedirectSettings
}
