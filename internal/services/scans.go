package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dionis36/qrstudio-sub001/internal/models"
	"github.com/dionis36/qrstudio-sub001/pkg/utils"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

// ScanEvent carries raw request metadata from the edge to the recorder. The
// raw address and user agent live only here; the persisted row gets the hash
// and the classified fields.
type ScanEvent struct {
	QrCodeID  uint
	Shortcode string
	IPAddress string
	UserAgent string
	Referrer  string
	Country   string
	City      string
	Device    string
	OS        string
	Browser   string
	ScannedAt time.Time
}

type ScanService struct {
	db           *gorm.DB
	logger       *slog.Logger
	scanChannel  chan ScanEvent
	geoIPService *GeoIPService
}

func NewScanService(db *gorm.DB, logger *slog.Logger, geoIPService *GeoIPService, queueSize int) *ScanService {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &ScanService{
		db:           db,
		logger:       logger,
		scanChannel:  make(chan ScanEvent, queueSize),
		geoIPService: geoIPService,
	}
}

// Start drains the scan queue on a background context. Write failures are
// logged and dropped; nothing upstream ever waits on this loop.
func (s *ScanService) Start(ctx context.Context) {
	s.logger.Info("Scan worker starting")
	for {
		select {
		case event := <-s.scanChannel:
			scan := s.buildScan(event)
			if err := s.db.Create(&scan).Error; err != nil {
				s.logger.Error("Failed to record scan", "shortcode", event.Shortcode, "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Scan worker stopping")
			return
		}
	}
}

// RecordAsync enqueues a scan from the redirect path. Non-blocking: when the
// queue is full the event is dropped with a warning rather than delaying the
// redirect.
func (s *ScanService) RecordAsync(event ScanEvent) {
	if event.ScannedAt.IsZero() {
		event.ScannedAt = time.Now().UTC()
	}
	select {
	case s.scanChannel <- event:
		// Sent
	default:
		s.logger.Warn("Scan channel full, dropping scan event", "shortcode", event.Shortcode)
	}
}

// Record resolves the shortcode itself and inserts synchronously. Used by
// the public beacon endpoint, which needs the created id in its response and
// must report unknown shortcodes. Deactivated codes are rejected so their
// counters stay frozen, same as on the redirect path.
func (s *ScanService) Record(shortcode string, event ScanEvent) (*models.Scan, error) {
	var qr models.QrCode
	err := s.db.Where("shortcode = ?", shortcode).First(&qr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !qr.IsActive {
		return nil, ErrInactive
	}

	event.QrCodeID = qr.ID
	event.Shortcode = shortcode
	if event.ScannedAt.IsZero() {
		event.ScannedAt = time.Now().UTC()
	}

	scan := s.buildScan(event)
	if err := s.db.Create(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (s *ScanService) buildScan(event ScanEvent) models.Scan {
	scan := models.Scan{
		QrCodeID:   event.QrCodeID,
		ScannedAt:  event.ScannedAt,
		Country:    event.Country,
		City:       event.City,
		DeviceType: event.Device,
		OS:         event.OS,
		Browser:    event.Browser,
		Referrer:   event.Referrer,
	}

	if event.UserAgent != "" {
		ua := user_agent.New(event.UserAgent)
		if scan.Browser == "" {
			name, version := ua.Browser()
			scan.Browser = name + " " + version
		}
		if scan.OS == "" {
			scan.OS = ua.OS()
		}
		if scan.DeviceType == "" {
			if ua.Mobile() {
				scan.DeviceType = "Mobile"
			} else if ua.Bot() {
				scan.DeviceType = "Bot"
			} else {
				scan.DeviceType = "Desktop"
			}
		}
	}

	if scan.Country == "" && s.geoIPService != nil && event.IPAddress != "" {
		country, city := s.geoIPService.GetLocation(event.IPAddress)
		scan.Country = country
		if scan.City == "" {
			scan.City = city
		}
	}

	if event.IPAddress != "" {
		scan.IPHash = utils.HashIP(event.IPAddress)
	}

	return scan
}
