package services

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/dionis36/qrstudio-sub001/internal/models"

	"gorm.io/gorm"
)

type DayCount struct {
	Date  string `json:"date"` // UTC calendar date, YYYY-MM-DD
	Count int64  `json:"count"`
}

type BreakdownItem struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type AnalyticsReport struct {
	TotalScans       int64           `json:"total_scans"`
	ScansByDay       []DayCount      `json:"scans_by_day"`
	Devices          []BreakdownItem `json:"devices"`
	OperatingSystems []BreakdownItem `json:"operating_systems"`
	Browsers         []BreakdownItem `json:"browsers"`
	Countries        []BreakdownItem `json:"countries"`
}

type RecentScan struct {
	ID         uint      `json:"id"`
	QrCodeID   uint      `json:"qr_code_id"`
	ScannedAt  time.Time `json:"scanned_at"`
	Country    string    `json:"country"`
	City       string    `json:"city"`
	DeviceType string    `json:"device_type"`
	OS         string    `json:"os"`
	Browser    string    `json:"browser"`
	Referrer   string    `json:"referrer"`
	QrName     string    `json:"qr_name"`
	QrType     string    `json:"qr_type"`
	Shortcode  string    `json:"shortcode"`
}

type AnalyticsService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAnalyticsService(db *gorm.DB, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{db: db, logger: logger}
}

// GetQrAnalytics aggregates scans for one QR code. The ownership check runs
// first and a foreign owner gets the same ErrNotFound as a missing id, so
// ids cannot be enumerated. Zero scans yields zeros and empty slices.
func (s *AnalyticsService) GetQrAnalytics(ownerID string, qrCodeID uint, from, to *time.Time) (*AnalyticsReport, error) {
	var qr models.QrCode
	err := s.db.Where("id = ? AND owner_id = ?", qrCodeID, ownerID).First(&qr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	scoped := func() *gorm.DB {
		q := s.db.Model(&models.Scan{}).Where("qr_code_id = ?", qrCodeID)
		if from != nil {
			q = q.Where("scanned_at >= ?", *from)
		}
		if to != nil {
			q = q.Where("scanned_at < ?", *to)
		}
		return q
	}

	report := &AnalyticsReport{
		ScansByDay:       []DayCount{},
		Devices:          []BreakdownItem{},
		OperatingSystems: []BreakdownItem{},
		Browsers:         []BreakdownItem{},
		Countries:        []BreakdownItem{},
	}

	if err := scoped().Count(&report.TotalScans).Error; err != nil {
		return nil, err
	}

	// DATE() truncates to the calendar day in both postgres and sqlite;
	// scanned_at is stored in UTC.
	var days []DayCount
	err = scoped().
		Select("CAST(DATE(scanned_at) AS TEXT) as date, count(*) as count").
		Group("DATE(scanned_at)").
		Order("date asc").
		Scan(&days).Error
	if err != nil {
		return nil, err
	}
	if days != nil {
		report.ScansByDay = days
	}

	breakdown := func(column string) ([]BreakdownItem, error) {
		var items []BreakdownItem
		err := scoped().
			Select(column + " as label, count(*) as count").
			Group(column).
			Order("count desc").
			Scan(&items).Error
		if err != nil {
			return nil, err
		}
		return foldUnknown(items), nil
	}

	if report.Devices, err = breakdown("device_type"); err != nil {
		return nil, err
	}
	if report.OperatingSystems, err = breakdown("os"); err != nil {
		return nil, err
	}
	if report.Browsers, err = breakdown("browser"); err != nil {
		return nil, err
	}
	if report.Countries, err = breakdown("country"); err != nil {
		return nil, err
	}

	return report, nil
}

// GetRecentScans returns the newest scans across all of the owner's QR
// codes, joined with the owning code's name/type/shortcode for display.
func (s *AnalyticsService) GetRecentScans(ownerID string, limit int) ([]RecentScan, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	scans := []RecentScan{}
	err := s.db.Table("scans").
		Select("scans.id, scans.qr_code_id, scans.scanned_at, scans.country, scans.city, scans.device_type, scans.os, scans.browser, scans.referrer, qr_codes.name as qr_name, qr_codes.type as qr_type, qr_codes.shortcode").
		Joins("JOIN qr_codes ON qr_codes.id = scans.qr_code_id").
		Where("qr_codes.owner_id = ?", ownerID).
		Order("scans.scanned_at desc").
		Limit(limit).
		Scan(&scans).Error
	if err != nil {
		return nil, err
	}
	return scans, nil
}

// foldUnknown merges empty classification values into an explicit "Unknown"
// bucket and keeps the list sorted descending by count.
func foldUnknown(items []BreakdownItem) []BreakdownItem {
	out := make([]BreakdownItem, 0, len(items))
	var unknown int64
	for _, item := range items {
		if item.Label == "" || item.Label == "Unknown" {
			unknown += item.Count
			continue
		}
		out = append(out, item)
	}
	if unknown > 0 {
		out = append(out, BreakdownItem{Label: "Unknown", Count: unknown})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
