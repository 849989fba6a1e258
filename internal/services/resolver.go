package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dionis36/qrstudio-sub001/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Outcome string

const (
	OutcomeNotFound Outcome = "not_found"
	OutcomeInactive Outcome = "inactive"
	OutcomeInstant  Outcome = "instant_redirect"
	OutcomeLanding  Outcome = "landing_redirect"
)

// Resolution is the decision for one inbound shortcode hit. Location is set
// for every redirecting outcome.
type Resolution struct {
	Outcome  Outcome
	Location string
	QrCodeID uint
}

type ResolverService struct {
	db           *gorm.DB
	rdb          *redis.Client
	logger       *slog.Logger
	scanService  *ScanService
	frontendBase string
}

func NewResolverService(db *gorm.DB, rdb *redis.Client, logger *slog.Logger, scanService *ScanService, frontendBase string) *ResolverService {
	return &ResolverService{
		db:           db,
		rdb:          rdb,
		logger:       logger,
		scanService:  scanService,
		frontendBase: frontendBase,
	}
}

// Resolve maps a shortcode hit to a redirect decision and, for active codes,
// fires the scan recording. The scan enqueue happens before the caller
// writes its response but is never awaited: a slow or failing analytics
// write cannot slow down or break the redirect.
func (s *ResolverService) Resolve(ctx context.Context, shortcode string, meta ScanEvent) (*Resolution, error) {
	qr, err := s.lookup(ctx, shortcode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Resolution{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	if !qr.IsActive {
		// Distinct from NotFound: the landing page explains the code was
		// disabled, not that it never existed.
		s.logger.Info("Resolved inactive qr code", "shortcode", shortcode)
		return &Resolution{
			Outcome:  OutcomeInactive,
			Location: s.landingURL(shortcode),
			QrCodeID: qr.ID,
		}, nil
	}

	meta.QrCodeID = qr.ID
	meta.Shortcode = shortcode
	s.scanService.RecordAsync(meta)

	if qr.Type == models.TypeURL {
		details, settings := qr.RedirectView()
		if details != nil && details.DestinationURL != "" &&
			settings != nil && settings.ShowPreview != nil && !*settings.ShowPreview {
			return &Resolution{
				Outcome:  OutcomeInstant,
				Location: details.DestinationURL,
				QrCodeID: qr.ID,
			}, nil
		}
	}

	// Missing or malformed redirect settings fail open to the landing page.
	return &Resolution{
		Outcome:  OutcomeLanding,
		Location: s.landingURL(shortcode),
		QrCodeID: qr.ID,
	}, nil
}

func (s *ResolverService) landingURL(shortcode string) string {
	return s.frontendBase + "/r/" + shortcode
}

// lookup reads through the redis cache. Mutations invalidate the key, so a
// cached entry is never staler than the last edit.
func (s *ResolverService) lookup(ctx context.Context, shortcode string) (*models.QrCode, error) {
	cacheKey := "qr:" + shortcode

	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var qr models.QrCode
			if err := json.Unmarshal([]byte(val), &qr); err == nil {
				return &qr, nil
			}
		}
	}

	var qr models.QrCode
	if err := s.db.Where("shortcode = ?", shortcode).First(&qr).Error; err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(qr); err == nil {
			s.rdb.Set(ctx, cacheKey, data, 10*time.Minute)
		}
	}

	return &qr, nil
}
