package services

import (
	"context"
	"errors"
	"time"

	"github.com/dionis36/qrstudio-sub001/internal/models"
	"github.com/dionis36/qrstudio-sub001/pkg/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CreateQrDTO struct {
	Name      string
	Type      string
	Payload   string
	Design    string
	IPAddress string // For Audit Log
}

type UpdateQrDTO struct {
	Name      *string
	Payload   *string
	Design    *string
	IsActive  *bool
	IPAddress string
}

type QRCodeService struct {
	db            *gorm.DB
	rdb           *redis.Client
	auditService  *AuditService
	codeGenerator func(int) string
}

func NewQRCodeService(db *gorm.DB, rdb *redis.Client, auditService *AuditService) *QRCodeService {
	return &QRCodeService{
		db:            db,
		rdb:           rdb,
		auditService:  auditService,
		codeGenerator: utils.GenerateShortcode,
	}
}

// Create inserts a QrCode with a freshly allocated shortcode. Allocation
// pre-checks the store, then relies on the unique index: a duplicate-key
// error at insert time means we lost a race and generation retries. The loop
// is unbounded; at 64^8 possible codes a second collision in a row is not a
// practical concern.
func (s *QRCodeService) Create(ownerID string, dto CreateQrDTO) (*models.QrCode, error) {
	if dto.Type == "" {
		return nil, ErrValidation
	}

	newQr := models.QrCode{
		OwnerID:   ownerID,
		Name:      dto.Name,
		Type:      dto.Type,
		Payload:   dto.Payload,
		Design:    dto.Design,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	for {
		code := s.codeGenerator(utils.ShortcodeLength)

		var existing models.QrCode
		err := s.db.Where("shortcode = ?", code).First(&existing).Error
		if err == nil {
			continue // Taken, try again
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		newQr.Shortcode = code
		err = s.db.Create(&newQr).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the check-then-insert race; regenerate
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	s.auditService.LogAction(ownerID, "CREATE_QR", newQr.Shortcode, map[string]interface{}{
		"type": dto.Type,
		"name": dto.Name,
	}, dto.IPAddress)

	return &newQr, nil
}

func (s *QRCodeService) Get(ownerID string, id uint) (*models.QrCode, error) {
	var qr models.QrCode
	err := s.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&qr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &qr, nil
}

func (s *QRCodeService) List(ownerID string) ([]models.QrCode, error) {
	var qrs []models.QrCode
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at desc").Find(&qrs).Error; err != nil {
		return nil, err
	}
	return qrs, nil
}

// Update mutates name/payload/design/isActive. Shortcode and owner are
// immutable. The redirect cache entry is invalidated so the next hit sees
// fresh state.
func (s *QRCodeService) Update(ownerID string, id uint, dto UpdateQrDTO) (*models.QrCode, error) {
	qr, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Payload != nil {
		updates["payload"] = *dto.Payload
	}
	if dto.Design != nil {
		updates["design"] = *dto.Design
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		if err := s.db.Model(qr).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.invalidateCache(qr.Shortcode)
		if err := s.db.First(qr, qr.ID).Error; err != nil {
			return nil, err
		}
	}

	s.auditService.LogAction(ownerID, "UPDATE_QR", qr.Shortcode, updates, dto.IPAddress)

	return qr, nil
}

// Delete hard-deletes the record; scans cascade at the store level. The
// freed shortcode string is never favored by the generator, so stale links
// cannot resurrect onto a different record.
func (s *QRCodeService) Delete(ownerID string, id uint, ip string) error {
	qr, err := s.Get(ownerID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(qr).Error; err != nil {
		return err
	}
	s.invalidateCache(qr.Shortcode)

	s.auditService.LogAction(ownerID, "DELETE_QR", qr.Shortcode, nil, ip)

	return nil
}

func (s *QRCodeService) invalidateCache(shortcode string) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(context.Background(), "qr:"+shortcode)
}
