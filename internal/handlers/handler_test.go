package handlers

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/dionis36/qrstudio-sub001/internal/config"
	"github.com/dionis36/qrstudio-sub001/internal/models"
	"github.com/dionis36/qrstudio-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testFrontendBase = "https://app.example.test"

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()

	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.QrCode{}, &models.Scan{}, &models.AuditLog{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		AuthHeader:      "x-user-id",
		FrontendBaseURL: testFrontendBase,
		PublicBaseURL:   "https://qr.example.test",
		CORSOrigins:     "http://localhost:3000",
	}

	audit := services.NewAuditService(db, logger)
	geoIP := services.NewGeoIPService(cfg, logger)
	scans := services.NewScanService(db, logger, geoIP, 100)
	analytics := services.NewAnalyticsService(db, logger)
	qrs := services.NewQRCodeService(db, nil, audit)
	resolver := services.NewResolverService(db, nil, logger, scans, cfg.FrontendBaseURL)
	images := services.NewQRImageService()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go scans.Start(ctx)

	h := NewHandler(cfg, logger, db, nil, resolver, scans, analytics, qrs, images)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}
