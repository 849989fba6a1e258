package handlers

import (
	"log/slog"

	"github.com/dionis36/qrstudio-sub001/internal/config"
	"github.com/dionis36/qrstudio-sub001/internal/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	cfg              config.Config
	logger           *slog.Logger
	db               *gorm.DB
	rdb              *redis.Client
	resolver         *services.ResolverService
	scanService      *services.ScanService
	analyticsService *services.AnalyticsService
	qrService        *services.QRCodeService
	qrImageService   *services.QRImageService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	resolver *services.ResolverService,
	scanService *services.ScanService,
	analyticsService *services.AnalyticsService,
	qrService *services.QRCodeService,
	qrImageService *services.QRImageService,
) *Handler {
	return &Handler{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		rdb:              rdb,
		resolver:         resolver,
		scanService:      scanService,
		analyticsService: analyticsService,
		qrService:        qrService,
		qrImageService:   qrImageService,
	}
}
