package services

import (
	"context"
	"testing"
	"time"

	"github.com/dionis36/qrstudio-sub001/internal/models"

	"github.com/stretchr/testify/assert"
)

const frontendBase = "https://app.example.com"

func newTestResolver(t *testing.T) (*ResolverService, *QRCodeService, *ScanService) {
	t.Helper()
	db := setupTestDB()
	scanService := NewScanService(db, testLogger(), nil, 10)
	qrService := newTestQRCodeService(db)
	resolver := NewResolverService(db, nil, testLogger(), scanService, frontendBase)
	return resolver, qrService, scanService
}

func TestResolver_NotFound(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), "missing1", ScanEvent{})
	assert.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, res.Outcome)
	assert.Empty(t, res.Location)
}

func TestResolver_Inactive(t *testing.T) {
	resolver, qrService, scanService := newTestResolver(t)

	qr, _ := qrService.Create("owner-a", CreateQrDTO{
		Type:    models.TypeURL,
		Payload: `{"url_details":{"destination_url":"https://example.com"},"redirect_settings":{"show_preview":false}}`,
	})
	inactive := false
	qrService.Update("owner-a", qr.ID, UpdateQrDTO{IsActive: &inactive})

	res, err := resolver.Resolve(context.Background(), qr.Shortcode, ScanEvent{})
	assert.NoError(t, err)

	// Never the destination, even with skip-preview configured
	assert.Equal(t, OutcomeInactive, res.Outcome)
	assert.Equal(t, frontendBase+"/r/"+qr.Shortcode, res.Location)

	// Inactive hits are not counted
	assert.Empty(t, scanService.scanChannel)
}

func TestResolver_InstantRedirect(t *testing.T) {
	resolver, qrService, scanService := newTestResolver(t)

	qr, _ := qrService.Create("owner-a", CreateQrDTO{
		Type:    models.TypeURL,
		Payload: `{"url_details":{"destination_url":"https://example.com/landing?x=1"},"redirect_settings":{"show_preview":false}}`,
	})

	res, err := resolver.Resolve(context.Background(), qr.Shortcode, ScanEvent{IPAddress: "1.2.3.4"})
	assert.NoError(t, err)
	assert.Equal(t, OutcomeInstant, res.Outcome)
	// Destination passed through verbatim
	assert.Equal(t, "https://example.com/landing?x=1", res.Location)
	assert.Equal(t, qr.ID, res.QrCodeID)

	// Scan was enqueued before the decision returned
	assert.Len(t, scanService.scanChannel, 1)
}

func TestResolver_LandingRedirect(t *testing.T) {
	resolver, qrService, _ := newTestResolver(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		qrType  string
		payload string
	}{
		{"Preview Enabled", models.TypeURL, `{"url_details":{"destination_url":"https://example.com"},"redirect_settings":{"show_preview":true}}`},
		{"Settings Absent", models.TypeURL, `{"url_details":{"destination_url":"https://example.com"}}`},
		{"Malformed Payload", models.TypeURL, `{"url_details": broken`},
		{"Missing Destination", models.TypeURL, `{"redirect_settings":{"show_preview":false}}`},
		{"Non URL Type", models.TypeVCard, `{"vcard":{"name":"Jo"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qr, err := qrService.Create("owner-a", CreateQrDTO{Type: tc.qrType, Payload: tc.payload})
			assert.NoError(t, err)

			res, err := resolver.Resolve(ctx, qr.Shortcode, ScanEvent{})
			assert.NoError(t, err)
			assert.Equal(t, OutcomeLanding, res.Outcome)
			assert.Equal(t, frontendBase+"/r/"+qr.Shortcode, res.Location)
		})
	}
}

func TestResolver_ScanRecordedAsync(t *testing.T) {
	resolver, qrService, scanService := newTestResolver(t)

	qr, _ := qrService.Create("owner-a", CreateQrDTO{Type: models.TypeMenu})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scanService.Start(ctx)

	_, err := resolver.Resolve(context.Background(), qr.Shortcode, ScanEvent{
		IPAddress: "198.51.100.20",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0 Safari/537.36",
		Referrer:  "https://social.example.com",
	})
	assert.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	var scan models.Scan
	err = scanService.db.Where("qr_code_id = ?", qr.ID).First(&scan).Error
	assert.NoError(t, err)
	assert.Equal(t, "Desktop", scan.DeviceType)
	assert.Equal(t, "https://social.example.com", scan.Referrer)
	assert.NotEmpty(t, scan.IPHash)
}
