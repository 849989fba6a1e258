package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dionis36/qrstudio-sub001/internal/models"
	"github.com/dionis36/qrstudio-sub001/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestRecordScan(t *testing.T) {
	h, db := setupTestHandler(t)
	r := setupTestRouter(h)

	qr := createQr(t, h, "owner-1", models.TypeURL,
		`{"url_details":{"destination_url":"https://example.com"}}`)

	t.Run("Created With Body", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"country": "Norway",
			"city":    "Oslo",
			"device":  "Mobile",
			"os":      "Android",
			"browser": "Firefox 128",
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/analytics/scan/"+qr.Shortcode, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				ID uint `json:"id"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotZero(t, resp.Data.ID)

		var scan models.Scan
		assert.NoError(t, db.First(&scan, resp.Data.ID).Error)
		assert.Equal(t, "Norway", scan.Country)
		assert.Equal(t, "Firefox 128", scan.Browser)
	})

	t.Run("Created Without Body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/analytics/scan/"+qr.Shortcode, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Unknown Shortcode", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/analytics/scan/missing0", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("Inactive Shortcode", func(t *testing.T) {
		paused := createQr(t, h, "owner-1", models.TypeURL,
			`{"url_details":{"destination_url":"https://example.com"}}`)
		inactive := false
		h.qrService.Update("owner-1", paused.ID, services.UpdateQrDTO{IsActive: &inactive})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/analytics/scan/"+paused.Shortcode, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var count int64
		db.Model(&models.Scan{}).Where("qr_code_id = ?", paused.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/analytics/scan/"+qr.Shortcode, bytes.NewReader([]byte(`{not json`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
