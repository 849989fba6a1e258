package services

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRImageService renders a shortcode's public URL as a scannable image.
// Styling (colors, logos, dot shapes) is the frontend's concern; the design
// document on the QrCode record is never interpreted here.
type QRImageService struct{}

func NewQRImageService() *QRImageService {
	return &QRImageService{}
}

// GeneratePNG encodes the content as a square PNG of the given pixel size.
func (s *QRImageService) GeneratePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

// GenerateSVG encodes the content as a minimal black-on-white SVG.
func (s *QRImageService) GenerateSVG(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", err
	}

	qr.DisableBorder = true
	bitmap := qr.Bitmap()
	size := len(bitmap)

	var sb strings.Builder
	// ViewBox matches module count
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, size, size))
	sb.WriteString(`<rect width="100%" height="100%" fill="#FFFFFF"/>`)
	sb.WriteString(`<path fill="#000000" d="`)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if bitmap[y][x] {
				sb.WriteString(fmt.Sprintf("M%d %dh1v1h-1z ", x, y))
			}
		}
	}
	sb.WriteString(`"/>`)
	sb.WriteString("</svg>")
	return sb.String(), nil
}
