package zatca

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the QR image edge in pixels.
const DefaultSize = 256

// PNG renders payload as a QR code image.
func PNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("zatca: render qr: %w", err)
	}
	return png, nil
}

// DataURI renders payload as a QR code and returns it as a PNG data URI
// suitable for embedding in HTML or PDF templates.
func DataURI(payload string, size int) (string, error) {
	png, err := PNG(payload, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
