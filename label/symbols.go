package label

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"

	"labelpress/layout"
)

func qrLevel(l layout.ECLevel) qr.ErrorCorrectionLevel {
	switch l {
	case layout.ECLow:
		return qr.L
	case layout.ECQuartile:
		return qr.Q
	case layout.ECHigh:
		return qr.H
	default:
		return qr.M
	}
}

// qrImage encodes text as a QR symbol scaled to a size x size square.
func qrImage(text string, level layout.ECLevel, size int) (image.Image, error) {
	code, err := qr.Encode(text, qrLevel(level), qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("scale qr to %dpx: %w", size, err)
	}
	return scaled, nil
}

// barcodeImage encodes value as a linear barcode stretched to the target
// box. A value of exactly 12 or 13 digits goes out as EAN-13 when the
// checksum allows it; everything else, including EAN rejects, becomes
// Code 128. The value is encoded literally: never padded, never
// truncated.
func barcodeImage(value string, w, h int) (image.Image, error) {
	var code barcode.Barcode
	if isDigits(value) && (len(value) == 12 || len(value) == 13) {
		if ean13, err := ean.Encode(value); err == nil {
			code = ean13
		}
	}
	if code == nil {
		c128, err := code128.Encode(value)
		if err != nil {
			return nil, fmt.Errorf("encode code128: %w", err)
		}
		code = c128
	}
	scaled, err := barcode.Scale(code, w, h)
	if err != nil {
		return nil, fmt.Errorf("scale barcode to %dx%dpx: %w", w, h, err)
	}
	return scaled, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
