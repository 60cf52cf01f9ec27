package label

import (
	"testing"

	"github.com/boombuler/barcode"

	"labelpress/layout"
)

// TestQRImageSize verifies the symbol comes back as the requested
// square regardless of content length.
func TestQRImageSize(t *testing.T) {
	for _, text := range []string{"https://example.com/a", "https://example.com/very/long/path?sku=ABC-123456&campaign=spring"} {
		img, err := qrImage(text, layout.ECMedium, 112)
		if err != nil {
			t.Fatalf("qrImage(%q): %v", text, err)
		}
		b := img.Bounds()
		if b.Dx() != 112 || b.Dy() != 112 {
			t.Fatalf("qrImage(%q): want 112x112, got %dx%d", text, b.Dx(), b.Dy())
		}
	}
}

// TestQRImageAllLevels verifies every error-correction level encodes.
func TestQRImageAllLevels(t *testing.T) {
	for _, l := range []layout.ECLevel{layout.ECLow, layout.ECMedium, layout.ECQuartile, layout.ECHigh} {
		if _, err := qrImage("https://example.com", l, 100); err != nil {
			t.Fatalf("level %v: %v", l, err)
		}
	}
}

// TestQRContentRoundTrip verifies the scaled symbol still carries the
// exact URL it was asked to encode.
func TestQRContentRoundTrip(t *testing.T) {
	const link = "https://example.com/p/123"
	img, err := qrImage(link, layout.ECHigh, 120)
	if err != nil {
		t.Fatalf("qrImage: %v", err)
	}
	bc, ok := img.(barcode.Barcode)
	if !ok {
		t.Fatalf("scaled qr does not expose its content")
	}
	if got := bc.Content(); got != link {
		t.Fatalf("qr content: want %q, got %q", link, got)
	}
}

// TestBarcodeImageSymbology verifies the literal encoding rule: EAN-13
// only for 12 or 13 digits with a valid checksum, Code 128 for
// everything else, and no padding or truncation anywhere.
func TestBarcodeImageSymbology(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"123456789012", true},  // 12 digits, checksum appended by the encoder
		{"4006381333931", true}, // 13 digits, valid checksum
		{"4006381333932", true}, // bad checksum falls back to code128
		{"12345678", true},      // 8 digits stay code128, never zero-filled
		{"ABC-123", true},       // alphanumeric code128
		{"", false},             // nothing to encode
	}
	for _, c := range cases {
		img, err := barcodeImage(c.value, 204, 40)
		if c.ok != (err == nil) {
			t.Fatalf("barcodeImage(%q): unexpected error state: %v", c.value, err)
		}
		if !c.ok {
			continue
		}
		b := img.Bounds()
		if b.Dx() != 204 || b.Dy() != 40 {
			t.Fatalf("barcodeImage(%q): want 204x40, got %dx%d", c.value, b.Dx(), b.Dy())
		}
	}
}

// TestBarcodeContentNeverAltered pins the literal-encoding rule on the
// carried value: Code 128 symbols hold the input verbatim and a full
// EAN-13 value survives unchanged.
func TestBarcodeContentNeverAltered(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"12345678", "12345678"},           // short digits stay code128, never zero-filled
		{"ABC-123", "ABC-123"},             // alphanumeric code128
		{"4006381333931", "4006381333931"}, // 13-digit ean kept verbatim
	}
	for _, c := range cases {
		img, err := barcodeImage(c.value, 204, 40)
		if err != nil {
			t.Fatalf("barcodeImage(%q): %v", c.value, err)
		}
		bc, ok := img.(barcode.Barcode)
		if !ok {
			t.Fatalf("scaled barcode does not expose its content")
		}
		if got := bc.Content(); got != c.want {
			t.Fatalf("barcodeImage(%q): content %q, want %q", c.value, got, c.want)
		}
	}
}

// TestIsDigits covers the symbology gate.
func TestIsDigits(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0123456789", true},
		{"", false},
		{"12a4", false},
		{"12 34", false},
		{"１２３", false}, // full-width digits are not digits here
	}
	for _, c := range cases {
		if got := isDigits(c.in); got != c.want {
			t.Fatalf("isDigits(%q): want %v, got %v", c.in, c.want, got)
		}
	}
}
