package layout

import (
	"fmt"
	"math"
	"strings"
)

// Supported input ranges. Values outside them produce sheets that are
// either unprintable or unreadable, so Validate rejects them up front.
const (
	MinLabelSideMM = 30.0
	MaxLabelSideMM = 150.0
	MinMarginMM    = 5.0
	MaxMarginMM    = 25.0
	MinFontPt      = 6.0
	MaxFontPt      = 36.0
)

// ECLevel selects the QR error-correction level.
type ECLevel int

const (
	ECLow ECLevel = iota
	ECMedium
	ECQuartile
	ECHigh
)

// String returns the conventional single-letter name of the level.
func (l ECLevel) String() string {
	switch l {
	case ECLow:
		return "L"
	case ECQuartile:
		return "Q"
	case ECHigh:
		return "H"
	default:
		return "M"
	}
}

// ParseECLevel accepts the single-letter level names case-insensitively.
// The empty string maps to the default level M.
func ParseECLevel(s string) (ECLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return ECLow, nil
	case "", "M":
		return ECMedium, nil
	case "Q":
		return ECQuartile, nil
	case "H":
		return ECHigh, nil
	default:
		return ECMedium, fmt.Errorf("unknown error-correction level %q", s)
	}
}

// Config carries every knob a run needs: label geometry, typography,
// element toggles and the raster scale. The zero value is not usable;
// start from DefaultConfig and override fields.
type Config struct {
	LabelWidthMM  float64 `json:"labelWidthMM"`
	LabelHeightMM float64 `json:"labelHeightMM"`
	PageMarginMM  float64 `json:"pageMarginMM"`

	SKUFontPt  float64 `json:"skuFontPt"`
	NameFontPt float64 `json:"nameFontPt"`

	ShowLogo    bool `json:"showLogo"`
	ShowQR      bool `json:"showQR"`
	ShowPhoto   bool `json:"showPhoto"`
	ShowBarcode bool `json:"showBarcode"`

	// CutLines strokes the grid boundaries on every page as cutting
	// guides. The lines sit on top of the label edges, so they stay
	// visible against the white bitmaps.
	CutLines bool `json:"cutLines"`

	EC ECLevel `json:"ecLevel"`

	// PixelsPerMM is the raster scale for label bitmaps. It changes only
	// how sharp the output is, never the printed geometry: every offset
	// inside a label is specified in mm and multiplied by this factor.
	PixelsPerMM float64 `json:"pixelsPerMM"`

	// Parallel renders labels on a fixed pool of Workers goroutines.
	// Placement order is by record index either way.
	Parallel bool `json:"parallel"`
	Workers  int  `json:"workers"`
}

// DefaultConfig returns the stock 60x80 mm setup with every element on.
func DefaultConfig() Config {
	return Config{
		LabelWidthMM:  60,
		LabelHeightMM: 80,
		PageMarginMM:  10,
		SKUFontPt:     12,
		NameFontPt:    10,
		ShowLogo:      true,
		ShowQR:        true,
		ShowPhoto:     true,
		ShowBarcode:   true,
		EC:            ECMedium,
		PixelsPerMM:   4,
		Workers:       4,
	}
}

// Validate rejects configurations outside the supported ranges. Callers
// must not start rendering from an invalid config; these errors are never
// recoverable mid-run.
func (c Config) Validate() error {
	inRange := func(name string, v, lo, hi float64) error {
		if v < lo || v > hi {
			return fmt.Errorf("%s %.4g out of range [%.4g, %.4g]", name, v, lo, hi)
		}
		return nil
	}
	if err := inRange("label width (mm)", c.LabelWidthMM, MinLabelSideMM, MaxLabelSideMM); err != nil {
		return err
	}
	if err := inRange("label height (mm)", c.LabelHeightMM, MinLabelSideMM, MaxLabelSideMM); err != nil {
		return err
	}
	if err := inRange("page margin (mm)", c.PageMarginMM, MinMarginMM, MaxMarginMM); err != nil {
		return err
	}
	if err := inRange("sku font (pt)", c.SKUFontPt, MinFontPt, MaxFontPt); err != nil {
		return err
	}
	if err := inRange("name font (pt)", c.NameFontPt, MinFontPt, MaxFontPt); err != nil {
		return err
	}
	if c.EC < ECLow || c.EC > ECHigh {
		return fmt.Errorf("unknown error-correction level %d", int(c.EC))
	}
	if c.PixelsPerMM <= 0 {
		return fmt.Errorf("pixels per mm must be positive, got %.4g", c.PixelsPerMM)
	}
	if c.Parallel && c.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.Workers)
	}
	return nil
}

// LabelPx reports the pixel size of one label bitmap at the configured
// scale.
func (c Config) LabelPx() (w, h int) {
	return int(math.Round(c.LabelWidthMM * c.PixelsPerMM)),
		int(math.Round(c.LabelHeightMM * c.PixelsPerMM))
}

// PxPerPt converts a font size in points to pixels at the configured
// scale, going through millimeters so the on-paper size stays fixed.
func (c Config) PxPerPt(pt float64) float64 {
	return pt * PtToMm * c.PixelsPerMM
}
