package label

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"labelpress/dataset"
	"labelpress/fonts"
	"labelpress/layout"
)

// Vertical rhythm and element sizing, in millimeters and width/height
// fractions. Keeping these in mm ties the printed layout to the label's
// physical size; the raster scale only multiplies through at draw time.
const (
	topMarginMM     = 1.5
	fallbackTopMM   = 2.5 // cursor start when the logo slot is empty
	elementGapMM    = 1.5
	blockGapMM      = 1.0
	lineLeadingMM   = 0.5
	bottomMarginMM  = 1.5
	barcodeHeightMM = 10.0

	logoWidthFrac      = 0.6
	qrMaxWidthFrac     = 0.6
	qrMaxHeightFrac    = 0.35
	photoMaxWidthFrac  = 0.6
	photoMaxHeightFrac = 0.25
	textWidthFrac      = 0.9
	barcodeWidthFrac   = 0.85
)

// Options carries the optional collaborators of a Renderer.
type Options struct {
	// Logo is stamped on every label. Nil leaves the slot empty.
	Logo image.Image
	// Fetcher resolves per-record photo URLs. Nil disables photos.
	Fetcher *Fetcher
}

// Renderer composes labels for one configuration. It is safe for
// concurrent use: every Render call draws on its own canvas.
type Renderer struct {
	cfg     layout.Config
	logo    image.Image
	fetcher *Fetcher
}

// NewRenderer validates cfg and builds a Renderer. A config rejected
// here would poison every label, so this is the fail-fast point.
func NewRenderer(cfg layout.Config, opts Options) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("label config: %w", err)
	}
	return &Renderer{cfg: cfg, logo: opts.Logo, fetcher: opts.Fetcher}, nil
}

// Render composes the label for one record. The returned Rendered is
// always a complete, printable label; per-element problems are recorded
// in its Elements, not raised.
func (r *Renderer) Render(rec dataset.Record) (*Rendered, error) {
	w, h := r.cfg.LabelPx()
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	out := &Rendered{
		WidthPx:  w,
		HeightPx: h,
		WidthMM:  r.cfg.LabelWidthMM,
		HeightMM: r.cfg.LabelHeightMM,
	}
	c := &composer{r: r, dc: dc, out: out, w: w, h: h}

	cursor := c.logo()
	cursor = c.qr(rec, cursor)
	cursor = c.photo(rec, cursor)

	skuFace, err := fonts.Face(fonts.Bold, r.cfg.PxPerPt(r.cfg.SKUFontPt))
	if err != nil {
		return nil, fmt.Errorf("sku face: %w", err)
	}
	nameFace, err := fonts.Face(fonts.Regular, r.cfg.PxPerPt(r.cfg.NameFontPt))
	if err != nil {
		return nil, fmt.Errorf("name face: %w", err)
	}
	cursor = c.text(ElementSKU, rec.SKU, skuFace, cursor)
	c.text(ElementName, rec.Name, nameFace, cursor)

	c.barcode(rec)

	out.Image = dc.Image()
	return out, nil
}

// composer holds the drawing state for one Render call.
type composer struct {
	r   *Renderer
	dc  *gg.Context
	out *Rendered
	w   int
	h   int
}

func (c *composer) px(mm float64) float64 { return mm * c.r.cfg.PixelsPerMM }

// logo stamps the shared logo at the top, scaled to the logo width
// fraction with its aspect ratio kept. Without a logo the cursor starts
// a little lower, where the first element reads best on a bare label.
func (c *composer) logo() float64 {
	if !c.r.cfg.ShowLogo || c.r.logo == nil {
		c.out.add(ElementLogo, StatusOmitted, image.Rectangle{}, nil)
		return c.px(fallbackTopMM)
	}
	target := int(math.Round(float64(c.w) * logoWidthFrac))
	resized := imaging.Resize(c.r.logo, target, 0, imaging.Lanczos)
	x := (c.w - resized.Bounds().Dx()) / 2
	y := int(math.Round(c.px(topMarginMM)))
	c.dc.DrawImage(resized, x, y)
	bottom := y + resized.Bounds().Dy()
	c.out.add(ElementLogo, StatusDrawn, image.Rect(x, y, x+resized.Bounds().Dx(), bottom), nil)
	return float64(bottom) + c.px(elementGapMM)
}

// qr draws the link QR square sized by the smaller of the width and
// height budgets. An absent URL collapses the slot entirely; elements
// below take the space.
func (c *composer) qr(rec dataset.Record, cursor float64) float64 {
	if !c.r.cfg.ShowQR || rec.URL.Empty() {
		c.out.add(ElementQR, StatusOmitted, image.Rectangle{}, nil)
		return cursor
	}
	size := int(math.Min(float64(c.w)*qrMaxWidthFrac, float64(c.h)*qrMaxHeightFrac))
	img, err := qrImage(rec.URL.Value, c.r.cfg.EC, size)
	if err != nil {
		c.out.add(ElementQR, StatusFailed, image.Rectangle{}, err)
		return cursor
	}
	x := (c.w - size) / 2
	y := int(math.Round(cursor))
	c.dc.DrawImage(img, x, y)
	c.out.add(ElementQR, StatusDrawn, image.Rect(x, y, x+size, y+size), nil)
	return float64(y+size) + c.px(elementGapMM)
}

// photo places the record's product photo, fitted into its width and
// height budget without upscaling.
func (c *composer) photo(rec dataset.Record, cursor float64) float64 {
	if !c.r.cfg.ShowPhoto || rec.Photo.Empty() || c.r.fetcher == nil {
		c.out.add(ElementPhoto, StatusOmitted, image.Rectangle{}, nil)
		return cursor
	}
	img, err := c.r.fetcher.Fetch(rec.Photo.Value)
	if err != nil {
		c.out.add(ElementPhoto, StatusFailed, image.Rectangle{}, err)
		return cursor
	}
	maxW := int(float64(c.w) * photoMaxWidthFrac)
	maxH := int(float64(c.h) * photoMaxHeightFrac)
	fit := imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	x := (c.w - fit.Bounds().Dx()) / 2
	y := int(math.Round(cursor))
	c.dc.DrawImage(fit, x, y)
	bottom := y + fit.Bounds().Dy()
	c.out.add(ElementPhoto, StatusDrawn, image.Rect(x, y, x+fit.Bounds().Dx(), bottom), nil)
	return float64(bottom) + c.px(elementGapMM)
}

// text draws one centered, wrapped text block and returns the cursor
// below it. Empty text contributes nothing, not even its gap.
func (c *composer) text(el Element, content string, face font.Face, cursor float64) float64 {
	if strings.TrimSpace(content) == "" {
		c.out.add(el, StatusOmitted, image.Rectangle{}, nil)
		return cursor
	}
	c.dc.SetFontFace(face)
	c.dc.SetRGB(0, 0, 0)

	maxW := float64(c.w) * textWidthFrac
	lines := wrapLines(c.dc, content, maxW)
	ascent := fonts.Ascent(face)
	step := fonts.LineHeight(face) + c.px(lineLeadingMM)

	y := cursor
	minX, maxX := float64(c.w), 0.0
	for _, ln := range lines {
		x := (float64(c.w) - ln.width) / 2
		c.dc.DrawString(ln.text, x, y+ascent)
		if x < minX {
			minX = x
		}
		if x+ln.width > maxX {
			maxX = x + ln.width
		}
		y += step
	}
	box := image.Rect(int(minX), int(math.Round(cursor)), int(math.Ceil(maxX)), int(math.Round(y)))
	c.out.add(el, StatusDrawn, box, nil)
	return y + c.px(blockGapMM)
}

// barcode draws the linear barcode against the bottom edge. Its height
// is a fixed physical size: label height changes where it sits, never
// how tall it is.
func (c *composer) barcode(rec dataset.Record) {
	if !c.r.cfg.ShowBarcode || rec.Barcode.Empty() {
		c.out.add(ElementBarcode, StatusOmitted, image.Rectangle{}, nil)
		return
	}
	bw := int(math.Round(float64(c.w) * barcodeWidthFrac))
	bh := int(math.Round(c.px(barcodeHeightMM)))
	img, err := barcodeImage(rec.Barcode.Value, bw, bh)
	if err != nil {
		c.out.add(ElementBarcode, StatusFailed, image.Rectangle{}, err)
		return
	}
	x := (c.w - bw) / 2
	y := c.h - bh - int(math.Round(c.px(bottomMarginMM)))
	c.dc.DrawImage(img, x, y)
	c.out.add(ElementBarcode, StatusDrawn, image.Rect(x, y, x+bw, y+bh), nil)
}
