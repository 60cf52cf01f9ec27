// Package label composes single product labels as raster images.
//
// A label stacks its elements top to bottom: logo, QR code, product
// photo, SKU, product name, and a linear barcode anchored to the bottom
// edge. Every element is optional; absent elements collapse so the ones
// below move up. Element failures never abort a label: each outcome is
// recorded as a value on the result.
package label

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Element names one drawable slot on a label.
type Element string

const (
	ElementLogo    Element = "logo"
	ElementQR      Element = "qr"
	ElementPhoto   Element = "photo"
	ElementSKU     Element = "sku"
	ElementName    Element = "name"
	ElementBarcode Element = "barcode"
)

// Status describes what happened to one element during composition.
type Status int

const (
	// StatusDrawn means the element is on the label.
	StatusDrawn Status = iota
	// StatusOmitted means the element was skipped on purpose: its input
	// is absent or its toggle is off. Omission is a valid outcome, not
	// an error.
	StatusOmitted
	// StatusFailed means the element could not be produced. The label
	// is still usable; the failure is reported alongside it.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDrawn:
		return "drawn"
	case StatusOmitted:
		return "omitted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ElementResult records the outcome for one element. Box is the pixel
// area the element occupies when drawn; Err is set only for failures.
type ElementResult struct {
	Element Element
	Status  Status
	Box     image.Rectangle
	Err     error
}

// Rendered is one finished label bitmap plus its per-element outcomes.
// Elements appear in composition order.
type Rendered struct {
	Image image.Image

	WidthPx  int
	HeightPx int
	WidthMM  float64
	HeightMM float64

	Elements []ElementResult
}

func (r *Rendered) add(el Element, st Status, box image.Rectangle, err error) {
	r.Elements = append(r.Elements, ElementResult{Element: el, Status: st, Box: box, Err: err})
}

// Result returns the outcome recorded for el.
func (r *Rendered) Result(el Element) (ElementResult, bool) {
	for _, e := range r.Elements {
		if e.Element == el {
			return e, true
		}
	}
	return ElementResult{}, false
}

// Failures lists the elements that could not be produced.
func (r *Rendered) Failures() []ElementResult {
	var out []ElementResult
	for _, e := range r.Elements {
		if e.Status == StatusFailed {
			out = append(out, e)
		}
	}
	return out
}

// EncodePNG writes the label bitmap as PNG.
func (r *Rendered) EncodePNG(w io.Writer) error {
	return imaging.Encode(w, r.Image, imaging.PNG)
}
