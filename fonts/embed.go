// Package fonts serves the typefaces drawn on labels. The Go fonts ship
// embedded in the binary, so rendering needs no font files on disk.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Weight selects one of the embedded faces.
type Weight int

const (
	Regular Weight = iota
	Bold
)

func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "regular"
}

var (
	mu     sync.Mutex
	parsed = map[Weight]*sfnt.Font{}
)

func ttf(w Weight) []byte {
	if w == Bold {
		return gobold.TTF
	}
	return goregular.TTF
}

// Face builds a face of the given weight, sized in pixels. The parsed
// font is cached; the face itself is built fresh on every call because
// faces carry rasterization buffers and must not be shared between
// goroutines.
func Face(w Weight, sizePx float64) (font.Face, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", sizePx)
	}
	mu.Lock()
	ft, ok := parsed[w]
	if !ok {
		var err error
		ft, err = opentype.Parse(ttf(w))
		if err != nil {
			mu.Unlock()
			return nil, fmt.Errorf("parse %s font: %w", w, err)
		}
		parsed[w] = ft
	}
	mu.Unlock()

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build %s face at %gpx: %w", w, sizePx, err)
	}
	return face, nil
}

// Ascent reports the face ascent in pixels. Text drawn at baseline
// y + Ascent has its cap height anchored at y.
func Ascent(f font.Face) float64 {
	return fixedToPx(f.Metrics().Ascent)
}

// LineHeight reports the recommended baseline-to-baseline distance in
// pixels.
func LineHeight(f font.Face) float64 {
	return fixedToPx(f.Metrics().Height)
}

func fixedToPx(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
