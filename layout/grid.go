package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoFit reports that not even one label fits on the page with the
// requested margin.
var ErrNoFit = errors.New("label does not fit on page")

// Grid is the per-page placement geometry derived from a Config. All
// coordinates are millimeters. Cell origins are available in two frames:
// page coordinates with the origin at the top-left corner (CellOriginMM)
// and PDF coordinates with the origin at the bottom-left (CellOriginPDF).
type Grid struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`

	LabelWidthMM  float64 `json:"labelWidthMM"`
	LabelHeightMM float64 `json:"labelHeightMM"`
	MarginMM      float64 `json:"marginMM"`
}

// NewGrid computes the column and row capacity for the configured label
// size on an A4 page. Labels are never scaled to fit: when the label
// cannot be placed even once the run fails here, before any page exists.
func NewGrid(cfg Config) (Grid, error) {
	g := Grid{
		Cols:          int(math.Floor((PageWidthMM - 2*cfg.PageMarginMM) / cfg.LabelWidthMM)),
		Rows:          int(math.Floor((PageHeightMM - 2*cfg.PageMarginMM) / cfg.LabelHeightMM)),
		LabelWidthMM:  cfg.LabelWidthMM,
		LabelHeightMM: cfg.LabelHeightMM,
		MarginMM:      cfg.PageMarginMM,
	}
	if g.Cols < 1 || g.Rows < 1 {
		return Grid{}, fmt.Errorf("%.4gx%.4g mm label with %.4g mm margin: %w",
			cfg.LabelWidthMM, cfg.LabelHeightMM, cfg.PageMarginMM, ErrNoFit)
	}
	return g, nil
}

// PerPage is the page capacity in labels.
func (g Grid) PerPage() int { return g.Cols * g.Rows }

// Cell maps a record index to its column and row within its page.
// Indices fill left to right, then top to bottom.
func (g Grid) Cell(i int) (col, row int) {
	return i % g.Cols, (i / g.Cols) % g.Rows
}

// PageOf maps a record index to its zero-based page number.
func (g Grid) PageOf(i int) int { return i / g.PerPage() }

// PageCount reports how many pages n labels occupy. A trailing partially
// filled page counts as a full page.
func (g Grid) PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + g.PerPage() - 1) / g.PerPage()
}

// CellOriginMM gives the top-left corner of the cell for record index i,
// in page coordinates (origin top-left, y growing downward).
func (g Grid) CellOriginMM(i int) (x, y float64) {
	col, row := g.Cell(i)
	return g.MarginMM + float64(col)*g.LabelWidthMM,
		g.MarginMM + float64(row)*g.LabelHeightMM
}

// CellOriginPDF gives the bottom-left corner of the cell for record
// index i in PDF coordinates (origin bottom-left, y growing upward):
//
//	y = pageHeight - margin - (row+1) * labelHeight
//
// It is the mirror image of CellOriginMM about the page's horizontal
// midline.
func (g Grid) CellOriginPDF(i int) (x, y float64) {
	col, row := g.Cell(i)
	return g.MarginMM + float64(col)*g.LabelWidthMM,
		PageHeightMM - g.MarginMM - float64(row+1)*g.LabelHeightMM
}
