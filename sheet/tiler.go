// Package sheet tiles rendered labels onto A4 pages and writes the
// result as a PDF.
//
// Placement is a pure function of the record index: labels fill each
// page left to right, top to bottom, and a new page starts exactly when
// the previous one is full. A trailing partial page is kept, never
// dropped.
package sheet

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"labelpress/dataset"
	"labelpress/label"
	"labelpress/layout"
)

// Renderer produces one label bitmap per record. *label.Renderer is the
// production implementation; tests substitute their own.
type Renderer interface {
	Render(dataset.Record) (*label.Rendered, error)
}

// Warning reports one element that could not be produced for one
// record. The run carries on; warnings surface once, at the end.
type Warning struct {
	Record  int           `json:"record"`
	SKU     string        `json:"sku"`
	Element label.Element `json:"element"`
	Message string        `json:"message"`
}

// Placement fixes one label on one page. XMM and YMM are the cell's
// top-left corner in page coordinates; PDFYMM is the same cell's
// bottom-left y in the PDF's bottom-up frame.
type Placement struct {
	Record int     `json:"record"`
	Page   int     `json:"page"`
	XMM    float64 `json:"xMM"`
	YMM    float64 `json:"yMM"`
	PDFYMM float64 `json:"pdfYMM"`
}

// Report summarizes a finished run for logging and debugging.
type Report struct {
	Labels     int         `json:"labels"`
	Pages      int         `json:"pages"`
	Cols       int         `json:"cols"`
	Rows       int         `json:"rows"`
	Placements []Placement `json:"placements"`
	Warnings   []Warning   `json:"warnings,omitempty"`
}

// Tile renders every record and lays the labels out in record order.
// The returned bytes are a complete PDF document.
//
// Configuration problems, an unusable grid and render breakdowns are
// errors and produce no PDF. Per-element problems inside the labels are
// collected as warnings on the Report instead.
func Tile(records []dataset.Record, r Renderer, cfg layout.Config) ([]byte, *Report, error) {
	if r == nil {
		return nil, nil, fmt.Errorf("renderer must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("sheet config: %w", err)
	}
	grid, err := layout.NewGrid(cfg)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no records to lay out")
	}

	rendered, err := renderAll(records, r, cfg)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{
		Labels:     len(records),
		Pages:      grid.PageCount(len(records)),
		Cols:       grid.Cols,
		Rows:       grid.Rows,
		Placements: plan(len(records), grid),
	}
	for i, rd := range rendered {
		for _, f := range rd.Failures() {
			report.Warnings = append(report.Warnings, Warning{
				Record:  i,
				SKU:     records[i].SKU,
				Element: f.Element,
				Message: f.Err.Error(),
			})
		}
	}

	doc, err := assemble(rendered, report.Placements, grid, cfg.CutLines)
	if err != nil {
		return nil, nil, err
	}
	return doc, report, nil
}

// plan fixes the cell for every record index up front. Placement depends
// only on the index, so rendering order can never change it.
func plan(n int, g layout.Grid) []Placement {
	out := make([]Placement, n)
	for i := 0; i < n; i++ {
		x, y := g.CellOriginMM(i)
		_, pdfY := g.CellOriginPDF(i)
		out[i] = Placement{Record: i, Page: g.PageOf(i), XMM: x, YMM: y, PDFYMM: pdfY}
	}
	return out
}

// assemble writes the PDF. Each page draws on its own canvas with a
// top-left origin matching the placement plan; the canvas flips into
// the PDF's bottom-up frame when it renders. Bitmaps are placed at a
// resolution derived from the label's physical width, so the printed
// size never depends on the raster scale.
func assemble(rendered []*label.Rendered, placements []Placement, g layout.Grid, cutLines bool) ([]byte, error) {
	var buf bytes.Buffer
	writer := pdf.New(&buf, layout.PageWidthMM, layout.PageHeightMM, nil)
	writer.SetInfo("Product labels", "", "", "", "labelpress")

	pages := g.PageCount(len(rendered))
	idx := 0
	for p := 0; p < pages; p++ {
		if p > 0 {
			writer.NewPage(layout.PageWidthMM, layout.PageHeightMM)
		}
		c := canvas.New(layout.PageWidthMM, layout.PageHeightMM)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)

		for ; idx < len(rendered) && placements[idx].Page == p; idx++ {
			rd := rendered[idx]
			if rd == nil || rd.Image == nil {
				return nil, fmt.Errorf("record %d: label has no bitmap", idx)
			}
			dpmm := float64(rd.Image.Bounds().Dx()) / g.LabelWidthMM
			ctx.DrawImage(placements[idx].XMM, placements[idx].YMM, rd.Image, canvas.DPMM(dpmm))
		}
		if cutLines {
			drawCutLines(ctx, g)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

const cutLineWidthMM = 0.2

// drawCutLines strokes the full grid on top of the placed labels. Every
// guide runs the whole grid in one stroke, including over empty cells on
// a partial last page, so each cut is a single straight run.
func drawCutLines(ctx *canvas.Context, g layout.Grid) {
	ctx.SetStrokeColor(canvas.Hex("#9e9e9e"))
	ctx.SetStrokeWidth(cutLineWidthMM)

	gridW := float64(g.Cols) * g.LabelWidthMM
	gridH := float64(g.Rows) * g.LabelHeightMM
	for col := 0; col <= g.Cols; col++ {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(0, gridH)
		ctx.DrawPath(g.MarginMM+float64(col)*g.LabelWidthMM, g.MarginMM, p)
	}
	for row := 0; row <= g.Rows; row++ {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(gridW, 0)
		ctx.DrawPath(g.MarginMM, g.MarginMM+float64(row)*g.LabelHeightMM, p)
	}
}
