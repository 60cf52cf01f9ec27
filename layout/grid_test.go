package layout

import (
	"errors"
	"math"
	"testing"
)

func mustGrid(t *testing.T, cfg Config) Grid {
	t.Helper()
	g, err := NewGrid(cfg)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

// TestGridCapacityDefault pins the capacity of the stock configuration:
// 60x80 mm labels with a 10 mm margin tile an A4 page 3x3.
func TestGridCapacityDefault(t *testing.T) {
	g := mustGrid(t, DefaultConfig())
	if g.Cols != 3 || g.Rows != 3 {
		t.Fatalf("60x80mm margin 10: want 3x3, got %dx%d", g.Cols, g.Rows)
	}
	if g.PerPage() != 9 {
		t.Fatalf("per page: want 9, got %d", g.PerPage())
	}
}

// TestGridCapacityTable checks the floor arithmetic across label sizes,
// including the degenerate case where nothing fits.
func TestGridCapacityTable(t *testing.T) {
	cases := []struct {
		w, h, margin float64
		cols, rows   int
	}{
		{60, 80, 10, 3, 3},
		{100, 50, 5, 2, 5},
		{95, 138, 10, 2, 2},
		{190, 80, 10, 1, 3}, // exactly fills the printable width
		{191, 80, 10, 0, 3}, // one millimeter too wide
		{60, 280, 10, 3, 0}, // too tall
		{210, 297, 0, 1, 1}, // margin-less full page
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		cfg.LabelWidthMM, cfg.LabelHeightMM, cfg.PageMarginMM = c.w, c.h, c.margin
		g, err := NewGrid(cfg)
		if c.cols < 1 || c.rows < 1 {
			if !errors.Is(err, ErrNoFit) {
				t.Fatalf("%gx%g margin %g: want ErrNoFit, got %v", c.w, c.h, c.margin, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%gx%g margin %g: %v", c.w, c.h, c.margin, err)
		}
		if g.Cols != c.cols || g.Rows != c.rows {
			t.Fatalf("%gx%g margin %g: want %dx%d, got %dx%d",
				c.w, c.h, c.margin, c.cols, c.rows, g.Cols, g.Rows)
		}
	}
}

// TestCellWalksRowMajor verifies the index-to-cell mapping fills left to
// right, top to bottom, and restarts on every page.
func TestCellWalksRowMajor(t *testing.T) {
	g := mustGrid(t, DefaultConfig()) // 3x3
	cases := []struct {
		i, col, row int
	}{
		{0, 0, 0}, {1, 1, 0}, {2, 2, 0},
		{3, 0, 1}, {4, 1, 1},
		{8, 2, 2},
		{9, 0, 0}, {10, 1, 0}, // second page restarts at the top-left
		{17, 2, 2},
		{18, 0, 0},
	}
	for _, c := range cases {
		col, row := g.Cell(c.i)
		if col != c.col || row != c.row {
			t.Fatalf("cell(%d): want (%d,%d), got (%d,%d)", c.i, c.col, c.row, col, row)
		}
	}
}

// TestPageOfAndPageCount covers the multi-page walk: 20 records at nine
// per page need three pages, and the two overflow records land on the
// first row of the last page.
func TestPageOfAndPageCount(t *testing.T) {
	g := mustGrid(t, DefaultConfig())
	if got := g.PageCount(20); got != 3 {
		t.Fatalf("20 records: want 3 pages, got %d", got)
	}
	if got := g.PageCount(9); got != 1 {
		t.Fatalf("9 records: want 1 page, got %d", got)
	}
	if got := g.PageCount(10); got != 2 {
		t.Fatalf("10 records: want 2 pages, got %d", got)
	}
	if got := g.PageCount(0); got != 0 {
		t.Fatalf("0 records: want 0 pages, got %d", got)
	}
	if got := g.PageOf(18); got != 2 {
		t.Fatalf("record 18: want page 2, got %d", got)
	}
	for i, want := range []struct{ col, row int }{{0, 0}, {1, 0}} {
		col, row := g.Cell(18 + i)
		if col != want.col || row != want.row {
			t.Fatalf("record %d: want cell (%d,%d), got (%d,%d)", 18+i, want.col, want.row, col, row)
		}
	}
}

// TestCellOrigins pins the absolute placement of the first cell in both
// coordinate frames and verifies the two frames mirror each other about
// the page's horizontal midline for every cell.
func TestCellOrigins(t *testing.T) {
	g := mustGrid(t, DefaultConfig())

	x, y := g.CellOriginMM(0)
	if math.Abs(x-10) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Fatalf("cell 0 page origin: want (10,10), got (%g,%g)", x, y)
	}
	px, py := g.CellOriginPDF(0)
	if math.Abs(px-10) > 1e-9 || math.Abs(py-207) > 1e-9 {
		t.Fatalf("cell 0 pdf origin: want (10,207), got (%g,%g)", px, py)
	}

	for i := 0; i < 25; i++ {
		_, top := g.CellOriginMM(i)
		_, bottom := g.CellOriginPDF(i)
		mirror := PageHeightMM - (top + g.LabelHeightMM)
		if diff := math.Abs(bottom - mirror); diff > 1e-9 {
			t.Fatalf("cell %d: pdf y %g is not the mirror of page y %g (want %g)", i, bottom, top, mirror)
		}
	}
}
