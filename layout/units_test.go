package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip verifies pt<->mm conversion survives a round trip
// within floating-point tolerance.
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 6, 12, 14.4, 36, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt->mm->pt drift too large: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
	for _, mm := range samples {
		pt := mm * MmToPt
		back := pt * PtToMm
		if diff := math.Abs(back - mm); diff > 1e-9 {
			t.Fatalf("mm->pt->mm drift too large: in=%gmm pt=%g back=%g diff=%g", mm, pt, back, diff)
		}
	}
}

// TestLengthConversions covers Length conversion to mm and pt for every
// supported unit.
func TestLengthConversions(t *testing.T) {
	if got := (Length{Value: 1, Unit: UnitIN}).MM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("1in to mm: want 25.4, got %g", got)
	}
	if got := (Length{Value: 2.54, Unit: UnitCM}).MM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("2.54cm to mm: want 25.4, got %g", got)
	}
	if got := (Length{Value: 12, Unit: UnitPT}).MM(); math.Abs(got-12*PtToMm) > 1e-9 {
		t.Fatalf("12pt to mm: want %g, got %g", 12*PtToMm, got)
	}
	if got := (Length{Value: 10, Unit: UnitMM}).PT(); math.Abs(got-10*MmToPt) > 1e-9 {
		t.Fatalf("10mm to pt: want %g, got %g", 10*MmToPt, got)
	}
	if got := (Length{Value: 18, Unit: UnitPT}).PT(); math.Abs(got-18) > 1e-9 {
		t.Fatalf("pt to pt must be identity: want 18, got %g", got)
	}
}

// TestParseLength verifies suffix handling, the bare-number mm default
// and rejection of garbage input.
func TestParseLength(t *testing.T) {
	cases := []struct {
		in     string
		wantMM float64
		ok     bool
	}{
		{"60", 60, true},
		{"60mm", 60, true},
		{" 6 cm ", 60, true},
		{"1in", 25.4, true},
		{"12pt", 12 * PtToMm, true},
		{"2.36in", 2.36 * 25.4, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12px", 0, false},
	}
	for _, c := range cases {
		l, err := ParseLength(c.in)
		if c.ok != (err == nil) {
			t.Fatalf("ParseLength(%q): unexpected error state: %v", c.in, err)
		}
		if !c.ok {
			continue
		}
		if diff := math.Abs(l.MM() - c.wantMM); diff > 1e-9 {
			t.Fatalf("ParseLength(%q).MM(): want %g, got %g", c.in, c.wantMM, l.MM())
		}
	}
}
