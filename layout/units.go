package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for physical lengths.

// Unit represents the unit a length value was written in.
type Unit int

const (
	UnitMM Unit = iota // millimeters, the default for bare numbers
	UnitCM             // centimeters
	UnitIN             // inches
	UnitPT             // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// A4 portrait. The tiler produces no other page size.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// UnitToString returns the short suffix for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return "mm"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64
	Unit  Unit
}

// MM converts this length to millimeters.
func (l Length) MM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// PT converts this length to points.
func (l Length) PT() float64 {
	if l.Unit == UnitPT {
		return l.Value
	}
	return l.MM() * MmToPt
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + UnitToString(l.Unit)
}

// ParseLength parses strings like "60", "60mm", "6cm", "2.36in" or "12pt".
// Bare numbers are taken as millimeters.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("empty length")
	}
	unit := UnitMM
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
