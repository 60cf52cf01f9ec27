package label

import (
	"strings"

	"github.com/fogleman/gg"
)

// line is one wrapped line with its measured width in pixels.
type line struct {
	text  string
	width float64
}

// wrapLines splits text into lines no wider than maxW, measuring every
// candidate with the context's current face. Widths come from the font
// metrics, never from character counts. A single word wider than maxW
// keeps its own line rather than being broken mid-word.
func wrapLines(dc *gg.Context, text string, maxW float64) []line {
	words := strings.Fields(text)
	var lines []line
	current := ""
	for _, w := range words {
		test := w
		if current != "" {
			test = current + " " + w
		}
		tw, _ := dc.MeasureString(test)
		if tw <= maxW || current == "" {
			current = test
			continue
		}
		cw, _ := dc.MeasureString(current)
		lines = append(lines, line{text: current, width: cw})
		current = w
	}
	if current != "" {
		cw, _ := dc.MeasureString(current)
		lines = append(lines, line{text: current, width: cw})
	}
	return lines
}
