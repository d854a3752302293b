package layout

import (
	"sort"
	"strings"

	"github.com/supagonava/ocrgrid/model"
)

// TextLine is a provider line handed to the formatter
type TextLine struct {
	// Text is the raw line text, written as is
	Text string

	// BBox is the line's pixel box. Ignored when Positioned is false.
	BBox model.BBox

	// Page is the 1-based page number. Lines on earlier pages come first.
	Page int

	// Positioned is false for lines that arrived without geometry
	Positioned bool

	// Origin is the unrounded pixel position of the top-left corner. When
	// set it orders the line in place of BBox, so lines less than a pixel
	// apart keep their true order.
	Origin *model.FloatPoint
}

// NewTextLine creates a positioned line
func NewTextLine(text string, box model.BBox, page int) TextLine {
	return TextLine{Text: text, BBox: box, Page: page, Positioned: true}
}

// NewTextLineAt creates a positioned line ordered by an unrounded origin
func NewTextLineAt(text string, box model.BBox, origin model.FloatPoint, page int) TextLine {
	line := NewTextLine(text, box, page)
	line.Origin = &origin
	return line
}

// position returns the top-left corner used for ordering
func (l TextLine) position() (top, left float64) {
	if l.Origin != nil {
		return l.Origin.Y, l.Origin.X
	}
	return float64(l.BBox.Top), float64(l.BBox.Left)
}

// SortReadingOrder returns the lines ordered by page, then top, then left.
// Equal keys keep emission order. Unpositioned lines follow all positioned
// lines, in emission order. The input slice is not modified.
func SortReadingOrder(lines []TextLine) []TextLine {
	sorted := make([]TextLine, 0, len(lines))
	var unpositioned []TextLine
	for _, line := range lines {
		if line.Positioned {
			sorted = append(sorted, line)
		} else {
			unpositioned = append(unpositioned, line)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		aTop, aLeft := a.position()
		bTop, bLeft := b.position()
		if aTop != bTop {
			return aTop < bTop
		}
		return aLeft < bLeft
	})

	return append(sorted, unpositioned...)
}

// FormatText writes the lines in reading order, one per line, each followed
// by a newline
func FormatText(lines []TextLine) string {
	var sb strings.Builder
	for _, line := range SortReadingOrder(lines) {
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// LinesFromLayout converts detected bands into formatter input on one page
func LinesFromLayout(layout *LineLayout, page int) []TextLine {
	if layout == nil {
		return nil
	}
	lines := make([]TextLine, 0, len(layout.Lines))
	for _, line := range layout.Lines {
		lines = append(lines, NewTextLine(line.Text, line.BBox, page))
	}
	return lines
}
