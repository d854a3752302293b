package layout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/supagonava/ocrgrid/model"
)

// ErrInvalidConfig is returned when a line configuration carries negative thresholds
var ErrInvalidConfig = errors.New("layout: invalid line configuration")

// Line represents one band of words on a page
type Line struct {
	// BBox is the union of the word boxes
	BBox model.BBox

	// Words are the words in the band, sorted left to right
	Words []model.WordAnnotation

	// Text is the assembled text of the band, without a trailing newline
	Text string

	// Index is the band's position (0-based, top to bottom)
	Index int

	// Bottom is the bottom coordinate the band was anchored on
	Bottom int
}

// LineLayout represents the detected lines of a word set
type LineLayout struct {
	// Lines are the detected bands, top to bottom
	Lines []Line

	// Config is the configuration used for detection
	Config LineConfig
}

// LineConfig holds the thresholds for line detection, in pixels
type LineConfig struct {
	// VerticalTolerance is how far a word's bottom may sit from the band
	// anchor and still join the band (default: 5)
	VerticalTolerance int

	// HorizontalGap is the largest gap between neighbouring words that is
	// joined without a space (default: 4)
	HorizontalGap int
}

// DefaultLineConfig returns the default thresholds
func DefaultLineConfig() LineConfig {
	return LineConfig{
		VerticalTolerance: 5,
		HorizontalGap:     4,
	}
}

// Validate rejects negative thresholds
func (c LineConfig) Validate() error {
	if c.VerticalTolerance < 0 {
		return fmt.Errorf("%w: vertical tolerance %d", ErrInvalidConfig, c.VerticalTolerance)
	}
	if c.HorizontalGap < 0 {
		return fmt.Errorf("%w: horizontal gap %d", ErrInvalidConfig, c.HorizontalGap)
	}
	return nil
}

// LineDetector groups words into text lines by the bottom edge of their boxes
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// Config returns the detector's configuration
func (d *LineDetector) Config() LineConfig {
	return d.config
}

// Detect groups words into bands.
//
// Bottoms are visited in ascending order. Each band takes every word not yet
// assigned whose bottom lies within VerticalTolerance of the anchor bottom,
// so a word belongs to the first band that reaches it, never a closer later
// one. Words in a band are ordered by left edge; equal left edges keep input
// order. The result depends only on the input, including its order.
func (d *LineDetector) Detect(words []model.WordAnnotation) *LineLayout {
	layout := &LineLayout{Config: d.config}
	if len(words) == 0 {
		return layout
	}

	order := make([]int, len(words))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return words[order[a]].BBox.Bottom < words[order[b]].BBox.Bottom
	})

	// Every word left in order[i:] has a bottom no smaller than the current
	// anchor, so a band is a contiguous run starting at i.
	for i := 0; i < len(order); {
		anchor := words[order[i]].BBox.Bottom
		j := i
		for j < len(order) && words[order[j]].BBox.Bottom <= anchor+d.config.VerticalTolerance {
			j++
		}

		band := append([]int(nil), order[i:j]...)
		sort.Slice(band, func(a, b int) bool {
			la, lb := words[band[a]].BBox.Left, words[band[b]].BBox.Left
			if la != lb {
				return la < lb
			}
			return band[a] < band[b]
		})

		layout.Lines = append(layout.Lines, d.buildLine(words, band, anchor, len(layout.Lines)))
		i = j
	}

	return layout
}

// buildLine assembles a band into a Line
func (d *LineDetector) buildLine(words []model.WordAnnotation, band []int, anchor, index int) Line {
	line := Line{
		Words:  make([]model.WordAnnotation, len(band)),
		Index:  index,
		Bottom: anchor,
	}

	for k, idx := range band {
		line.Words[k] = words[idx]
		if k == 0 {
			line.BBox = words[idx].BBox
		} else {
			line.BBox = line.BBox.Union(words[idx].BBox)
		}
	}
	line.Text = d.assembleLineText(line.Words)

	return line
}

// assembleLineText joins sorted words, inserting a space only when the gap
// to the previous word exceeds HorizontalGap
func (d *LineDetector) assembleLineText(words []model.WordAnnotation) string {
	var sb strings.Builder
	for k, w := range words {
		if k > 0 && w.BBox.Left-words[k-1].BBox.Right > d.config.HorizontalGap {
			sb.WriteByte(' ')
		}
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// JoinLines returns the text of every band followed by a newline
func (d *LineDetector) JoinLines(words []model.WordAnnotation) string {
	return d.Detect(words).GetText()
}

// JoinLines groups words with the default thresholds and returns their text
func JoinLines(words []model.WordAnnotation) string {
	return NewLineDetector().JoinLines(words)
}

// LineCount returns the number of detected lines
func (l *LineLayout) LineCount() int {
	if l == nil {
		return 0
	}
	return len(l.Lines)
}

// GetLine returns a specific line by index
func (l *LineLayout) GetLine(index int) *Line {
	if l == nil || index < 0 || index >= len(l.Lines) {
		return nil
	}
	return &l.Lines[index]
}

// GetText returns all line texts, each followed by a newline
func (l *LineLayout) GetText() string {
	if l == nil {
		return ""
	}

	var sb strings.Builder
	for _, line := range l.Lines {
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// WordCount returns the total number of words across all lines
func (l *LineLayout) WordCount() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, line := range l.Lines {
		n += len(line.Words)
	}
	return n
}

// FindLinesInRegion returns lines whose boxes lie entirely within the region
func (l *LineLayout) FindLinesInRegion(region model.Region) []Line {
	if l == nil {
		return nil
	}

	var result []Line
	for _, line := range l.Lines {
		if region.Contains(line.BBox) {
			result = append(result, line)
		}
	}
	return result
}

// WordCount returns the number of words in the line
func (line *Line) WordCount() int {
	return len(line.Words)
}

// IsEmpty returns true if the line has no visible text
func (line *Line) IsEmpty() bool {
	return strings.TrimSpace(line.Text) == ""
}
