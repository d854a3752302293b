package hocr

import "github.com/supagonava/ocrgrid/model"

// Element classes
const (
	ClassPage = "ocr_page"
	ClassLine = "ocr_line"
	ClassWord = "ocrx_word"
)

// lineClasses are the classes hOCR uses for a line of text
var lineClasses = map[string]bool{
	ClassLine:       true,
	"ocr_header":    true,
	"ocr_footer":    true,
	"ocr_caption":   true,
	"ocr_textfloat": true,
}

// Document is a parsed hOCR file
type Document struct {
	Pages []Page
}

// Page is an ocr_page element
type Page struct {
	ID    string
	Box   Box
	Image string
	Lines []Line
}

// Line is a line element. Words found outside any line are collected into a
// line with an empty Class and no box.
type Line struct {
	ID    string
	Class string
	Box   Box
	Words []Word
}

// Word is an ocrx_word element
type Word struct {
	ID   string
	Text string
	Box  Box

	// Confidence is x_wconf, 0-100. Negative when absent.
	Confidence float64
}

// Box is a bbox title property. Valid is false when the element had none.
type Box struct {
	model.BBox
	Valid bool
}

// Size returns the page size from the page box
func (p Page) Size() model.PageSize {
	if !p.Box.Valid {
		return model.PageSize{}
	}
	return model.PageSize{Width: p.Box.Width(), Height: p.Box.Height()}
}

// WordCount returns the number of words on every page
func (d *Document) WordCount() int {
	n := 0
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			n += len(l.Words)
		}
	}
	return n
}
